package game

// Action is a single-character action label. Labels are concatenated into
// information set keys, so each action must stay one byte wide.
type Action byte

const (
	Fold  Action = 'F'
	Pass  Action = 'P' // check, or fold when facing a bet in two-action Kuhn
	Call  Action = 'C' // call, or check in Leduc when nothing is owed
	Raise Action = 'R'
	Bet   Action = 'B' // bet, or call when facing a bet in two-action Kuhn
)

func (a Action) String() string {
	return string(rune(a))
}

// move is what an action does to the pot once the facing bet is known.
type move int

const (
	moveFold move = iota
	moveCheck
	moveCall
	moveRaise
)

func resolve(a Action, facing bool) move {
	switch a {
	case Fold:
		return moveFold
	case Pass:
		if facing {
			return moveFold
		}
		return moveCheck
	case Call:
		if facing {
			return moveCall
		}
		return moveCheck
	case Bet:
		if facing {
			return moveCall
		}
		return moveRaise
	default:
		return moveRaise
	}
}

// Aggressive reports whether the action puts new money in unprompted.
func (a Action) Aggressive() bool {
	return a == Raise || a == Bet
}

// Passive reports whether the action checks or calls.
func (a Action) Passive() bool {
	return a == Call || a == Pass
}

// ParseActions converts a string of labels into actions.
func ParseActions(s string) []Action {
	actions := make([]Action, len(s))
	for i := range len(s) {
		actions[i] = Action(s[i])
	}
	return actions
}
