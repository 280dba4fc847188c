package game

import (
	"fmt"
	"slices"
)

// bettingRound holds the per-round betting state shared by both variants.
// States are values: apply returns an updated copy and never mutates the
// receiver, so a traversal can branch from any state.
type bettingRound struct {
	settings *Settings
	round    int
	turn     int
	folded   []bool
	acted    []bool
	pot      []int // chips committed by each seat, ante included
	bets     []int // chips committed by each seat this round
	current  int   // highest bet this round
	raises   int
	history  [][]Action
	done     bool
}

func newBettingRound(s *Settings) bettingRound {
	n := s.NumPlayers
	br := bettingRound{
		settings: s,
		folded:   make([]bool, n),
		acted:    make([]bool, n),
		pot:      make([]int, n),
		bets:     make([]int, n),
		history:  make([][]Action, 1, s.NumRounds),
	}
	for i := range br.pot {
		br.pot[i] = s.Ante
	}
	return br
}

func (br bettingRound) clone() bettingRound {
	next := br
	next.folded = slices.Clone(br.folded)
	next.acted = slices.Clone(br.acted)
	next.pot = slices.Clone(br.pot)
	next.bets = slices.Clone(br.bets)
	next.history = make([][]Action, len(br.history), br.settings.NumRounds)
	for i, h := range br.history {
		next.history[i] = slices.Clone(h)
	}
	return next
}

func (br bettingRound) facing() bool {
	return br.current > br.bets[br.turn]
}

// validActions returns the legal actions for the seat to act, in alphabet order.
func (br bettingRound) validActions() []Action {
	if br.done {
		return nil
	}
	facing := br.facing()
	canRaise := br.raises < br.settings.NumRaises
	switch {
	case br.settings.Variant == Kuhn && br.settings.NumActions == 2:
		return []Action{Pass, Bet}
	case br.settings.Variant == Kuhn:
		if !facing {
			return appendIf([]Action{Pass}, Raise, canRaise)
		}
		return appendIf([]Action{Fold, Call}, Raise, canRaise)
	default:
		if !facing {
			return appendIf([]Action{Call}, Raise, canRaise)
		}
		return appendIf([]Action{Fold, Call}, Raise, canRaise)
	}
}

func appendIf(actions []Action, a Action, ok bool) []Action {
	if ok {
		return append(actions, a)
	}
	return actions
}

func (br bettingRound) apply(player int, a Action) (bettingRound, error) {
	if br.done {
		return br, fmt.Errorf("%w: hand is over", ErrIllegalAction)
	}
	if player != br.turn {
		return br, fmt.Errorf("%w: player %d acted out of turn, expected %d", ErrIllegalAction, player, br.turn)
	}
	if !slices.Contains(br.validActions(), a) {
		return br, fmt.Errorf("%w: %s not allowed for player %d", ErrIllegalAction, a, player)
	}

	next := br.clone()
	next.history[next.round] = append(next.history[next.round], a)
	next.acted[player] = true

	switch resolve(a, br.facing()) {
	case moveFold:
		next.folded[player] = true
	case moveCheck:
	case moveCall:
		next.commit(player, next.current-next.bets[player])
	case moveRaise:
		next.current += next.settings.RaiseSize[next.round]
		next.commit(player, next.current-next.bets[player])
		next.raises++
		for i := range next.acted {
			if i != player {
				next.acted[i] = false
			}
		}
	}

	next.advance(player)
	return next, nil
}

func (br *bettingRound) commit(player, chips int) {
	br.bets[player] += chips
	br.pot[player] += chips
}

func (br *bettingRound) advance(last int) {
	if br.live() == 1 {
		br.finish()
		return
	}
	if !br.roundComplete() {
		br.turn = br.nextLive(last)
		return
	}
	if br.round+1 >= br.settings.NumRounds {
		br.finish()
		return
	}
	br.round++
	br.history = append(br.history, nil)
	br.current = 0
	br.raises = 0
	for i := range br.acted {
		br.acted[i] = false
		br.bets[i] = 0
	}
	br.turn = br.nextLive(-1)
}

func (br *bettingRound) finish() {
	br.done = true
	br.turn = -1
}

// roundComplete reports whether every live seat has acted and matched the bet.
func (br bettingRound) roundComplete() bool {
	for i := range br.folded {
		if br.folded[i] {
			continue
		}
		if !br.acted[i] || br.bets[i] != br.current {
			return false
		}
	}
	return true
}

func (br bettingRound) live() int {
	n := 0
	for _, f := range br.folded {
		if !f {
			n++
		}
	}
	return n
}

func (br bettingRound) nextLive(from int) int {
	n := len(br.folded)
	for k := 1; k <= n; k++ {
		seat := (from + k + n) % n
		if !br.folded[seat] {
			return seat
		}
	}
	return -1
}

// historyString renders the action history with rounds separated by "/".
func (br bettingRound) historyString(sep string) string {
	buf := make([]byte, 0, 16)
	for i, h := range br.history {
		if i > 0 {
			buf = append(buf, sep...)
		}
		for _, a := range h {
			buf = append(buf, byte(a))
		}
	}
	return string(buf)
}
