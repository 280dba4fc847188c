package game

import "github.com/lox/pokercfr/poker"

// KuhnState is a Kuhn poker hand.
type KuhnState struct {
	hand
}

var _ State = KuhnState{}

// InfoSet returns the acting seat's rank followed by the action history,
// e.g. "K", "JP" or "QPB".
func (s KuhnState) InfoSet() string {
	seat := s.betting.turn
	if seat < 0 {
		seat = 0
	}
	return s.hole(seat).RankString() + s.betting.historyString("")
}

// Add applies an action by player.
func (s KuhnState) Add(player int, a Action) (State, error) {
	next, err := s.betting.apply(player, a)
	if err != nil {
		return nil, err
	}
	return KuhnState{hand: hand{betting: next, cards: s.cards}}, nil
}

// Payoff returns net winnings, highest card taking the pot at showdown.
func (s KuhnState) Payoff() ([]float64, error) {
	return s.payoff(poker.EvaluateKuhn)
}

func (s KuhnState) String() string {
	return s.betting.historyString("")
}
