package game

import (
	"strings"

	"github.com/lox/pokercfr/poker"
)

// LeducState is a Leduc poker hand: one private card, one board card
// revealed before the second round.
type LeducState struct {
	hand
}

var _ State = LeducState{}

// InfoSet returns "<rank>[<board rank>]|<history>" with rounds separated by
// "/", e.g. "Q|CR" or "QK|CRC/C".
func (s LeducState) InfoSet() string {
	seat := s.betting.turn
	if seat < 0 {
		seat = 0
	}
	var b strings.Builder
	b.WriteString(s.hole(seat).RankString())
	for _, c := range s.board() {
		b.WriteString(c.RankString())
	}
	b.WriteByte('|')
	b.WriteString(s.betting.historyString("/"))
	return b.String()
}

// Add applies an action by player.
func (s LeducState) Add(player int, a Action) (State, error) {
	next, err := s.betting.apply(player, a)
	if err != nil {
		return nil, err
	}
	return LeducState{hand: hand{betting: next, cards: s.cards}}, nil
}

// Payoff returns net winnings, a pair with the board beating any high card.
func (s LeducState) Payoff() ([]float64, error) {
	return s.payoff(poker.EvaluateLeduc)
}

func (s LeducState) String() string {
	return s.betting.historyString("/")
}
