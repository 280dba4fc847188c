package game

import (
	"errors"
	"fmt"

	"github.com/lox/pokercfr/poker"
)

var (
	// ErrIllegalAction is returned when an action is applied out of turn,
	// after the hand is over, or outside the legal action set.
	ErrIllegalAction = errors.New("illegal action")
	// ErrNotTerminal is returned when payoffs are requested mid-hand.
	ErrNotTerminal = errors.New("state is not terminal")
)

// State is a node in a game tree. Implementations are immutable values:
// Add returns a successor and leaves the receiver untouched.
type State interface {
	// IsTerminal reports whether the hand is over.
	IsTerminal() bool
	// Turn returns the seat to act, or -1 at a terminal state.
	Turn() int
	// InfoSet returns the label of the acting seat's information set.
	InfoSet() string
	// ValidActions returns the legal actions at this state.
	ValidActions() []Action
	// Add applies an action by player and returns the successor state.
	Add(player int, a Action) (State, error)
	// Payoff returns the net chips won by each seat at a terminal state.
	// Payoffs sum to zero.
	Payoff() ([]float64, error)
}

// NewState returns the root of a hand. cards[i] is seat i's hole card and
// the following cards are board cards revealed one per later round.
func NewState(s Settings, cards []poker.Card) (State, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(cards) < s.NumCards() {
		return nil, fmt.Errorf("%w: need %d cards, got %d", ErrInvalidSettings, s.NumCards(), len(cards))
	}
	dealt := make([]poker.Card, s.NumCards())
	copy(dealt, cards)
	table := hand{betting: newBettingRound(&s), cards: dealt}
	switch s.Variant {
	case Kuhn:
		return KuhnState{hand: table}, nil
	default:
		return LeducState{hand: table}, nil
	}
}

// hand combines betting with the dealt cards.
type hand struct {
	betting bettingRound
	cards   []poker.Card
}

func (h hand) IsTerminal() bool { return h.betting.done }

func (h hand) Turn() int { return h.betting.turn }

func (h hand) ValidActions() []Action { return h.betting.validActions() }

func (h hand) hole(seat int) poker.Card { return h.cards[seat] }

// board returns the board cards visible in the current round.
func (h hand) board() []poker.Card {
	return h.cards[h.betting.settings.NumPlayers : h.betting.settings.NumPlayers+h.betting.round]
}

// payoff splits the pot among the best live hands and nets out contributions.
func (h hand) payoff(eval poker.Evaluator) ([]float64, error) {
	if !h.betting.done {
		return nil, ErrNotTerminal
	}
	n := len(h.betting.pot)
	total := 0
	for _, chips := range h.betting.pot {
		total += chips
	}
	live := make([]bool, n)
	ranks := make([]poker.HandRank, n)
	board := h.board()
	for seat := range n {
		live[seat] = !h.betting.folded[seat]
		ranks[seat] = eval(h.hole(seat), board)
	}
	winners := poker.Winners(ranks, live)
	share := float64(total) / float64(len(winners))

	payoffs := make([]float64, n)
	for seat := range n {
		payoffs[seat] = -float64(h.betting.pot[seat])
	}
	for _, seat := range winners {
		payoffs[seat] += share
	}
	return payoffs, nil
}

// Pot returns the chips committed by each seat.
func (h hand) Pot() []int {
	out := make([]int, len(h.betting.pot))
	copy(out, h.betting.pot)
	return out
}

// Round returns the zero-based betting round.
func (h hand) Round() int { return h.betting.round }
