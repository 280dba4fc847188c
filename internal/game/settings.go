package game

import (
	"errors"
	"fmt"

	"github.com/lox/pokercfr/poker"
)

// Variant names a supported game.
type Variant string

const (
	Kuhn  Variant = "kuhn"
	Leduc Variant = "leduc"
)

// ErrInvalidSettings is returned by Settings.Validate and NewState when the
// game description is inconsistent.
var ErrInvalidSettings = errors.New("invalid game settings")

// Settings describes one poker variant.
type Settings struct {
	Variant    Variant
	NumPlayers int
	NumActions int
	NumRounds  int
	NumRaises  int
	RaiseSize  []int
	Ante       int
}

// KuhnSettings returns single-round Kuhn poker with a one-chip bet. actions is
// 2 for the pass/bet alphabet or 4 for fold/pass/call/raise.
func KuhnSettings(players, actions int) Settings {
	return Settings{
		Variant:    Kuhn,
		NumPlayers: players,
		NumActions: actions,
		NumRounds:  1,
		NumRaises:  1,
		RaiseSize:  []int{1},
		Ante:       1,
	}
}

// LeducSettings returns two-round Leduc poker with a 2/4 raise schedule and
// at most two raises per round.
func LeducSettings(players int) Settings {
	return Settings{
		Variant:    Leduc,
		NumPlayers: players,
		NumActions: 3,
		NumRounds:  2,
		NumRaises:  2,
		RaiseSize:  []int{2, 4},
		Ante:       1,
	}
}

// NumCards is how many cards one deal uses: a hole card per player plus one
// board card per round after the first.
func (s Settings) NumCards() int {
	return s.NumPlayers + s.NumRounds - 1
}

// Actions returns the full action alphabet of the variant.
func (s Settings) Actions() []Action {
	switch {
	case s.Variant == Kuhn && s.NumActions == 2:
		return []Action{Pass, Bet}
	case s.Variant == Kuhn:
		return []Action{Fold, Pass, Call, Raise}
	default:
		return []Action{Fold, Call, Raise}
	}
}

// Validate checks the settings are internally consistent.
func (s Settings) Validate() error {
	if s.NumPlayers < 2 || s.NumPlayers > 3 {
		return fmt.Errorf("%w: num_players must be 2 or 3, got %d", ErrInvalidSettings, s.NumPlayers)
	}
	switch s.Variant {
	case Kuhn:
		if s.NumActions != 2 && s.NumActions != 4 {
			return fmt.Errorf("%w: kuhn supports 2 or 4 actions, got %d", ErrInvalidSettings, s.NumActions)
		}
		if s.NumRounds != 1 {
			return fmt.Errorf("%w: kuhn is a single round, got %d rounds", ErrInvalidSettings, s.NumRounds)
		}
	case Leduc:
		if s.NumActions != 3 {
			return fmt.Errorf("%w: leduc uses 3 actions, got %d", ErrInvalidSettings, s.NumActions)
		}
		if s.NumRounds != 2 {
			return fmt.Errorf("%w: leduc has 2 rounds, got %d", ErrInvalidSettings, s.NumRounds)
		}
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidSettings, s.Variant)
	}
	if s.NumRaises < 1 {
		return fmt.Errorf("%w: num_raises must be positive", ErrInvalidSettings)
	}
	if len(s.RaiseSize) != s.NumRounds {
		return fmt.Errorf("%w: need one raise size per round, got %d for %d rounds", ErrInvalidSettings, len(s.RaiseSize), s.NumRounds)
	}
	for i, size := range s.RaiseSize {
		if size <= 0 {
			return fmt.Errorf("%w: raise size for round %d must be positive", ErrInvalidSettings, i)
		}
	}
	if s.Ante <= 0 {
		return fmt.Errorf("%w: ante must be positive", ErrInvalidSettings)
	}
	return nil
}

// ValidateDeck checks that cards can supply a full deal.
func (s Settings) ValidateDeck(cards []poker.Card) error {
	if len(cards) < s.NumCards() {
		return fmt.Errorf("%w: need at least %d cards, got %d", ErrInvalidSettings, s.NumCards(), len(cards))
	}
	if !poker.Distinct(cards) {
		return fmt.Errorf("%w: deck contains duplicate cards", ErrInvalidSettings)
	}
	return nil
}

// DefaultDeck returns the deck each preset is played with: J Q K for two
// player Kuhn, J Q K A for three, and two suits of those ranks for Leduc.
func DefaultDeck(s Settings) []poker.Card {
	ranks := []uint8{poker.Jack, poker.Queen, poker.King}
	if s.NumPlayers > 2 {
		ranks = append(ranks, poker.Ace)
	}
	suits := []uint8{poker.Spades}
	if s.Variant == Leduc {
		suits = append(suits, poker.Hearts)
	}
	cards := make([]poker.Card, 0, len(ranks)*len(suits))
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, poker.NewCard(rank, suit))
		}
	}
	return cards
}
