package solver

import (
	"context"

	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/poker"
)

// MonteCarloCFR trains with external-sampling Monte Carlo CFR, regret-based
// pruning and linear discounting.
type MonteCarloCFR struct {
	*trainer
}

// NewMonteCarloCFR constructs a trainer for settings.
func NewMonteCarloCFR(settings game.Settings, cfg TrainingConfig) (*MonteCarloCFR, error) {
	t, err := newTrainer(settings, cfg)
	if err != nil {
		return nil, err
	}
	return &MonteCarloCFR{trainer: t}, nil
}

// Traverse runs one external-sampling traversal for player from state and
// returns the expected utility vector.
func (m *MonteCarloCFR) Traverse(player int, state game.State, prune bool) ([]float64, error) {
	return m.traverse(player, statePosition{state: state}, prune)
}

// UpdateStrategy samples player's current strategy into the strategy sums
// along one path through player's decisions.
func (m *MonteCarloCFR) UpdateStrategy(player int, state game.State) error {
	return m.updateStrategy(player, statePosition{state: state})
}

// Discount scales every info set by (t/D)/(t/D+1), D being the discount interval.
func (m *MonteCarloCFR) Discount(t int) error {
	return m.discount(t)
}

// Train runs iterations of Monte Carlo CFR, reshuffling cards each
// iteration, then reports the expected utility of the average strategy over
// every deal.
func (m *MonteCarloCFR) Train(ctx context.Context, cards []poker.Card, iterations int, progress func(Progress)) (*Report, error) {
	if err := m.settings.ValidateDeck(cards); err != nil {
		return nil, err
	}
	deck := poker.NewDeck(cards, m.rng)
	m.logger.Debug().
		Int64("seed", m.seed).
		Int("prune_threshold", m.cfg.Schedule.PruneThreshold).
		Int("lcfr_threshold", m.cfg.Schedule.LCFRThreshold).
		Msg("starting monte carlo cfr")

	err := m.run(ctx, iterations, progress, func(iter int) error {
		deck.Shuffle()
		root, err := game.NewState(m.settings, deck.Deal(m.settings.NumCards()))
		if err != nil {
			return err
		}
		if iter == m.cfg.Schedule.PruneThreshold+1 {
			m.logger.Debug().Int("iteration", iter).Msg("regret pruning enabled")
		}
		return m.iterate(iter, statePosition{state: root})
	})
	if err != nil {
		return nil, err
	}
	return m.Report(ctx, cards)
}
