package solver

import (
	"context"
	"slices"

	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/poker"
	"gonum.org/v1/gonum/floats"
)

// VanillaCFR trains by full traversal of the tree of one sampled deal per
// iteration, exploring every legal action at every decision.
type VanillaCFR struct {
	*trainer
}

// NewVanillaCFR constructs a trainer for settings. The schedule in cfg is
// validated but unused.
func NewVanillaCFR(settings game.Settings, cfg TrainingConfig) (*VanillaCFR, error) {
	t, err := newTrainer(settings, cfg)
	if err != nil {
		return nil, err
	}
	return &VanillaCFR{trainer: t}, nil
}

// Train runs iterations of vanilla CFR and reports the expected utility of
// the average strategy over every deal.
func (v *VanillaCFR) Train(ctx context.Context, cards []poker.Card, iterations int, progress func(Progress)) (*Report, error) {
	if err := v.settings.ValidateDeck(cards); err != nil {
		return nil, err
	}
	deck := poker.NewDeck(cards, v.rng)
	err := v.run(ctx, iterations, progress, func(int) error {
		deck.Shuffle()
		root, err := game.NewState(v.settings, deck.Deal(v.settings.NumCards()))
		if err != nil {
			return err
		}
		_, err = v.Iterate(root)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v.Report(ctx, cards)
}

// Iterate runs one full traversal from root and returns its expected utility
// under the current strategy profile.
func (v *VanillaCFR) Iterate(root game.State) ([]float64, error) {
	reach := make([]float64, v.settings.NumPlayers)
	for i := range reach {
		reach[i] = 1
	}
	return v.cfr(root, reach)
}

// cfr returns the utility of state and updates the acting player's info set.
// Regrets are weighted by the opponents' reach and strategy sums by the
// actor's own reach.
func (v *VanillaCFR) cfr(state game.State, reach []float64) ([]float64, error) {
	v.current.NodesVisited++
	if state.IsTerminal() {
		v.current.TerminalNodes++
		return state.Payoff()
	}

	actor := state.Turn()
	actions := state.ValidActions()
	node := v.nodes.GetOrCreate(actor, state.InfoSet(), actions)
	if node.Frozen {
		return nil, &FrozenInfoSetError{Player: actor, Label: state.InfoSet()}
	}
	strategy := node.Strategy(actions)

	value := make([]float64, v.settings.NumPlayers)
	utilities := make([]float64, len(actions))
	for i, a := range actions {
		child, err := state.Add(actor, a)
		if err != nil {
			return nil, err
		}
		childReach := slices.Clone(reach)
		childReach[actor] *= strategy[i]
		u, err := v.cfr(child, childReach)
		if err != nil {
			return nil, err
		}
		utilities[i] = u[actor]
		floats.AddScaled(value, strategy[i], u)
	}

	counterfactual := 1.0
	for p, r := range reach {
		if p != actor {
			counterfactual *= r
		}
	}
	for i, a := range actions {
		if err := node.AddRegret(a, counterfactual*(utilities[i]-value[actor])); err != nil {
			return nil, err
		}
		if err := node.AddStrategy(a, reach[actor]*strategy[i]); err != nil {
			return nil, err
		}
	}
	return value, nil
}
