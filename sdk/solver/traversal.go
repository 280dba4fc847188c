package solver

import (
	"fmt"

	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/internal/randutil"
	"gonum.org/v1/gonum/floats"
)

// position is a node the Monte Carlo traversals can walk: either a live game
// state or a node of a pre-built subgame tree.
type position interface {
	terminal() bool
	payoff() ([]float64, error)
	turn() int
	label() string
	actions() []game.Action
	// leaf reports whether actions are continuation choices whose outcome
	// comes from value rather than from a child position.
	leaf() bool
	next(a game.Action) (position, error)
	value(player int, a game.Action) ([]float64, error)
}

type statePosition struct {
	state game.State
}

func (p statePosition) terminal() bool             { return p.state.IsTerminal() }
func (p statePosition) payoff() ([]float64, error) { return p.state.Payoff() }
func (p statePosition) turn() int                  { return p.state.Turn() }
func (p statePosition) label() string              { return p.state.InfoSet() }
func (p statePosition) actions() []game.Action     { return p.state.ValidActions() }
func (p statePosition) leaf() bool                 { return false }

func (p statePosition) next(a game.Action) (position, error) {
	next, err := p.state.Add(p.state.Turn(), a)
	if err != nil {
		return nil, err
	}
	return statePosition{state: next}, nil
}

func (p statePosition) value(int, game.Action) ([]float64, error) {
	return nil, fmt.Errorf("state %q has no continuation values", p.state.InfoSet())
}

// infoSet returns the acting player's info set at pos, refusing frozen sets.
func (t *trainer) infoSet(pos position) (*InfoSet, error) {
	player, label := pos.turn(), pos.label()
	node := t.nodes.GetOrCreate(player, label, pos.actions())
	if node.Frozen {
		return nil, &FrozenInfoSetError{Player: player, Label: label}
	}
	return node, nil
}

// traverse runs one external-sampling pass for player. Every action of the
// traverser is explored; other actors sample a single action from their
// current strategy. With prune set, traverser actions whose regret is at or
// below the schedule minimum are neither explored nor updated.
func (t *trainer) traverse(player int, pos position, prune bool) ([]float64, error) {
	t.current.NodesVisited++
	if pos.terminal() {
		t.current.TerminalNodes++
		return pos.payoff()
	}

	node, err := t.infoSet(pos)
	if err != nil {
		return nil, err
	}
	actor := pos.turn()
	actions := pos.actions()
	strategy := node.Strategy(actions)

	if actor != player {
		a := actions[randutil.WeightedIndex(t.rng, strategy)]
		if pos.leaf() {
			return pos.value(actor, a)
		}
		child, err := pos.next(a)
		if err != nil {
			return nil, err
		}
		return t.traverse(player, child, prune)
	}

	value := make([]float64, t.settings.NumPlayers)
	utilities := make([]float64, len(actions))
	explored := make([]bool, len(actions))
	for i, a := range actions {
		if prune && node.RegretSum[a] <= t.cfg.Schedule.RegretMinimum {
			t.current.PrunedActions++
			continue
		}
		var u []float64
		if pos.leaf() {
			u, err = pos.value(actor, a)
		} else {
			var child position
			child, err = pos.next(a)
			if err == nil {
				u, err = t.traverse(player, child, prune)
			}
		}
		if err != nil {
			return nil, err
		}
		utilities[i] = u[actor]
		floats.AddScaled(value, strategy[i], u)
		explored[i] = true
	}

	for i, a := range actions {
		if !explored[i] {
			continue
		}
		if err := node.AddRegret(a, utilities[i]-value[actor]); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// updateStrategy samples player's current strategy into the strategy sums.
// At player's own nodes one action is sampled, credited and followed; at other
// nodes every action is followed. At a subgame leaf the sampled continuation
// is credited and the walk stops.
func (t *trainer) updateStrategy(player int, pos position) error {
	if pos.terminal() {
		return nil
	}
	node, err := t.infoSet(pos)
	if err != nil {
		return err
	}
	actions := pos.actions()

	if pos.leaf() || pos.turn() == player {
		a := actions[randutil.WeightedIndex(t.rng, node.Strategy(actions))]
		if err := node.AddStrategy(a, 1); err != nil {
			return err
		}
		if pos.leaf() {
			return nil
		}
		child, err := pos.next(a)
		if err != nil {
			return err
		}
		return t.updateStrategy(player, child)
	}

	for _, a := range actions {
		child, err := pos.next(a)
		if err != nil {
			return err
		}
		if err := t.updateStrategy(player, child); err != nil {
			return err
		}
	}
	return nil
}

// discount applies linear CFR weighting for iteration iter.
func (t *trainer) discount(iter int) error {
	ratio := float64(iter) / float64(t.cfg.Schedule.DiscountInterval)
	d := ratio / (ratio + 1)
	t.logger.Debug().Int("iteration", iter).Float64("factor", d).Msg("discounting regrets and strategy sums")
	return t.nodes.Discount(d)
}

// shouldPrune decides whether iteration iter uses a pruned traversal. The
// random draw is only taken once pruning is possible.
func (t *trainer) shouldPrune(iter int) bool {
	if iter <= t.cfg.Schedule.PruneThreshold {
		return false
	}
	return t.rng.Float64() < t.cfg.Schedule.PruneProbability
}

// iterate runs one Monte Carlo iteration from root: for each player an
// optional strategy update and a traversal, then an optional discount.
func (t *trainer) iterate(iter int, root position) error {
	sched := t.cfg.Schedule
	for player := range t.settings.NumPlayers {
		if iter%sched.StrategyInterval == 0 {
			if err := t.updateStrategy(player, root); err != nil {
				return err
			}
		}
		if _, err := t.traverse(player, root, t.shouldPrune(iter)); err != nil {
			return err
		}
	}
	if iter < sched.LCFRThreshold && iter%sched.DiscountInterval == 0 {
		return t.discount(iter)
	}
	return nil
}
