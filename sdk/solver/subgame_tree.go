package solver

import (
	"fmt"
	"slices"

	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/poker"
	"gonum.org/v1/gonum/floats"
)

// Continuation labels offered at subgame leaves in place of legal actions.
// Each selects how play continues beyond the leaf.
const (
	ContinueBlueprint game.Action = '1'
	ContinueFold      game.Action = '2'
	ContinueCall      game.Action = '3'
	ContinueRaise     game.Action = '4'
)

// Continuations is the leaf action alphabet.
var Continuations = []game.Action{ContinueBlueprint, ContinueFold, ContinueCall, ContinueRaise}

const biasFactor = 5.0

// ContinuationFunc returns the utility vector of continuing from a leaf when
// player picks continuation a, given the base strategy.
type ContinuationFunc func(player int, base *NodeMap, a game.Action) ([]float64, error)

// TreeNode is a node of a pre-built subgame. Leaves stand in for the rest of
// the game and are valued through Value; internal nodes reach successors
// through Children.
type TreeNode struct {
	State    game.State
	Leaf     bool
	Children map[game.Action]*TreeNode
	Value    ContinuationFunc
}

// leafBias reshapes one player's base strategy beyond a leaf.
type leafBias struct {
	player int
	favour func(game.Action) bool
}

func (b *leafBias) apply(probs []float64, actions []game.Action) []float64 {
	out := slices.Clone(probs)
	for i, a := range actions {
		if b.favour(a) {
			out[i] *= biasFactor
		}
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}

func continuationBias(player int, a game.Action) (*leafBias, error) {
	var favour func(game.Action) bool
	switch a {
	case ContinueBlueprint:
		return nil, nil
	case ContinueFold:
		favour = func(x game.Action) bool { return x == game.Fold }
	case ContinueCall:
		favour = game.Action.Passive
	case ContinueRaise:
		favour = game.Action.Aggressive
	default:
		return nil, fmt.Errorf("unknown continuation %q", a)
	}
	return &leafBias{player: player, favour: favour}, nil
}

// BlueprintContinuation values a leaf at state by playing out the base
// average strategy, with the chooser's own decisions biased towards folding,
// calling or raising according to the continuation picked.
func BlueprintContinuation(state game.State) ContinuationFunc {
	return func(player int, base *NodeMap, a game.Action) ([]float64, error) {
		bias, err := continuationBias(player, a)
		if err != nil {
			return nil, err
		}
		return averageValue(state, base, bias)
	}
}

// BuildSubgame expands root to depth actions. Non-terminal states at the
// depth limit become leaves valued by BlueprintContinuation.
func BuildSubgame(root game.State, depth int) (*TreeNode, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: subgame depth cannot be negative", ErrInvalidConfig)
	}
	node := &TreeNode{State: root}
	if root.IsTerminal() {
		return node, nil
	}
	if depth == 0 {
		node.Leaf = true
		node.Value = BlueprintContinuation(root)
		return node, nil
	}
	actions := root.ValidActions()
	node.Children = make(map[game.Action]*TreeNode, len(actions))
	for _, a := range actions {
		next, err := root.Add(root.Turn(), a)
		if err != nil {
			return nil, err
		}
		child, err := BuildSubgame(next, depth-1)
		if err != nil {
			return nil, err
		}
		node.Children[a] = child
	}
	return node, nil
}

// Nature builds one subgame root per deal of cards, each starting after the
// public action history and expanded to depth.
func Nature(settings game.Settings, cards []poker.Card, history []game.Action, depth int) ([]*TreeNode, error) {
	deals, err := Deals(settings, cards)
	if err != nil {
		return nil, err
	}
	roots := make([]*TreeNode, 0, len(deals))
	for _, deal := range deals {
		state, err := game.NewState(settings, deal)
		if err != nil {
			return nil, err
		}
		for _, a := range history {
			if state, err = state.Add(state.Turn(), a); err != nil {
				return nil, fmt.Errorf("replay history: %w", err)
			}
		}
		root, err := BuildSubgame(state, depth)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// treePosition walks a TreeNode, valuing leaves against base.
type treePosition struct {
	node *TreeNode
	base *NodeMap
}

func (p treePosition) terminal() bool             { return p.node.State.IsTerminal() }
func (p treePosition) payoff() ([]float64, error) { return p.node.State.Payoff() }
func (p treePosition) turn() int                  { return p.node.State.Turn() }
func (p treePosition) label() string              { return p.node.State.InfoSet() }
func (p treePosition) leaf() bool                 { return p.node.Leaf }

func (p treePosition) actions() []game.Action {
	if p.node.Leaf {
		return Continuations
	}
	return p.node.State.ValidActions()
}

func (p treePosition) next(a game.Action) (position, error) {
	child, ok := p.node.Children[a]
	if !ok {
		return nil, fmt.Errorf("subgame node %q has no child for %s", p.label(), a)
	}
	return treePosition{node: child, base: p.base}, nil
}

func (p treePosition) value(player int, a game.Action) ([]float64, error) {
	if p.node.Value == nil {
		return nil, fmt.Errorf("subgame leaf %q has no continuation value", p.label())
	}
	return p.node.Value(player, p.base, a)
}

// InfoSetActions returns the actions offered at (player, label) in any of
// roots, searching depth first.
func InfoSetActions(roots []*TreeNode, player int, label string) ([]game.Action, bool) {
	var find func(*TreeNode) ([]game.Action, bool)
	find = func(n *TreeNode) ([]game.Action, bool) {
		if n.State.IsTerminal() {
			return nil, false
		}
		pos := treePosition{node: n}
		if pos.turn() == player && pos.label() == label {
			return pos.actions(), true
		}
		for _, child := range n.Children {
			if actions, ok := find(child); ok {
				return actions, true
			}
		}
		return nil, false
	}
	for _, root := range roots {
		if actions, ok := find(root); ok {
			return actions, true
		}
	}
	return nil, false
}
