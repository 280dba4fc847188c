package solver

import (
	"context"
	"fmt"

	"github.com/lox/pokercfr/internal/game"
)

// SubgameSolver re-solves a pre-built subgame with Monte Carlo CFR. It keeps
// its own node map; the base node map is only read, to value leaves.
type SubgameSolver struct {
	*trainer
	base *NodeMap
}

// NewSubgameSolver constructs a solver whose leaves are valued against base.
func NewSubgameSolver(settings game.Settings, cfg TrainingConfig, base *NodeMap) (*SubgameSolver, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: subgame solver needs a base node map", ErrInvalidConfig)
	}
	t, err := newTrainer(settings, cfg)
	if err != nil {
		return nil, err
	}
	return &SubgameSolver{trainer: t, base: base}, nil
}

// Freeze marks an info set of the subgame as fixed. Any traversal that
// reaches it fails with a *FrozenInfoSetError.
func (s *SubgameSolver) Freeze(player int, label string, actions []game.Action) {
	s.nodes.Freeze(player, label, actions)
}

// Traverse runs one external-sampling traversal of a subgame tree for player.
func (s *SubgameSolver) Traverse(player int, root *TreeNode, prune bool) ([]float64, error) {
	return s.traverse(player, treePosition{node: root, base: s.base}, prune)
}

// UpdateStrategy samples player's strategy along one path of a subgame tree.
func (s *SubgameSolver) UpdateStrategy(player int, root *TreeNode) error {
	return s.updateStrategy(player, treePosition{node: root, base: s.base})
}

// Solve runs iterations over roots, sampling one root per iteration, and
// returns the subgame node map.
func (s *SubgameSolver) Solve(ctx context.Context, roots []*TreeNode, iterations int, progress func(Progress)) (*NodeMap, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: subgame has no roots", ErrInvalidConfig)
	}
	s.logger.Debug().Int("roots", len(roots)).Int64("seed", s.seed).Msg("solving subgame")
	err := s.run(ctx, iterations, progress, func(iter int) error {
		root := roots[s.rng.IntN(len(roots))]
		return s.iterate(iter, treePosition{node: root, base: s.base})
	})
	if err != nil {
		return nil, err
	}
	return s.nodes, nil
}
