package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedKuhnBase(t *testing.T) *NodeMap {
	t.Helper()
	settings := game.KuhnSettings(2, 2)
	cfg := DefaultTrainingConfig()
	cfg.Algorithm = AlgorithmVanilla
	v, err := NewVanillaCFR(settings, cfg)
	require.NoError(t, err)
	_, err = v.Train(context.Background(), game.DefaultDeck(settings), 2000, nil)
	require.NoError(t, err)
	return v.NodeMap()
}

func TestBuildSubgameShape(t *testing.T) {
	settings := game.KuhnSettings(2, 2)
	root, err := game.NewState(settings, []poker.Card{king, jack})
	require.NoError(t, err)

	tree, err := BuildSubgame(root, 1)
	require.NoError(t, err)
	assert.False(t, tree.Leaf)
	require.Len(t, tree.Children, 2)
	for _, a := range []game.Action{game.Pass, game.Bet} {
		child := tree.Children[a]
		require.NotNil(t, child)
		assert.True(t, child.Leaf)
		assert.NotNil(t, child.Value)
		assert.Empty(t, child.Children)
	}

	// Terminal states stay terminal even inside the depth limit.
	full, err := BuildSubgame(root, 5)
	require.NoError(t, err)
	bp := full.Children[game.Bet].Children[game.Pass]
	assert.True(t, bp.State.IsTerminal())
	assert.False(t, bp.Leaf)

	_, err = BuildSubgame(root, -1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBlueprintContinuationBias(t *testing.T) {
	settings := game.KuhnSettings(2, 2)
	root, err := game.NewState(settings, []poker.Card{king, jack})
	require.NoError(t, err)
	afterBet, err := root.Add(0, game.Bet)
	require.NoError(t, err)

	// The second player folds or calls with a jack half the time each.
	base := NewNodeMap()
	node := base.GetOrCreate(1, "JB", afterBet.ValidActions())
	node.StrategySum[game.Pass] = 1
	node.StrategySum[game.Bet] = 1

	value := BlueprintContinuation(afterBet)
	tests := []struct {
		name   string
		player int
		a      game.Action
		want   float64
	}{
		{"blueprint", 1, ContinueBlueprint, -1.5},
		{"fold biased without fold action", 1, ContinueFold, -1.5},
		{"passive biased", 1, ContinueCall, -7.0 / 6},
		{"aggressive biased", 1, ContinueRaise, -11.0 / 6},
		{"bias only reshapes the chooser", 0, ContinueRaise, -1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := value(tt.player, base, tt.a)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, u[1], 1e-12)
			assert.InDelta(t, -tt.want, u[0], 1e-12)
		})
	}

	_, err = value(1, base, game.Action('9'))
	assert.Error(t, err)

	_, err = value(1, NewNodeMap(), ContinueBlueprint)
	assert.ErrorIs(t, err, ErrInsufficientTraining)
}

func TestSubgameSolve(t *testing.T) {
	settings := game.KuhnSettings(2, 2)
	base := trainedKuhnBase(t)

	roots, err := Nature(settings, game.DefaultDeck(settings), nil, 1)
	require.NoError(t, err)
	require.Len(t, roots, 6)

	cfg := DefaultTrainingConfig()
	cfg.Schedule.StrategyInterval = 1
	s, err := NewSubgameSolver(settings, cfg, base)
	require.NoError(t, err)

	nodes, err := s.Solve(context.Background(), roots, 3000, nil)
	require.NoError(t, err)
	assert.NotSame(t, base, nodes)

	leaf, ok := nodes.Lookup(1, "JB")
	require.True(t, ok)
	assert.Equal(t, Continuations, leaf.Actions)
	avg := leaf.AverageStrategy(Continuations)
	// Calling with a jack only loses more, so raise-biased play is avoided.
	assert.Less(t, avg[3], 0.2)

	rootNode, ok := nodes.Lookup(0, "K")
	require.True(t, ok)
	assert.Equal(t, []game.Action{game.Pass, game.Bet}, rootNode.Actions)

	_, ok = base.Lookup(1, "JB")
	require.True(t, ok)
	baseLeaf, _ := base.Lookup(1, "JB")
	assert.Equal(t, []game.Action{game.Pass, game.Bet}, baseLeaf.Actions, "base map untouched")
}

func TestSubgameFrozenInfoSet(t *testing.T) {
	settings := game.KuhnSettings(2, 2)
	base := trainedKuhnBase(t)
	roots, err := Nature(settings, game.DefaultDeck(settings), nil, 1)
	require.NoError(t, err)

	s, err := NewSubgameSolver(settings, DefaultTrainingConfig(), base)
	require.NoError(t, err)
	for _, label := range []string{"J", "Q", "K"} {
		s.Freeze(0, label, []game.Action{game.Pass, game.Bet})
	}

	_, err = s.Solve(context.Background(), roots, 10, nil)
	require.Error(t, err)
	var frozen *FrozenInfoSetError
	require.True(t, errors.As(err, &frozen))
	assert.Equal(t, 0, frozen.Player)
	assert.ErrorIs(t, err, ErrFrozenInfoSet)
}

func TestNatureReplaysHistory(t *testing.T) {
	settings := game.LeducSettings(2)
	roots, err := Nature(settings, game.DefaultDeck(settings), game.ParseActions("CR"), 2)
	require.NoError(t, err)
	require.Len(t, roots, 120)
	for _, root := range roots {
		assert.Equal(t, 0, root.State.Turn())
		assert.Contains(t, root.State.InfoSet(), "|CR")
	}

	_, err = Nature(settings, game.DefaultDeck(settings), game.ParseActions("F"), 1)
	assert.ErrorIs(t, err, game.ErrIllegalAction)

	_, err = NewSubgameSolver(settings, DefaultTrainingConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	s, err := NewSubgameSolver(settings, DefaultTrainingConfig(), NewNodeMap())
	require.NoError(t, err)
	_, err = s.Solve(context.Background(), nil, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestInfoSetActions(t *testing.T) {
	settings := game.KuhnSettings(2, 2)
	roots, err := Nature(settings, game.DefaultDeck(settings), nil, 1)
	require.NoError(t, err)

	actions, ok := InfoSetActions(roots, 0, "K")
	require.True(t, ok)
	assert.Equal(t, []game.Action{game.Pass, game.Bet}, actions)

	actions, ok = InfoSetActions(roots, 1, "QB")
	require.True(t, ok)
	assert.Equal(t, Continuations, actions, "depth limit leaves offer continuations")

	_, ok = InfoSetActions(roots, 1, "K")
	assert.False(t, ok)
}
