package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/sdk/solver"
)

func TestRenderReport(t *testing.T) {
	nodes := solver.NewNodeMap()
	actions := []game.Action{game.Pass, game.Bet}
	node := nodes.GetOrCreate(0, "K", actions)
	require.NoError(t, node.AddStrategy(game.Bet, 3))
	require.NoError(t, node.AddStrategy(game.Pass, 1))

	out := renderReport(solver.NewReport(nodes, actions, []float64{0.25, -0.25}))
	assert.Contains(t, out, "Player 0")
	assert.Contains(t, out, "bet")
	assert.Contains(t, out, "0.750")
	assert.Contains(t, out, "0.250")
	assert.Contains(t, out, "p1=-0.2500")
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, "fold", actionName(game.Fold))
	assert.Equal(t, "raise-biased", actionName(solver.ContinueRaise))
	assert.Equal(t, "x", actionName(game.Action('x')))
}

func TestRenderMatrixStrategy(t *testing.T) {
	out := renderMatrixStrategy([]string{"rock", "paper", "scissors"}, []float64{0, 1, 0})
	assert.Contains(t, out, "paper")
	assert.Contains(t, out, "1.0000")
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar("train", &buf, false)
	bar.Update(solver.Progress{Iteration: 5, Iterations: 10, InfoSets: 12, Elapsed: time.Second})
	assert.Contains(t, buf.String(), "5/10")
	assert.False(t, strings.HasSuffix(buf.String(), "\n"))

	bar.Update(solver.Progress{Iteration: 10, Iterations: 10})
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	buf.Reset()
	quiet := newProgressBar("train", &buf, true)
	quiet.Update(solver.Progress{Iteration: 10, Iterations: 10})
	assert.Empty(t, buf.String())
}
