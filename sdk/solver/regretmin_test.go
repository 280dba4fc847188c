package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegretMinFindsBestResponse(t *testing.T) {
	// A rock-heavy opponent is best answered with paper.
	r, err := NewRegretMin(RockPaperScissors(), []float64{0.4, 0.3, 0.3}, 9)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, r.Strategy())

	r.Train(100000)
	avg := r.AverageStrategy()
	require.Len(t, avg, 3)
	assert.Greater(t, avg[1], 0.9)
	assert.InDelta(t, 1, avg[0]+avg[1]+avg[2], 1e-9)
}

func TestRegretMinValidation(t *testing.T) {
	_, err := NewRegretMin(nil, []float64{1}, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewRegretMin(RockPaperScissors(), []float64{0.5, 0.5}, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewRegretMin(RockPaperScissors(), []float64{0.5, 0.5, 0.5}, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewRegretMin(RockPaperScissors(), []float64{1.5, -0.5, 0}, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
