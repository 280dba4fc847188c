package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(99), Seed(99))
	assert.NotZero(t, Seed(0))
}

func TestWeightedIndex(t *testing.T) {
	rng := New(1)

	assert.Equal(t, -1, WeightedIndex(rng, nil))

	for range 100 {
		assert.Equal(t, 1, WeightedIndex(rng, []float64{0, 1, 0}))
		assert.NotEqual(t, 0, WeightedIndex(rng, []float64{-2, 0.5, 0.5}))
	}

	counts := make([]int, 3)
	for range 3000 {
		counts[WeightedIndex(rng, []float64{0, 0, 0})]++
	}
	for _, c := range counts {
		assert.InDelta(t, 1000, c, 150)
	}

	counts = make([]int, 2)
	for range 10000 {
		counts[WeightedIndex(rng, []float64{0.8, 0.2})]++
	}
	assert.InDelta(t, 8000, counts[0], 300)
}
