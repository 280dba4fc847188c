package solver

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/pokercfr/internal/randutil"
	"gonum.org/v1/gonum/floats"
)

// RockPaperScissors returns the row player's payoff matrix for rock, paper,
// scissors in that order.
func RockPaperScissors() [][]float64 {
	return [][]float64{
		{0, -1, 1},
		{1, 0, -1},
		{-1, 1, 0},
	}
}

// RegretMin learns a best response to a fixed mixed strategy in a two-player
// matrix game by regret matching.
type RegretMin struct {
	utilities   [][]float64
	opponent    []float64
	regretSum   []float64
	strategySum []float64
	rng         *rand.Rand
}

// NewRegretMin validates the game. utilities[i][j] is the payoff for playing
// i against j; opponent is the opponent's fixed mixed strategy.
func NewRegretMin(utilities [][]float64, opponent []float64, seed int64) (*RegretMin, error) {
	n := len(utilities)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty utility matrix", ErrInvalidConfig)
	}
	for i, row := range utilities {
		if len(row) != len(opponent) {
			return nil, fmt.Errorf("%w: utility row %d has %d entries, opponent has %d actions", ErrInvalidConfig, i, len(row), len(opponent))
		}
	}
	for _, p := range opponent {
		if p < 0 {
			return nil, fmt.Errorf("%w: opponent probabilities must be non-negative", ErrInvalidConfig)
		}
	}
	if s := floats.Sum(opponent); s < 1-1e-9 || s > 1+1e-9 {
		return nil, fmt.Errorf("%w: opponent strategy sums to %v", ErrInvalidConfig, s)
	}
	return &RegretMin{
		utilities:   utilities,
		opponent:    opponent,
		regretSum:   make([]float64, n),
		strategySum: make([]float64, n),
		rng:         randutil.New(randutil.Seed(seed)),
	}, nil
}

// Strategy returns the current regret-matching strategy.
func (r *RegretMin) Strategy() []float64 {
	strat := make([]float64, len(r.regretSum))
	total := 0.0
	for i, v := range r.regretSum {
		if v > 0 {
			strat[i] = v
			total += v
		}
	}
	return normalise(strat, total)
}

// Train plays iterations of sampled rounds against the fixed opponent.
func (r *RegretMin) Train(iterations int) {
	for range iterations {
		strategy := r.Strategy()
		floats.Add(r.strategySum, strategy)
		mine := randutil.WeightedIndex(r.rng, strategy)
		theirs := randutil.WeightedIndex(r.rng, r.opponent)
		for a := range r.regretSum {
			r.regretSum[a] += r.utilities[a][theirs] - r.utilities[mine][theirs]
		}
	}
}

// AverageStrategy returns the time-averaged strategy.
func (r *RegretMin) AverageStrategy() []float64 {
	return normalise(append([]float64(nil), r.strategySum...), floats.Sum(r.strategySum))
}
