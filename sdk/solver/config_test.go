package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTrainingConfigValid(t *testing.T) {
	require.NoError(t, DefaultTrainingConfig().Validate())
	sched := DefaultSchedule()
	assert.Equal(t, -300000.0, sched.RegretMinimum)
	assert.Equal(t, 100, sched.StrategyInterval)
	assert.Equal(t, 200, sched.PruneThreshold)
	assert.Equal(t, 100, sched.DiscountInterval)
	assert.Equal(t, 400, sched.LCFRThreshold)
	assert.Equal(t, 0.95, sched.PruneProbability)
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Schedule)
	}{
		{"zero strategy interval", func(s *Schedule) { s.StrategyInterval = 0 }},
		{"zero discount interval", func(s *Schedule) { s.DiscountInterval = 0 }},
		{"negative prune threshold", func(s *Schedule) { s.PruneThreshold = -1 }},
		{"negative lcfr threshold", func(s *Schedule) { s.LCFRThreshold = -1 }},
		{"probability above one", func(s *Schedule) { s.PruneProbability = 1.5 }},
		{"positive regret minimum", func(s *Schedule) { s.RegretMinimum = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSchedule()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidConfig)
		})
	}
}

func TestTrainingConfigValidate(t *testing.T) {
	cfg := DefaultTrainingConfig()
	cfg.Iterations = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultTrainingConfig()
	cfg.ProgressEvery = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultTrainingConfig()
	cfg.Algorithm = Algorithm(9)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("Vanilla")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmVanilla, a)
	assert.Equal(t, "vanilla", a.String())

	a, err = ParseAlgorithm("mccfr")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmMCCFR, a)

	_, err = ParseAlgorithm("deep")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
