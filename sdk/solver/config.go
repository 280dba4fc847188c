package solver

import (
	"fmt"
	"strings"
)

// Algorithm selects the training procedure.
type Algorithm uint8

const (
	AlgorithmMCCFR Algorithm = iota
	AlgorithmVanilla
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmMCCFR:
		return "mccfr"
	case AlgorithmVanilla:
		return "vanilla"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "mccfr", "mc", "external":
		return AlgorithmMCCFR, nil
	case "vanilla", "cfr":
		return AlgorithmVanilla, nil
	default:
		return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, s)
	}
}

// Schedule controls when Monte Carlo CFR updates the average strategy,
// prunes, and discounts. Iterations are counted from 1.
type Schedule struct {
	// RegretMinimum is the regret at or below which pruned traversals skip an action.
	RegretMinimum float64

	// StrategyInterval is how often the average strategy is sampled.
	StrategyInterval int

	// PruneThreshold is the iteration after which pruning may be used.
	PruneThreshold int

	// PruneProbability is the chance a post-threshold iteration prunes.
	PruneProbability float64

	// DiscountInterval is how often linear discounting is applied.
	DiscountInterval int

	// LCFRThreshold is the iteration from which discounting stops.
	LCFRThreshold int
}

// DefaultSchedule returns the schedule used for Kuhn and Leduc training.
func DefaultSchedule() Schedule {
	return Schedule{
		RegretMinimum:    -300000,
		StrategyInterval: 100,
		PruneThreshold:   200,
		PruneProbability: 0.95,
		DiscountInterval: 100,
		LCFRThreshold:    400,
	}
}

// Validate ensures the schedule is usable.
func (s Schedule) Validate() error {
	if s.StrategyInterval <= 0 {
		return fmt.Errorf("%w: strategy interval must be > 0", ErrInvalidConfig)
	}
	if s.DiscountInterval <= 0 {
		return fmt.Errorf("%w: discount interval must be > 0", ErrInvalidConfig)
	}
	if s.PruneThreshold < 0 {
		return fmt.Errorf("%w: prune threshold cannot be negative", ErrInvalidConfig)
	}
	if s.LCFRThreshold < 0 {
		return fmt.Errorf("%w: lcfr threshold cannot be negative", ErrInvalidConfig)
	}
	if s.PruneProbability < 0 || s.PruneProbability > 1 {
		return fmt.Errorf("%w: prune probability must be within [0, 1]", ErrInvalidConfig)
	}
	if s.RegretMinimum > 0 {
		return fmt.Errorf("%w: regret minimum must not be positive", ErrInvalidConfig)
	}
	return nil
}

// TrainingConfig aggregates parameters that control a training run.
type TrainingConfig struct {
	Iterations    int
	Seed          int64
	ProgressEvery int
	Algorithm     Algorithm
	Schedule      Schedule
}

// Validate ensures the training parameters are safe to use.
func (c TrainingConfig) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be > 0", ErrInvalidConfig)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress interval cannot be negative", ErrInvalidConfig)
	}
	if c.Algorithm > AlgorithmVanilla {
		return fmt.Errorf("%w: invalid algorithm", ErrInvalidConfig)
	}
	return c.Schedule.Validate()
}

// DefaultTrainingConfig returns a minimal configuration for local experimentation.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Iterations:    10000,
		Seed:          1,
		ProgressEvery: 0,
		Algorithm:     AlgorithmMCCFR,
		Schedule:      DefaultSchedule(),
	}
}
