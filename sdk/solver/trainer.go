package solver

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/internal/randutil"
	"github.com/lox/pokercfr/poker"
	"github.com/rs/zerolog"
)

// TraversalStats captures instrumentation metrics for a single iteration.
type TraversalStats struct {
	NodesVisited  int64
	TerminalNodes int64
	PrunedActions int64
	IterationTime time.Duration
}

// Progress contains metadata emitted during long-running solver operations.
type Progress struct {
	Iteration  int
	Iterations int
	InfoSets   int
	Elapsed    time.Duration
	Stats      TraversalStats
}

// trainer holds what every CFR engine shares: the node map being trained,
// the seeded random source, and instrumentation.
type trainer struct {
	settings game.Settings
	cfg      TrainingConfig
	nodes    *NodeMap
	rng      *rand.Rand
	seed     int64
	clock    quartz.Clock
	logger   zerolog.Logger

	statsMu sync.Mutex
	stats   TraversalStats
	current TraversalStats
}

func newTrainer(settings game.Settings, cfg TrainingConfig) (*trainer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := randutil.Seed(cfg.Seed)
	return &trainer{
		settings: settings,
		cfg:      cfg,
		nodes:    NewNodeMap(),
		rng:      randutil.New(seed),
		seed:     seed,
		clock:    quartz.NewReal(),
		logger:   zerolog.Nop(),
	}, nil
}

// SetLogger routes schedule events to logger.
func (t *trainer) SetLogger(logger zerolog.Logger) {
	t.logger = logger
}

// SetClock replaces the clock used for timing iterations.
func (t *trainer) SetClock(clock quartz.Clock) {
	t.clock = clock
}

// Seed returns the seed the random source was built from.
func (t *trainer) Seed() int64 {
	return t.seed
}

// NodeMap returns the info sets trained so far.
func (t *trainer) NodeMap() *NodeMap {
	return t.nodes
}

// Settings returns the game being trained.
func (t *trainer) Settings() game.Settings {
	return t.settings
}

// Stats returns the most recent traversal statistics recorded by the trainer.
func (t *trainer) Stats() TraversalStats {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	return t.stats
}

func (t *trainer) setStats(stats TraversalStats) {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	t.stats = stats
}

// run executes step for iterations 1..n, checking ctx between iterations and
// reporting progress every ProgressEvery iterations (or every 1% by default).
func (t *trainer) run(ctx context.Context, iterations int, progress func(Progress), step func(iter int) error) error {
	if iterations <= 0 {
		return fmt.Errorf("%w: iterations must be > 0", ErrInvalidConfig)
	}
	batch := iterations / 100
	if batch == 0 {
		batch = 1
	}
	if cfg := t.cfg.ProgressEvery; cfg > 0 {
		batch = cfg
	}

	started := t.clock.Now()
	for iter := 1; iter <= iterations; iter++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		startIter := t.clock.Now()
		t.current = TraversalStats{}
		if err := step(iter); err != nil {
			return fmt.Errorf("iteration %d: %w", iter, err)
		}
		t.current.IterationTime = t.clock.Since(startIter)
		t.setStats(t.current)

		if progress != nil && (iter%batch == 0 || iter == iterations) {
			progress(Progress{
				Iteration:  iter,
				Iterations: iterations,
				InfoSets:   t.nodes.Len(),
				Elapsed:    t.clock.Since(started),
				Stats:      t.current,
			})
		}
	}
	t.logger.Debug().
		Int("iterations", iterations).
		Int("info_sets", t.nodes.Len()).
		Dur("elapsed", t.clock.Since(started)).
		Msg("training finished")
	return nil
}

// Report evaluates the average strategy over every deal of cards and
// collects the per-player strategy tables.
func (t *trainer) Report(ctx context.Context, cards []poker.Card) (*Report, error) {
	utilities, err := ExpectedUtility(ctx, t.nodes, t.settings, cards)
	if err != nil {
		return nil, err
	}
	return NewReport(t.nodes, t.settings.Actions(), utilities), nil
}
