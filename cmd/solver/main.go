package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/pokercfr/internal/config"
	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/poker"
	"github.com/lox/pokercfr/sdk/solver"
)

var cli struct {
	Debug  bool   `help:"enable debug logging"`
	Config string `help:"run file (.hcl or .toml)" type:"path"`

	Train     TrainCmd     `cmd:"" help:"train a strategy and report expected utilities"`
	Subgame   SubgameCmd   `cmd:"" help:"train a base strategy, then re-solve a subgame against it"`
	RegretMin RegretMinCmd `cmd:"" help:"regret matching against a fixed rock-paper-scissors opponent"`
}

// GameFlags override the run file.
type GameFlags struct {
	Game          string `help:"game variant (kuhn|leduc)"`
	Players       int    `help:"number of players (2 or 3)"`
	Actions       int    `help:"kuhn action alphabet size (2 or 4)"`
	Algorithm     string `help:"training algorithm (mccfr|vanilla)"`
	Iterations    int    `help:"training iterations"`
	Seed          int64  `help:"random seed; 0 keeps the configured seed"`
	ProgressEvery int    `help:"update progress every N iterations (0 => iterations/100)" default:"0"`
	Quiet         bool   `help:"hide the progress bar"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("solver"),
		kong.Description("CFR solvers for Kuhn and Leduc poker"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)
	logger := log.With().Str("run", uuid.NewString()[:8]).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch kctx.Command() {
	case "train":
		err = cli.Train.Run(ctx, logger)
	case "subgame":
		err = cli.Subgame.Run(ctx, logger)
	case "regret-min":
		err = cli.RegretMin.Run(logger)
	default:
		log.Fatal().Msgf("unknown command: %s", kctx.Command())
	}
	if err != nil {
		if errors.Is(err, solver.ErrInsufficientTraining) {
			logger.Error().Msg("some information sets were never visited; train for more iterations")
		}
		logger.Fatal().Err(err).Str("command", kctx.Command()).Msg("command failed")
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

// run is everything a command needs after flags and the run file are merged.
type run struct {
	file     *config.File
	settings game.Settings
	deck     []poker.Card
	training solver.TrainingConfig
}

func (g GameFlags) resolve() (*run, error) {
	file := config.Default()
	if cli.Config != "" {
		loaded, err := config.Load(cli.Config)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		file = loaded
	}

	if g.Game != "" {
		file.Game.Variant = g.Game
	}
	if g.Players != 0 {
		file.Game.Players = g.Players
	}
	if g.Actions != 0 {
		file.Game.Actions = g.Actions
	}
	if file.Solver == nil {
		file.Solver = &config.SolverConfig{}
	}
	if g.Algorithm != "" {
		file.Solver.Algorithm = g.Algorithm
	}
	if g.Iterations != 0 {
		file.Solver.Iterations = g.Iterations
	}
	if g.Seed != 0 {
		file.Solver.Seed = g.Seed
	}
	if g.ProgressEvery != 0 {
		file.Solver.ProgressEvery = g.ProgressEvery
	}

	settings, err := file.Settings()
	if err != nil {
		return nil, err
	}
	deck, err := file.Deck(settings)
	if err != nil {
		return nil, err
	}
	training, err := file.Training()
	if err != nil {
		return nil, err
	}
	return &run{file: file, settings: settings, deck: deck, training: training}, nil
}

// engine is implemented by both full-game trainers.
type engine interface {
	SetLogger(zerolog.Logger)
	Seed() int64
	NodeMap() *solver.NodeMap
	Stats() solver.TraversalStats
	Train(ctx context.Context, cards []poker.Card, iterations int, progress func(solver.Progress)) (*solver.Report, error)
}

func newEngine(r *run) (engine, error) {
	if r.training.Algorithm == solver.AlgorithmVanilla {
		return solver.NewVanillaCFR(r.settings, r.training)
	}
	return solver.NewMonteCarloCFR(r.settings, r.training)
}

// train runs the configured full-game trainer with a progress bar.
func train(ctx context.Context, r *run, logger zerolog.Logger, quiet bool) (engine, *solver.Report, error) {
	e, err := newEngine(r)
	if err != nil {
		return nil, nil, err
	}
	e.SetLogger(logger)
	logger.Info().
		Str("game", string(r.settings.Variant)).
		Int("players", r.settings.NumPlayers).
		Int("actions", r.settings.NumActions).
		Str("algorithm", r.training.Algorithm.String()).
		Int("iterations", r.training.Iterations).
		Int64("seed", e.Seed()).
		Msg("starting training run")

	start := time.Now()
	bar := newProgressBar("train", os.Stderr, quiet)
	report, err := e.Train(ctx, r.deck, r.training.Iterations, bar.Update)
	if err != nil {
		return nil, nil, err
	}
	stats := e.Stats()
	logger.Info().
		Dur("duration", time.Since(start)).
		Int("infosets", e.NodeMap().Len()).
		Int64("last_nodes_visited", stats.NodesVisited).
		Int64("last_pruned_actions", stats.PrunedActions).
		Dur("last_iteration", stats.IterationTime).
		Msg("training completed")
	return e, report, nil
}

// TrainCmd trains a full game.
type TrainCmd struct {
	GameFlags `embed:""`
}

func (cmd *TrainCmd) Run(ctx context.Context, logger zerolog.Logger) error {
	r, err := cmd.resolve()
	if err != nil {
		return err
	}
	_, report, err := train(ctx, r, logger, cmd.Quiet)
	if err != nil {
		return err
	}
	fmt.Println(renderReport(report))
	return nil
}

// SubgameCmd re-solves part of the game against a trained base strategy.
type SubgameCmd struct {
	GameFlags `embed:""`

	History           string `help:"public action history before the subgame root, e.g. CR"`
	Depth             int    `help:"actions expanded below the root before leaves (0 keeps configured depth)"`
	SubgameIterations int    `help:"subgame iterations (0 keeps configured count)"`
}

func (cmd *SubgameCmd) Run(ctx context.Context, logger zerolog.Logger) error {
	r, err := cmd.resolve()
	if err != nil {
		return err
	}
	sub := config.SubgameConfig{Depth: 2, Iterations: 1000}
	if r.file.Subgame != nil {
		sub = *r.file.Subgame
	}
	if cmd.History != "" {
		sub.History = cmd.History
	}
	if cmd.Depth != 0 {
		sub.Depth = cmd.Depth
	}
	if cmd.SubgameIterations != 0 {
		sub.Iterations = cmd.SubgameIterations
	}

	base, _, err := train(ctx, r, logger, cmd.Quiet)
	if err != nil {
		return err
	}

	roots, err := solver.Nature(r.settings, r.deck, game.ParseActions(sub.History), sub.Depth)
	if err != nil {
		return err
	}
	s, err := solver.NewSubgameSolver(r.settings, r.training, base.NodeMap())
	if err != nil {
		return err
	}
	s.SetLogger(logger)
	for _, fr := range sub.Freeze {
		actions, ok := solver.InfoSetActions(roots, fr.Player, fr.Label)
		if !ok {
			return fmt.Errorf("freeze: info set %d/%q not in subgame", fr.Player, fr.Label)
		}
		s.Freeze(fr.Player, fr.Label, actions)
		logger.Info().Int("player", fr.Player).Str("label", fr.Label).Msg("froze info set")
	}

	logger.Info().
		Str("history", sub.History).
		Int("depth", sub.Depth).
		Int("roots", len(roots)).
		Int("iterations", sub.Iterations).
		Msg("solving subgame")
	bar := newProgressBar("subgame", os.Stderr, cmd.Quiet)
	nodes, err := s.Solve(ctx, roots, sub.Iterations, bar.Update)
	if err != nil {
		return err
	}

	alphabet := append(r.settings.Actions(), solver.Continuations...)
	fmt.Println(renderReport(solver.NewReport(nodes, alphabet, nil)))
	return nil
}

// RegretMinCmd learns a best response in rock-paper-scissors.
type RegretMinCmd struct {
	Iterations int       `help:"training iterations" default:"100000"`
	Seed       int64     `help:"random seed; 0 uses time seed" default:"1"`
	Opponent   []float64 `help:"opponent rock,paper,scissors probabilities" default:"0.4,0.3,0.3"`
}

func (cmd *RegretMinCmd) Run(logger zerolog.Logger) error {
	r, err := solver.NewRegretMin(solver.RockPaperScissors(), cmd.Opponent, cmd.Seed)
	if err != nil {
		return err
	}
	logger.Info().Int("iterations", cmd.Iterations).Floats64("opponent", cmd.Opponent).Msg("running regret minimisation")
	r.Train(cmd.Iterations)
	fmt.Println(renderMatrixStrategy([]string{"rock", "paper", "scissors"}, r.AverageStrategy()))
	return nil
}
