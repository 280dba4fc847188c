// Package config loads solver run files. A run file names the game variant,
// optional overrides of its betting structure, and solver parameters. Files
// ending in .toml are read as TOML; anything else is read as HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/poker"
	"github.com/lox/pokercfr/sdk/solver"
)

// File represents a complete run file.
type File struct {
	Game    GameConfig     `hcl:"game,block" toml:"game"`
	Solver  *SolverConfig  `hcl:"solver,block" toml:"solver"`
	Subgame *SubgameConfig `hcl:"subgame,block" toml:"subgame"`
}

// GameConfig selects a variant and optionally overrides its preset.
type GameConfig struct {
	Variant    string   `hcl:"variant,label" toml:"variant"`
	Players    int      `hcl:"players,optional" toml:"players"`
	Actions    int      `hcl:"actions,optional" toml:"actions"`
	Raises     int      `hcl:"raises,optional" toml:"raises"`
	RaiseSizes []int    `hcl:"raise_sizes,optional" toml:"raise_sizes"`
	Cards      []string `hcl:"cards,optional" toml:"cards"`
}

// SolverConfig overrides training parameters. Unset fields keep defaults.
type SolverConfig struct {
	Algorithm        string   `hcl:"algorithm,optional" toml:"algorithm"`
	Iterations       int      `hcl:"iterations,optional" toml:"iterations"`
	Seed             int64    `hcl:"seed,optional" toml:"seed"`
	ProgressEvery    int      `hcl:"progress_every,optional" toml:"progress_every"`
	RegretMinimum    *float64 `hcl:"regret_minimum,optional" toml:"regret_minimum"`
	StrategyInterval int      `hcl:"strategy_interval,optional" toml:"strategy_interval"`
	PruneThreshold   *int     `hcl:"prune_threshold,optional" toml:"prune_threshold"`
	PruneProbability *float64 `hcl:"prune_probability,optional" toml:"prune_probability"`
	DiscountInterval int      `hcl:"discount_interval,optional" toml:"discount_interval"`
	LCFRThreshold    *int     `hcl:"lcfr_threshold,optional" toml:"lcfr_threshold"`
}

// SubgameConfig describes a re-solve after a public action history.
type SubgameConfig struct {
	History    string         `hcl:"history,optional" toml:"history"`
	Depth      int            `hcl:"depth,optional" toml:"depth"`
	Iterations int            `hcl:"iterations,optional" toml:"iterations"`
	Freeze     []FreezeConfig `hcl:"freeze,block" toml:"freeze"`
}

// FreezeConfig names an info set to hold fixed while re-solving.
type FreezeConfig struct {
	Player int    `hcl:"player" toml:"player"`
	Label  string `hcl:"label" toml:"label"`
}

// Default returns two-player, two-action Kuhn poker with default training.
func Default() *File {
	return &File{
		Game: GameConfig{Variant: string(game.Kuhn), Players: 2, Actions: 2},
	}
}

// Load reads a run file. A missing file yields Default.
func Load(filename string) (*File, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	var cfg File
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		if _, err := toml.DecodeFile(filename, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	} else {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}
		diags = gohcl.DecodeBody(file.Body, nil, &cfg)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
	}

	// Apply defaults for missing values
	if cfg.Game.Players == 0 {
		cfg.Game.Players = 2
	}
	if cfg.Subgame != nil {
		if cfg.Subgame.Depth == 0 {
			cfg.Subgame.Depth = 2
		}
		if cfg.Subgame.Iterations == 0 {
			cfg.Subgame.Iterations = 1000
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the file describes a playable game and usable schedule.
func (f *File) Validate() error {
	settings, err := f.Settings()
	if err != nil {
		return err
	}
	if _, err := f.Deck(settings); err != nil {
		return err
	}
	if _, err := f.Training(); err != nil {
		return err
	}
	if f.Subgame != nil {
		if f.Subgame.Depth < 0 {
			return fmt.Errorf("subgame depth cannot be negative")
		}
		if f.Subgame.Iterations <= 0 {
			return fmt.Errorf("subgame iterations must be positive")
		}
		for _, fr := range f.Subgame.Freeze {
			if fr.Player < 0 || fr.Player >= settings.NumPlayers {
				return fmt.Errorf("freeze %q: player %d out of range", fr.Label, fr.Player)
			}
		}
	}
	return nil
}

// Settings returns the game settings: the variant preset with overrides.
func (f *File) Settings() (game.Settings, error) {
	var s game.Settings
	switch game.Variant(strings.ToLower(f.Game.Variant)) {
	case game.Kuhn:
		actions := f.Game.Actions
		if actions == 0 {
			actions = 2
		}
		s = game.KuhnSettings(f.Game.Players, actions)
	case game.Leduc:
		s = game.LeducSettings(f.Game.Players)
		if f.Game.Actions != 0 {
			s.NumActions = f.Game.Actions
		}
	default:
		return game.Settings{}, fmt.Errorf("%w: unknown variant %q", game.ErrInvalidSettings, f.Game.Variant)
	}
	if f.Game.Raises != 0 {
		s.NumRaises = f.Game.Raises
	}
	if len(f.Game.RaiseSizes) > 0 {
		s.RaiseSize = append([]int(nil), f.Game.RaiseSizes...)
	}
	if err := s.Validate(); err != nil {
		return game.Settings{}, err
	}
	return s, nil
}

// Deck returns the configured cards, or the variant's default deck.
func (f *File) Deck(settings game.Settings) ([]poker.Card, error) {
	if len(f.Game.Cards) == 0 {
		return game.DefaultDeck(settings), nil
	}
	cards, err := poker.ParseCards(f.Game.Cards)
	if err != nil {
		return nil, err
	}
	if err := settings.ValidateDeck(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Training returns solver configuration with the file's overrides applied.
func (f *File) Training() (solver.TrainingConfig, error) {
	cfg := solver.DefaultTrainingConfig()
	sc := f.Solver
	if sc == nil {
		return cfg, nil
	}
	if sc.Algorithm != "" {
		algo, err := solver.ParseAlgorithm(sc.Algorithm)
		if err != nil {
			return cfg, err
		}
		cfg.Algorithm = algo
	}
	if sc.Iterations != 0 {
		cfg.Iterations = sc.Iterations
	}
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	cfg.ProgressEvery = sc.ProgressEvery

	sched := &cfg.Schedule
	if sc.RegretMinimum != nil {
		sched.RegretMinimum = *sc.RegretMinimum
	}
	if sc.StrategyInterval != 0 {
		sched.StrategyInterval = sc.StrategyInterval
	}
	if sc.PruneThreshold != nil {
		sched.PruneThreshold = *sc.PruneThreshold
	}
	if sc.PruneProbability != nil {
		sched.PruneProbability = *sc.PruneProbability
	}
	if sc.DiscountInterval != 0 {
		sched.DiscountInterval = sc.DiscountInterval
	}
	if sc.LCFRThreshold != nil {
		sched.LCFRThreshold = *sc.LCFRThreshold
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
