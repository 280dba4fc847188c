package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/pokercfr/internal/game"
	"github.com/lox/pokercfr/poker"
	"github.com/lox/pokercfr/sdk/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)

	settings, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, game.KuhnSettings(2, 2), settings)

	training, err := cfg.Training()
	require.NoError(t, err)
	assert.Equal(t, solver.DefaultTrainingConfig(), training)
}

func TestLoadHCL(t *testing.T) {
	path := writeFile(t, "leduc.hcl", `
game "leduc" {
  players     = 3
  raises      = 1
  raise_sizes = [2, 6]
}

solver {
  algorithm         = "vanilla"
  iterations        = 500
  seed              = 42
  strategy_interval = 10
  prune_probability = 0
  lcfr_threshold    = 0
}

subgame {
  history = "CR"
  freeze {
    player = 1
    label  = "K|CR"
  }
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	settings, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, game.Leduc, settings.Variant)
	assert.Equal(t, 3, settings.NumPlayers)
	assert.Equal(t, 1, settings.NumRaises)
	assert.Equal(t, []int{2, 6}, settings.RaiseSize)

	deck, err := cfg.Deck(settings)
	require.NoError(t, err)
	assert.Len(t, deck, 8)

	training, err := cfg.Training()
	require.NoError(t, err)
	assert.Equal(t, solver.AlgorithmVanilla, training.Algorithm)
	assert.Equal(t, 500, training.Iterations)
	assert.Equal(t, int64(42), training.Seed)
	assert.Equal(t, 10, training.Schedule.StrategyInterval)
	assert.Equal(t, 0.0, training.Schedule.PruneProbability)
	assert.Equal(t, 0, training.Schedule.LCFRThreshold)
	assert.Equal(t, 200, training.Schedule.PruneThreshold, "unset fields keep defaults")

	require.NotNil(t, cfg.Subgame)
	assert.Equal(t, "CR", cfg.Subgame.History)
	assert.Equal(t, 2, cfg.Subgame.Depth)
	assert.Equal(t, 1000, cfg.Subgame.Iterations)
	assert.Equal(t, []FreezeConfig{{Player: 1, Label: "K|CR"}}, cfg.Subgame.Freeze)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "kuhn.toml", `
[game]
variant = "kuhn"
actions = 4
cards = ["Jh", "Qh", "Kh"]

[solver]
iterations = 2000
regret_minimum = -1000.0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	settings, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, game.KuhnSettings(2, 4), settings)

	deck, err := cfg.Deck(settings)
	require.NoError(t, err)
	assert.Equal(t, []poker.Card{
		poker.NewCard(poker.Jack, poker.Hearts),
		poker.NewCard(poker.Queen, poker.Hearts),
		poker.NewCard(poker.King, poker.Hearts),
	}, deck)

	training, err := cfg.Training()
	require.NoError(t, err)
	assert.Equal(t, 2000, training.Iterations)
	assert.Equal(t, -1000.0, training.Schedule.RegretMinimum)
	assert.Nil(t, cfg.Subgame)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"unknown variant", "bad.hcl", `game "holdem" {}`},
		{"too many players", "bad.hcl", `game "kuhn" { players = 6 }`},
		{"mismatched raise sizes", "bad.hcl", `game "leduc" { raise_sizes = [2] }`},
		{"duplicate cards", "bad.toml", "[game]\nvariant = \"kuhn\"\ncards = [\"Js\", \"Js\", \"Qs\"]\n"},
		{"bad card", "bad.toml", "[game]\nvariant = \"kuhn\"\ncards = [\"Zz\", \"Js\"]\n"},
		{"bad algorithm", "bad.hcl", "game \"kuhn\" {}\nsolver {\n  algorithm = \"deep\"\n}\n"},
		{"bad schedule", "bad.hcl", "game \"kuhn\" {}\nsolver {\n  prune_probability = 2\n}\n"},
		{"freeze player out of range", "bad.hcl", "game \"kuhn\" {}\nsubgame {\n  freeze {\n    player = 4\n    label = \"J\"\n  }\n}\n"},
		{"hcl syntax", "bad.hcl", `game "kuhn" {`},
		{"toml syntax", "bad.toml", `[game`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			assert.Error(t, err)
		})
	}
}
