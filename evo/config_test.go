package evo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
[GA]
pop_size = 20
genome_length = 180
mutation_rate = 0.05
elite_size = 2
tournament_size = 3
seed = 99

[Training]
generations = 10
workers = 4
checkpoint_interval = 5
results_dir = out # where results go
`)
	cfg, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, GAConfig{
		PopSize:        20,
		GenomeLength:   180,
		MutationRate:   0.05,
		EliteSize:      2,
		TournamentSize: 3,
		Seed:           99,
	}, cfg.GA)
	assert.Equal(t, TrainingConfig{
		Generations:        10,
		Workers:            4,
		CheckpointInterval: 5,
		ResultsDir:         "out",
	}, cfg.Training)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("[GA]\npop_size = 30\n"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.GA.PopSize = 30
	assert.Equal(t, want, cfg)

	empty, err := ParseConfig([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), empty)
}

func TestParseConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		ini  string
		want string
	}{
		{"elite larger than population", "[GA]\npop_size = 4\nelite_size = 5\ntournament_size = 2\n", "EliteSize"},
		{"mutation rate above one", "[GA]\nmutation_rate = 1.5\n", "MutationRate"},
		{"tiny population", "[GA]\npop_size = 1\nelite_size = 0\ntournament_size = 1\n", "PopSize"},
		{"no generations", "[Training]\ngenerations = 0\n", "Generations"},
		{"empty results dir", "[Training]\nresults_dir = # nothing\n", "ResultsDir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.ini))
			require.Error(t, err)
			assert.ErrorContains(t, err, "config error")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Training]\ngenerations = 3\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Training.Generations)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.ErrorContains(t, err, "failed to load config file")
}

func TestRepositoryConfigIsValid(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "configs", "parking.ini"))
	require.NoError(t, err)
	assert.Equal(t, 180, cfg.GA.GenomeLength)
	assert.Equal(t, 50, cfg.GA.PopSize)
}
