package train

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/autopark/evo"
)

func testConfig(t *testing.T) *evo.Config {
	t.Helper()
	cfg := evo.DefaultConfig()
	cfg.GA.PopSize = 6
	cfg.GA.EliteSize = 1
	cfg.GA.TournamentSize = 2
	cfg.GA.Seed = 7
	cfg.Training.Generations = 3
	cfg.Training.Workers = 2
	cfg.Training.CheckpointInterval = 2
	cfg.Training.ResultsDir = t.TempDir()
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTrainerRun(t *testing.T) {
	cfg := testConfig(t)
	trainer, err := NewTrainer(cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, trainer.Run(context.Background()))

	assert.Equal(t, 3, trainer.Population.Generation)
	require.Len(t, trainer.History, 3)
	for i, s := range trainer.History {
		assert.Equal(t, i+1, s.Generation)
		assert.GreaterOrEqual(t, s.Best, s.Average)
		if i > 0 {
			assert.GreaterOrEqual(t, s.BestOverall, trainer.History[i-1].BestOverall)
		}
	}

	dir := cfg.Training.ResultsDir
	best, err := LoadGenome(filepath.Join(dir, "best_genome.txt"))
	require.NoError(t, err)
	popBest, fitness := trainer.Population.Best()
	assert.Equal(t, popBest, best)
	assert.Equal(t, trainer.History[2].BestOverall, fitness)

	assert.FileExists(t, filepath.Join(dir, "fitness.png"))
	assert.FileExists(t, filepath.Join(dir, "checkpoint_gen2.gz"))
	saved, err := filepath.Glob(filepath.Join(dir, "genome_gen_1_fit_*.txt"))
	require.NoError(t, err)
	assert.Len(t, saved, 1, "the first generation always sets a new best")
}

func TestTrainerResume(t *testing.T) {
	cfg := testConfig(t)
	trainer, err := NewTrainer(cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, trainer.Run(context.Background()))

	resumed, err := ResumeTrainer(cfg, filepath.Join(cfg.Training.ResultsDir, "checkpoint_gen2.gz"), quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, resumed.Population.Generation)

	require.NoError(t, resumed.Run(context.Background()))
	require.Len(t, resumed.History, 1)
	assert.Equal(t, 3, resumed.History[0].Generation)
}

func TestTrainerCancelled(t *testing.T) {
	cfg := testConfig(t)
	trainer, err := NewTrainer(cfg, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, trainer.Run(ctx), context.Canceled)
	assert.Empty(t, trainer.History)

	_, err = os.Stat(filepath.Join(cfg.Training.ResultsDir, "best_genome.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewTrainerRequiresControllerLength(t *testing.T) {
	cfg := testConfig(t)
	cfg.GA.GenomeLength = 100
	_, err := NewTrainer(cfg, quietLogger())
	assert.ErrorContains(t, err, "genome_length must be 180")
}

func TestPlotHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitness.png")
	require.NoError(t, PlotHistory([]GenerationStats{
		{Generation: 1, Best: 10, Average: 2},
		{Generation: 2, Best: 15, Average: 6},
	}, path))
	assert.FileExists(t, path)

	assert.Error(t, PlotHistory(nil, path))
}
