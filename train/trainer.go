// Package train connects the simulation, the controller and the genetic
// algorithm: it scores genomes by full episode rollouts and drives evolution.
package train

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/baldhumanity/autopark/evo"
	"github.com/baldhumanity/autopark/evo/brain"
)

// GenerationStats summarizes one evaluated generation.
type GenerationStats struct {
	Generation  int // 1-based
	Best        float64
	Average     float64
	BestOverall float64
	Parked      int
	Duration    time.Duration
}

// Trainer runs the evaluate/evolve loop and writes results to disk.
type Trainer struct {
	Config     *evo.Config
	Population *evo.Population
	Evaluator  *Evaluator
	Logger     *slog.Logger
	History    []GenerationStats

	bestOverall float64
}

// NewTrainer creates a trainer with a fresh random population.
func NewTrainer(config *evo.Config, logger *slog.Logger) (*Trainer, error) {
	if err := checkGenomeLength(config); err != nil {
		return nil, err
	}
	pop, err := evo.NewPopulation(&config.GA)
	if err != nil {
		return nil, fmt.Errorf("failed to create population: %w", err)
	}
	return newTrainer(config, pop, logger), nil
}

// ResumeTrainer continues from a checkpoint written by a previous run.
func ResumeTrainer(config *evo.Config, checkpointPath string, logger *slog.Logger) (*Trainer, error) {
	if err := checkGenomeLength(config); err != nil {
		return nil, err
	}
	pop, err := evo.LoadCheckpoint(checkpointPath, &config.GA)
	if err != nil {
		return nil, err
	}
	t := newTrainer(config, pop, logger)
	if pop.BestGenome != nil {
		t.bestOverall = pop.BestFitness
	}
	return t, nil
}

func checkGenomeLength(config *evo.Config) error {
	if config.GA.GenomeLength != brain.GenomeBits {
		return fmt.Errorf("config error: genome_length must be %d for the parking controller, got %d", brain.GenomeBits, config.GA.GenomeLength)
	}
	return nil
}

func newTrainer(config *evo.Config, pop *evo.Population, logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Trainer{
		Config:      config,
		Population:  pop,
		Evaluator:   &Evaluator{Workers: config.Training.Workers},
		Logger:      logger,
		bestOverall: math.Inf(-1),
	}
}

// Run trains until the configured number of generations has been evaluated or
// ctx is cancelled. Cancellation is only observed between generations.
func (t *Trainer) Run(ctx context.Context) error {
	dir := t.Config.Training.ResultsDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create results directory '%s': %w", dir, err)
	}

	stats := t.Population.Stats()
	t.Logger.Info("starting training",
		"generations", t.Config.Training.Generations,
		"pop_size", stats.PopulationSize,
		"mutation_rate", stats.MutationRate,
		"elite_size", stats.EliteSize,
		"start_generation", stats.Generation+1)

	var runErr error
	for t.Population.Generation < t.Config.Training.Generations {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if _, err := t.RunGeneration(ctx); err != nil {
			runErr = err
			break
		}
	}

	if err := t.finish(); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// RunGeneration evaluates the current population, records the best genome and
// evolves the next generation.
func (t *Trainer) RunGeneration(ctx context.Context) (GenerationStats, error) {
	start := time.Now()
	generation := t.Population.Generation + 1

	episodes, err := t.Evaluator.EvaluatePopulation(ctx, t.Population.Genomes)
	if err != nil {
		return GenerationStats{}, fmt.Errorf("fitness evaluation failed in generation %d: %w", generation, err)
	}
	scores := Fitnesses(episodes)

	bestIdx := evo.ArgMax(scores)
	best := scores[bestIdx]
	if best > t.bestOverall {
		t.bestOverall = best
		path, err := SaveGenome(t.Config.Training.ResultsDir, t.Population.Genomes[bestIdx], generation, best)
		if err != nil {
			t.Logger.Warn("failed to save best genome", "generation", generation, "error", err)
		} else {
			t.Logger.Info("new best genome", "generation", generation, "fitness", best, "path", path)
		}
	}

	parked := 0
	for _, ep := range episodes {
		if ep.Parked {
			parked++
		}
	}

	// Every score is in; now the population may be replaced.
	if _, _, err := t.Population.Evolve(scores); err != nil {
		return GenerationStats{}, fmt.Errorf("evolution failed in generation %d: %w", generation, err)
	}

	stats := GenerationStats{
		Generation:  generation,
		Best:        best,
		Average:     evo.Mean(scores),
		BestOverall: t.bestOverall,
		Parked:      parked,
		Duration:    time.Since(start),
	}
	t.History = append(t.History, stats)
	t.Logger.Info("generation finished",
		"generation", stats.Generation,
		"best", fmt.Sprintf("%.2f", stats.Best),
		"average", fmt.Sprintf("%.2f", stats.Average),
		"best_overall", fmt.Sprintf("%.2f", stats.BestOverall),
		"parked", stats.Parked,
		"duration", stats.Duration)

	if interval := t.Config.Training.CheckpointInterval; interval > 0 && t.Population.Generation%interval == 0 {
		path := filepath.Join(t.Config.Training.ResultsDir, fmt.Sprintf("checkpoint_gen%d.gz", t.Population.Generation))
		if err := t.Population.SaveCheckpoint(path); err != nil {
			t.Logger.Warn("failed to save checkpoint", "generation", generation, "error", err)
		} else {
			t.Logger.Debug("checkpoint saved", "path", path)
		}
	}
	return stats, nil
}

// finish writes the best genome and the fitness chart.
func (t *Trainer) finish() error {
	dir := t.Config.Training.ResultsDir
	best, fitness := t.Population.Best()
	if best == nil {
		t.Logger.Info("no generation evaluated, nothing to save")
		return nil
	}
	path := filepath.Join(dir, "best_genome.txt")
	if err := WriteGenome(path, best); err != nil {
		return err
	}
	t.Logger.Info("training complete", "generation", t.Population.Generation, "best_fitness", fitness, "path", path)

	if len(t.History) > 0 {
		chart := filepath.Join(dir, "fitness.png")
		if err := PlotHistory(t.History, chart); err != nil {
			t.Logger.Warn("failed to plot fitness history", "error", err)
		}
	}
	return nil
}
