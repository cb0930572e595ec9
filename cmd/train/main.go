package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/baldhumanity/autopark/evo"
	"github.com/baldhumanity/autopark/train"
)

func main() {
	opts, err := train.LoadOptions()
	if err != nil {
		slog.Error("failed to read environment", "error", err)
		os.Exit(1)
	}
	logger, err := opts.NewLogger(os.Stdout)
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	config, err := loadConfig(opts.ConfigPath, logger)
	if err != nil {
		logger.Error("failed to load configuration", "path", opts.ConfigPath, "error", err)
		os.Exit(1)
	}
	if err := opts.Apply(config); err != nil {
		logger.Error("invalid configuration override", "error", err)
		os.Exit(1)
	}

	var trainer *train.Trainer
	if opts.Checkpoint != "" {
		trainer, err = train.ResumeTrainer(config, opts.Checkpoint, logger)
		if err != nil {
			logger.Warn("failed to load checkpoint, starting new evolution", "path", opts.Checkpoint, "error", err)
			trainer = nil
		} else {
			logger.Info("resumed from checkpoint", "path", opts.Checkpoint, "generation", trainer.Population.Generation)
		}
	}
	if trainer == nil {
		trainer, err = train.NewTrainer(config, logger)
		if err != nil {
			logger.Error("failed to create trainer", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := trainer.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("training interrupted", "generation", trainer.Population.Generation)
			return
		}
		logger.Error("training failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the INI file, falling back to the defaults when it does not exist.
func loadConfig(path string, logger *slog.Logger) (*evo.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Warn("config file not found, using defaults", "path", path)
		return evo.DefaultConfig(), nil
	}
	return evo.LoadConfig(path)
}
