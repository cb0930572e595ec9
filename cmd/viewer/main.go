package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/gdamore/tcell/v2"

	"github.com/baldhumanity/autopark/audio/device"
	"github.com/baldhumanity/autopark/evo/brain"
	"github.com/baldhumanity/autopark/sim"
	"github.com/baldhumanity/autopark/train"
	"github.com/baldhumanity/autopark/viewer"
)

type config struct {
	Genome   string `env:"GENOME"` // replay this genome file instead of driving by hand
	Sound    bool   `env:"SOUND" envDefault:"true"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	cfg := config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "AUTOPARK_"}); err != nil {
		slog.Error("failed to read environment", "error", err)
		os.Exit(1)
	}
	// The screen owns stdout while the viewer runs.
	logger, err := (&train.Options{LogLevel: cfg.LogLevel}).NewLogger(os.Stderr)
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}

	var pilot *brain.Brain
	if cfg.Genome != "" {
		genome, err := train.LoadGenome(cfg.Genome)
		if err != nil {
			logger.Error("failed to load genome", "error", err)
			os.Exit(1)
		}
		if pilot, err = brain.New(genome); err != nil {
			logger.Error("failed to build controller", "path", cfg.Genome, "error", err)
			os.Exit(1)
		}
		logger.Info("replaying genome", "path", cfg.Genome)
	}

	var sounds viewer.Sounds
	if cfg.Sound {
		spk, err := device.New()
		if err != nil {
			logger.Warn("audio initialization failed, running without sound", "error", err)
		} else {
			defer spk.Close()
			sounds = spk
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		logger.Error("failed to initialize screen", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := viewer.New(screen, sim.New(), pilot, sounds)
	runErr := app.Run(ctx)
	screen.Fini()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("viewer stopped", "error", runErr)
		os.Exit(1)
	}
}
