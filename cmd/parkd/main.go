package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/baldhumanity/autopark/server"
	"github.com/baldhumanity/autopark/train"
)

type config struct {
	Addr            string `env:"ADDR" envDefault:":8080"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
	WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"30"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
}

func main() {
	cfg := config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "AUTOPARK_"}); err != nil {
		slog.Error("failed to read environment", "error", err)
		os.Exit(1)
	}

	logger, err := (&train.Options{LogLevel: cfg.LogLevel}).NewLogger(os.Stdout)
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	h := server.NewHandler(&train.Evaluator{}, logger)
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	if err := <-shutdownErr; err != nil {
		logger.Error("failed to shut down server", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
