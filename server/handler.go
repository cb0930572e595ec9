// Package server exposes genome evaluation over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/baldhumanity/autopark/train"
)

type Handler struct {
	validate  *validator.Validate
	evaluator *train.Evaluator
	logger    *slog.Logger
	metrics   *metrics

	Mux *chi.Mux
}

// NewHandler builds a handler that scores genomes with evaluator.
func NewHandler(evaluator *train.Evaluator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		evaluator: evaluator,
		logger:    logger,
		metrics:   newMetrics(),

		Mux: chi.NewRouter(),
	}
	h.RegisterRoutes()
	return h
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestLogger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Healthz)
	h.Mux.Post("/evaluate", h.Evaluate)
	h.Mux.Method(http.MethodGet, "/metrics", h.metrics.handler())
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Mux.ServeHTTP(w, r)
}
