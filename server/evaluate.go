package server

import (
	"errors"
	"net/http"

	"github.com/baldhumanity/autopark/evo"
	"github.com/baldhumanity/autopark/evo/brain"
)

type evaluateRequest struct {
	Genome string `json:"genome" validate:"required"`
}

type evaluateResponse struct {
	Fitness    float64 `json:"fitness"`
	Steps      int     `json:"steps"`
	Collisions int     `json:"collisions"`
	Parked     bool    `json:"parked"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Evaluate runs one episode for the posted genome.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.reject(w, r, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.reject(w, r, err)
		return
	}

	genome, err := evo.ParseGenome(req.Genome, brain.GenomeBits)
	if err != nil {
		h.reject(w, r, err)
		return
	}

	ep, err := h.evaluator.Evaluate(genome)
	if err != nil {
		if errors.Is(err, evo.ErrInvalidLength) {
			h.reject(w, r, err)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.metrics.observe(ep.Fitness, ep.Steps, ep.Parked)
	h.writeJSON(w, r, http.StatusOK, evaluateResponse{
		Fitness:    ep.Fitness,
		Steps:      ep.Steps,
		Collisions: ep.Collisions,
		Parked:     ep.Parked,
	})
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, err error) {
	h.metrics.rejected()
	h.badRequest(w, r, err)
}
