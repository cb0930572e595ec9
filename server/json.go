package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	h.logger.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

// maxBodyBytes bounds request bodies. A genome needs 2*180-1 bytes.
const maxBodyBytes = 4 << 10

func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		h.writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "invalid field " + fe.Field() + ": " + fe.Tag()})
		return
	}
	h.writeJSON(w, r, http.StatusBadRequest, errorBody{Error: err.Error()})
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}
