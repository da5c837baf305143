package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-safety/internal/lookup"
	"github.com/ukydev/vehicle-safety/internal/middleware"
	"github.com/ukydev/vehicle-safety/internal/models"
)

// LookupHandler serves VIN safety lookups for an authenticated session.
type LookupHandler struct {
	service *lookup.Service
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(service *lookup.Service) *LookupHandler {
	return &LookupHandler{service: service}
}

// Lookup handles a safety lookup request.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session context not found", http.StatusUnauthorized)
		return
	}

	rawVIN := r.URL.Query().Get("vin")
	force := r.URL.Query().Get("force") == "true"

	report, err := h.service.Lookup(r.Context(), claims.SessionID, claims.Contact, rawVIN, force)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(report)
}

// Reset clears the session's lookup caches.
func (h *LookupHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session context not found", http.StatusUnauthorized)
		return
	}

	h.service.Reset(claims.SessionID)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// writeLookupError maps the error taxonomy onto HTTP status codes.
func writeLookupError(w http.ResponseWriter, err error) {
	var (
		validationErr *models.ValidationError
		gateErr       *models.GateError
		decodeErr     *models.DecodeError
		outageErr     *models.TotalOutageError
	)

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Msg, http.StatusBadRequest)
	case errors.As(err, &gateErr):
		http.Error(w, gateErr.Msg, http.StatusForbidden)
	case errors.As(err, &decodeErr):
		http.Error(w, decodeErr.Msg, http.StatusUnprocessableEntity)
	case errors.As(err, &outageErr):
		http.Error(w, "All safety sources are unavailable, please retry", http.StatusBadGateway)
	case errors.Is(err, models.ErrSuperseded):
		http.Error(w, "Lookup superseded by a newer request", http.StatusConflict)
	default:
		log.WithError(err).Error("lookup failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
