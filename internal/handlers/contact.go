package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-safety/internal/db"
	"github.com/ukydev/vehicle-safety/internal/models"
	"github.com/ukydev/vehicle-safety/internal/session"
)

// ContactHandler records the contact identifier that gates safety lookups
// and hands back a session token.
type ContactHandler struct {
	gate     db.ContactCollection
	sessions *session.Service
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(gate db.ContactCollection, sessions *session.Service) *ContactHandler {
	return &ContactHandler{gate: gate, sessions: sessions}
}

// RecordContact handles contact identifier submission.
func (h *ContactHandler) RecordContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.ContactRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		http.Error(w, "Contact identifier is required", http.StatusBadRequest)
		return
	}

	sessionID, err := session.NewSessionID()
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	if err := h.gate.RecordContact(r.Context(), sessionID, identifier); err != nil {
		log.WithError(err).Error("failed to record contact")
		http.Error(w, "Failed to record contact", http.StatusInternalServerError)
		return
	}

	token, err := h.sessions.IssueToken(sessionID, identifier)
	if err != nil {
		http.Error(w, "Failed to issue session token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.ContactResponse{SessionID: sessionID, Token: token})
}
