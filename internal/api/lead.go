package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/api/messages"
	"github.com/est-ai/checkout-service/internal/db"
)

// handleLead persists a lead-gate form submission. The browser unlocks gated
// content from local storage regardless of this call's outcome, so the
// handler only needs to record the contact.
func (a *API) handleLead(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		a.methodNotAllowed(w)
		return
	}

	var req messages.LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Name == "" || req.Email == "" || req.Interest == "" {
		a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{Error: "name, email and interest are required"})
		return
	}

	if err := a.leads.SaveLead(r.Context(), &db.Lead{
		Name:     req.Name,
		Email:    req.Email,
		Interest: req.Interest,
	}); err != nil {
		a.logger.Error("failed to save lead", zap.String("email", req.Email), zap.Error(err))
		a.writeJSON(w, http.StatusInternalServerError, &messages.ErrorResponse{Error: "Failed to save lead"})
		return
	}

	a.logger.Info("lead captured",
		zap.String("email", req.Email),
		zap.String("interest", req.Interest),
	)

	a.writeJSON(w, http.StatusOK, &messages.WebhookAck{Received: true})
}
