package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/api/messages"
)

// handleSessionStatus backs the success page: given a session id from the
// checkout redirect, it reads the payment status back from the provider.
func (a *API) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.methodNotAllowed(w)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{Error: "session_id is required"})
		return
	}

	session, err := a.payments.GetCheckoutSession(r.Context(), sessionID)
	if err != nil {
		a.logger.Error("failed to retrieve checkout session",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		a.writeJSON(w, http.StatusInternalServerError, &messages.ErrorResponse{
			Error:   "Failed to retrieve session",
			Message: err.Error(),
		})
		return
	}

	resp := &messages.SessionStatusResponse{
		Status: session.PaymentStatus,
		Course: session.Metadata["courseName"],
	}
	if session.CustomerDetails != nil {
		resp.CustomerEmail = session.CustomerDetails.Email
	}

	a.writeJSON(w, http.StatusOK, resp)
}
