package api

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/api/messages"
)

// handleMe verifies the caller's bearer token against the identity
// collaborator and returns the stored user profile.
func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.methodNotAllowed(w)
		return
	}

	token := bearerToken(r)
	if token == "" {
		a.writeJSON(w, http.StatusUnauthorized, &messages.ErrorResponse{Error: "Authorization required"})
		return
	}

	uid, err := a.accounts.IsAuthenticated(r.Context(), token)
	if err != nil {
		a.logger.Warn("token verification failed", zap.Error(err))
		a.writeJSON(w, http.StatusUnauthorized, &messages.ErrorResponse{Error: "Invalid or expired token"})
		return
	}

	data, err := a.accounts.GetUserData(r.Context(), uid)
	if err != nil {
		a.logger.Error("failed to load user data", zap.String("uid", uid), zap.Error(err))
		a.writeJSON(w, http.StatusInternalServerError, &messages.ErrorResponse{Error: "Failed to load user data"})
		return
	}

	a.writeJSON(w, http.StatusOK, &messages.UserResponse{
		UID:       data.UID,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Company:   data.Company,
		Role:      data.Role,
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
