package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/api/messages"
	"github.com/est-ai/checkout-service/internal/client/stripe"
	"github.com/est-ai/checkout-service/internal/metrics"
)

// handleCreateCheckoutSession validates the purchase intent against the
// catalog and asks the payment provider for a hosted checkout session.
func (a *API) handleCreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		// Preflight is answered by the CORS middleware; an empty 200 here
		// covers direct OPTIONS probes.
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		a.methodNotAllowed(w)
		return
	}

	var req messages.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{
			Error:        "Invalid request body",
			ValidCourses: a.catalog.IDs(),
		})
		return
	}

	course, ok := a.catalog.Lookup(req.CourseID)
	if !ok {
		a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{
			Error:        "Invalid course ID",
			ValidCourses: a.catalog.IDs(),
		})
		return
	}

	if !course.Purchasable() {
		// Operator mistake, not caller misuse. Kept on a 5xx so monitoring
		// separates it from the client error above.
		a.logger.Error("course has no price reference configured",
			zap.String("course_id", course.ID))
		a.writeJSON(w, http.StatusInternalServerError, &messages.ErrorResponse{
			Error: "Course price not configured. Please add Price ID to environment variables.",
		})
		return
	}

	baseURL := a.requestOrigin(r)

	session, err := a.payments.CreateCheckoutSession(r.Context(), &stripe.CheckoutSessionParams{
		PriceRef:      course.ProviderPriceRef,
		SuccessURL:    baseURL + "/success.html?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     baseURL + "/cancel.html",
		CustomerEmail: req.Email,
		Metadata: map[string]string{
			"courseId":    course.ID,
			"courseName":  course.DisplayName,
			"coursePrice": strconv.FormatInt(course.PriceAmount, 10),
		},
	})
	if err != nil {
		// The browser owns retry via user-initiated re-click; nothing is
		// retried here.
		a.logger.Error("checkout session creation failed",
			zap.String("course_id", course.ID),
			zap.Error(err),
		)
		a.writeJSON(w, http.StatusInternalServerError, &messages.ErrorResponse{
			Error:   "Failed to create checkout session",
			Message: err.Error(),
		})
		return
	}

	metrics.CheckoutSessionsCreated.Inc()

	a.writeJSON(w, http.StatusOK, &messages.CheckoutResponse{
		SessionID: session.ID,
		URL:       session.URL,
	})
}

// requestOrigin derives the redirect base origin. The same code runs behind
// reverse proxies with different header conventions, so forwarded headers
// win over the raw host, which wins over the configured production origin.
func (a *API) requestOrigin(r *http.Request) string {
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "https"
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	if host == "" {
		return a.cfg.PublicOrigin
	}
	return fmt.Sprintf("%s://%s", proto, host)
}
