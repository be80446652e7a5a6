package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/api/messages"
	"github.com/est-ai/checkout-service/internal/auth"
	"github.com/est-ai/checkout-service/internal/catalog"
	"github.com/est-ai/checkout-service/internal/client/stripe"
	"github.com/est-ai/checkout-service/internal/db"
	"github.com/est-ai/checkout-service/internal/service"
)

// PaymentProvider is the set of provider operations the handlers depend on.
// The concrete implementation lives in internal/client/stripe; tests
// substitute a double.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}

// OrderFulfiller handles verified webhook payloads.
type OrderFulfiller interface {
	FulfillOrder(ctx context.Context, session *service.CompletedSession) error
	HandlePaymentFailure(ctx context.Context, intent *stripe.PaymentIntent)
}

// LeadStore persists lead-capture submissions.
type LeadStore interface {
	SaveLead(ctx context.Context, lead *db.Lead) error
}

// AccountService is the identity collaborator boundary. It is optional; the
// account routes are only mounted when one is supplied.
type AccountService interface {
	IsAuthenticated(ctx context.Context, idToken string) (uid string, err error)
	GetUserData(ctx context.Context, uid string) (*auth.UserData, error)
}

// Config is the API's own configuration slice, injected at construction.
type Config struct {
	WebhookSecret string
	// PublicOrigin is the fallback origin for checkout callback URLs when
	// the request carries no usable host headers.
	PublicOrigin string
}

// API holds the handlers for the payment flow. Every handler is stateless;
// concurrent requests need no coordination.
type API struct {
	cfg       Config
	catalog   *catalog.Catalog
	payments  PaymentProvider
	fulfiller OrderFulfiller
	leads     LeadStore
	accounts  AccountService
	logger    *zap.Logger
}

func New(cfg Config, cat *catalog.Catalog, payments PaymentProvider, fulfiller OrderFulfiller, leads LeadStore, accounts AccountService, logger *zap.Logger) *API {
	return &API{
		cfg:       cfg,
		catalog:   cat,
		payments:  payments,
		fulfiller: fulfiller,
		leads:     leads,
		accounts:  accounts,
		logger:    logger,
	}
}

// Configure registers the API routes. Method filtering happens inside the
// handlers so the wrong verb yields a 405 JSON body rather than the router's
// default response.
func (a *API) Configure(router *mux.Router) {
	router.HandleFunc("/api/create-checkout-session", a.handleCreateCheckoutSession)
	router.HandleFunc("/api/webhook", a.handleWebhook)
	router.HandleFunc("/api/session-status", a.handleSessionStatus)
	router.HandleFunc("/api/lead", a.handleLead)
	if a.accounts != nil {
		router.HandleFunc("/api/me", a.handleMe)
	}
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (a *API) methodNotAllowed(w http.ResponseWriter) {
	a.writeJSON(w, http.StatusMethodNotAllowed, &messages.ErrorResponse{Error: "Method not allowed"})
}
