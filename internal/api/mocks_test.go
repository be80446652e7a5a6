package api

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/auth"
	"github.com/est-ai/checkout-service/internal/catalog"
	"github.com/est-ai/checkout-service/internal/client/stripe"
	"github.com/est-ai/checkout-service/internal/db"
	"github.com/est-ai/checkout-service/internal/service"
)

var errMockProvider = errors.New("provider unavailable")

type mockPaymentProvider struct {
	CreateFunc func(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetFunc    func(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)

	gotParams *stripe.CheckoutSessionParams
}

func (m *mockPaymentProvider) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	m.gotParams = params
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (m *mockPaymentProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, sessionID)
	}
	return &stripe.CheckoutSession{ID: sessionID, PaymentStatus: "paid"}, nil
}

type mockFulfiller struct {
	FulfillFunc func(ctx context.Context, session *service.CompletedSession) error

	fulfillCalls []*service.CompletedSession
	failureCalls []*stripe.PaymentIntent
}

func (m *mockFulfiller) FulfillOrder(ctx context.Context, session *service.CompletedSession) error {
	m.fulfillCalls = append(m.fulfillCalls, session)
	if m.FulfillFunc != nil {
		return m.FulfillFunc(ctx, session)
	}
	return nil
}

func (m *mockFulfiller) HandlePaymentFailure(_ context.Context, intent *stripe.PaymentIntent) {
	m.failureCalls = append(m.failureCalls, intent)
}

type mockLeadStore struct {
	SaveFunc func(ctx context.Context, lead *db.Lead) error

	saved []*db.Lead
}

func (m *mockLeadStore) SaveLead(ctx context.Context, lead *db.Lead) error {
	m.saved = append(m.saved, lead)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, lead)
	}
	return nil
}

type mockAccountService struct {
	AuthenticateFunc func(ctx context.Context, idToken string) (string, error)
	GetFunc          func(ctx context.Context, uid string) (*auth.UserData, error)
}

func (m *mockAccountService) IsAuthenticated(ctx context.Context, idToken string) (string, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, idToken)
	}
	return "uid_test_1", nil
}

func (m *mockAccountService) GetUserData(ctx context.Context, uid string) (*auth.UserData, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, uid)
	}
	return &auth.UserData{UID: uid, Email: "student@example.com", FirstName: "Sam"}, nil
}

const testWebhookSecret = "whsec_test_secret"

func newTestAPI(payments *mockPaymentProvider, fulfiller *mockFulfiller, leads *mockLeadStore) *API {
	return newTestAPIWithAccounts(payments, fulfiller, leads, nil)
}

func newTestAPIWithAccounts(payments *mockPaymentProvider, fulfiller *mockFulfiller, leads *mockLeadStore, accounts AccountService) *API {
	cat := catalog.New(catalog.PriceRefs{
		"ai-fundamentals-self-paced": "price_X",
		"ai-fundamentals-cohort":     "price_cohort",
		"business-leaders-executive": "price_exec",
		// business-leaders-team left unconfigured on purpose.
	})
	return New(Config{
		WebhookSecret: testWebhookSecret,
		PublicOrigin:  "https://estaiconsulting.com",
	}, cat, payments, fulfiller, leads, accounts, zap.NewNop())
}
