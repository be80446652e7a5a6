package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/client/stripe"
	"github.com/est-ai/checkout-service/internal/db"
	"github.com/est-ai/checkout-service/internal/mail"
)

type stubStore struct {
	RecordFunc func(ctx context.Context, order *db.Order) (bool, error)

	seen map[string]bool
}

func newStubStore() *stubStore {
	return &stubStore{seen: map[string]bool{}}
}

func (s *stubStore) RecordOrder(ctx context.Context, order *db.Order) (bool, error) {
	if s.RecordFunc != nil {
		return s.RecordFunc(ctx, order)
	}
	if s.seen[order.SessionID] {
		return false, nil
	}
	s.seen[order.SessionID] = true
	return true, nil
}

type stubMailer struct {
	SendFunc func(ctx context.Context, msg *mail.Message) error

	sent []*mail.Message
}

func (m *stubMailer) Send(ctx context.Context, msg *mail.Message) error {
	m.sent = append(m.sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

func knownSession() *CompletedSession {
	return &CompletedSession{
		SessionID:     "cs_1",
		CustomerEmail: "student@example.com",
		CustomerName:  "Ada Lovelace",
		CourseID:      "ai-fundamentals-self-paced",
		CourseName:    "AI Fundamentals - Self-Paced",
		AmountTotal:   49700,
		Currency:      "usd",
	}
}

func TestFulfillOrder_SendsConfirmation(t *testing.T) {
	mailer := &stubMailer{}
	f := NewFulfillment(newStubStore(), mailer, zap.NewNop())

	require.NoError(t, f.FulfillOrder(context.Background(), knownSession()))

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "student@example.com", msg.ToAddress)
	assert.Contains(t, msg.Subject, "AI Fundamentals - Self-Paced")
	assert.Contains(t, msg.PlainText, "Hi Ada Lovelace")
	assert.Contains(t, msg.PlainText, "497.00 USD")
	assert.Contains(t, msg.PlainText, "8 self-paced video modules")
	assert.Contains(t, msg.PlainText, "1. Create your account")
	assert.Contains(t, msg.HTML, "<strong>497.00 USD</strong>")
	assert.Contains(t, msg.HTML, "<ol>")
}

func TestFulfillOrder_UnknownCourseFallsBack(t *testing.T) {
	mailer := &stubMailer{}
	f := NewFulfillment(newStubStore(), mailer, zap.NewNop())

	session := knownSession()
	session.CourseID = "retired-course"
	session.CourseName = "Retired Course"

	require.NoError(t, f.FulfillOrder(context.Background(), session))

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].PlainText, "Check your email for access instructions")
}

func TestFulfillOrder_IdempotentUnderRedelivery(t *testing.T) {
	mailer := &stubMailer{}
	f := NewFulfillment(newStubStore(), mailer, zap.NewNop())

	session := knownSession()
	require.NoError(t, f.FulfillOrder(context.Background(), session))
	require.NoError(t, f.FulfillOrder(context.Background(), session))

	assert.Len(t, mailer.sent, 1, "redelivery must not re-send the confirmation")
}

func TestFulfillOrder_MailFailureDoesNotFailFulfillment(t *testing.T) {
	mailer := &stubMailer{
		SendFunc: func(_ context.Context, _ *mail.Message) error {
			return errors.New("smtp on fire")
		},
	}
	f := NewFulfillment(newStubStore(), mailer, zap.NewNop())

	assert.NoError(t, f.FulfillOrder(context.Background(), knownSession()))
}

func TestFulfillOrder_StoreFailureFailsFulfillment(t *testing.T) {
	store := newStubStore()
	store.RecordFunc = func(_ context.Context, _ *db.Order) (bool, error) {
		return false, errors.New("disk full")
	}
	mailer := &stubMailer{}
	f := NewFulfillment(store, mailer, zap.NewNop())

	err := f.FulfillOrder(context.Background(), knownSession())
	require.Error(t, err)
	assert.Empty(t, mailer.sent)
}

func TestFulfillOrder_NoMailerConfigured(t *testing.T) {
	f := NewFulfillment(newStubStore(), nil, zap.NewNop())

	assert.NoError(t, f.FulfillOrder(context.Background(), knownSession()))
}

func TestFulfillOrder_NoCustomerEmail(t *testing.T) {
	mailer := &stubMailer{}
	f := NewFulfillment(newStubStore(), mailer, zap.NewNop())

	session := knownSession()
	session.CustomerEmail = ""

	require.NoError(t, f.FulfillOrder(context.Background(), session))
	assert.Empty(t, mailer.sent)
}

func TestHandlePaymentFailure_DoesNotPanic(t *testing.T) {
	f := NewFulfillment(newStubStore(), nil, zap.NewNop())

	f.HandlePaymentFailure(context.Background(), &stripe.PaymentIntent{
		ID:       "pi_1",
		Amount:   49700,
		Currency: "usd",
		LastPaymentError: &stripe.PaymentError{
			Message: "card declined",
		},
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "497.00 USD", formatAmount(49700, "usd"))
	assert.Equal(t, "12.05 EUR", formatAmount(1205, "eur"))
	assert.Equal(t, "0.99 USD", formatAmount(99, ""))
}
