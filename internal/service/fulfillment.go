package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/client/stripe"
	"github.com/est-ai/checkout-service/internal/db"
	"github.com/est-ai/checkout-service/internal/mail"
	"github.com/est-ai/checkout-service/internal/metrics"
)

// CompletedSession is the verified data extracted from a completed-session
// webhook event. All of it originated from this system's own checkout
// metadata, round-tripped through the payment provider.
type CompletedSession struct {
	SessionID     string
	CustomerEmail string
	CustomerName  string
	CourseID      string
	CourseName    string
	AmountTotal   int64
	Currency      string
}

// OrderStore records fulfilled orders keyed by session id.
type OrderStore interface {
	RecordOrder(ctx context.Context, order *db.Order) (created bool, err error)
}

// Fulfillment performs post-payment actions for a verified completed
// session: record the order, then send the confirmation email.
type Fulfillment struct {
	store  OrderStore
	mailer mail.Mailer
	logger *zap.Logger
}

// NewFulfillment creates the fulfillment service. mailer may be nil when no
// mail provider is configured; fulfillment then only records the order.
func NewFulfillment(store OrderStore, mailer mail.Mailer, logger *zap.Logger) *Fulfillment {
	return &Fulfillment{
		store:  store,
		mailer: mailer,
		logger: logger,
	}
}

// FulfillOrder is safe under webhook redelivery: a session id seen before is
// acknowledged without re-sending the confirmation email. A returned error
// means the webhook must be answered with a server error so the provider
// redelivers.
func (f *Fulfillment) FulfillOrder(ctx context.Context, session *CompletedSession) error {
	f.logger.Info("fulfilling order",
		zap.String("session_id", session.SessionID),
		zap.String("course_id", session.CourseID),
		zap.String("email", session.CustomerEmail),
		zap.Int64("amount_total", session.AmountTotal),
		zap.String("currency", session.Currency),
	)

	created, err := f.store.RecordOrder(ctx, &db.Order{
		SessionID:     session.SessionID,
		CourseID:      session.CourseID,
		CourseName:    session.CourseName,
		CustomerEmail: session.CustomerEmail,
		CustomerName:  session.CustomerName,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
	})
	if err != nil {
		return fmt.Errorf("record order: %w", err)
	}
	if !created {
		f.logger.Info("duplicate webhook delivery, order already recorded",
			zap.String("session_id", session.SessionID))
		return nil
	}

	if f.mailer == nil || session.CustomerEmail == "" {
		f.logger.Info("skipping confirmation email",
			zap.Bool("mailer_configured", f.mailer != nil),
			zap.String("session_id", session.SessionID))
		return nil
	}

	access := accessFor(session.CourseID)
	msg := buildConfirmation(session, access)

	// A missed confirmation is recoverable by support follow-up. Failing
	// fulfillment here would trigger provider redelivery and duplicate
	// processing instead.
	if err := f.mailer.Send(ctx, msg); err != nil {
		metrics.EmailsFailed.Inc()
		f.logger.Error("confirmation email failed",
			zap.String("session_id", session.SessionID),
			zap.String("email", session.CustomerEmail),
			zap.Error(err),
		)
		return nil
	}
	metrics.EmailsSent.Inc()

	return nil
}

// HandlePaymentFailure captures a failed payment for operator visibility.
func (f *Fulfillment) HandlePaymentFailure(ctx context.Context, intent *stripe.PaymentIntent) {
	fields := []zap.Field{
		zap.String("payment_intent_id", intent.ID),
		zap.Int64("amount", intent.Amount),
		zap.String("currency", intent.Currency),
	}
	if intent.LastPaymentError != nil {
		fields = append(fields, zap.String("payment_error", intent.LastPaymentError.Message))
	}
	f.logger.Warn("payment failed", fields...)
}
