package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/api/messages"
	"github.com/est-ai/checkout-service/internal/client/stripe"
	"github.com/est-ai/checkout-service/internal/metrics"
	"github.com/est-ai/checkout-service/internal/service"
)

const (
	eventCheckoutCompleted = "checkout.session.completed"
	eventPaymentFailed     = "payment_intent.payment_failed"
)

// handleWebhook authenticates an inbound provider event and dispatches on
// its type. The signature is verified over the raw, unparsed body before any
// structured parsing: parsing can normalize bytes and invalidate a signature
// computed over the original transmission.
func (a *API) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.methodNotAllowed(w)
		return
	}

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		a.logger.Error("failed to read webhook body", zap.Error(err))
		a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{
			Error: "Webhook Error: unable to read request body",
		})
		return
	}

	sig := r.Header.Get("Stripe-Signature")
	if err := webhook.ValidatePayload(rawBody, sig, a.cfg.WebhookSecret); err != nil {
		a.logger.Warn("webhook signature verification failed", zap.Error(err))
		a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{
			Error: "Webhook Error: " + err.Error(),
		})
		return
	}

	var event messages.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{
			Error: "Webhook Error: malformed event payload",
		})
		return
	}

	switch event.Type {
	case eventCheckoutCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Object, &sess); err != nil {
			metrics.WebhookEvents.WithLabelValues(event.Type, "error").Inc()
			a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{
				Error: "Webhook Error: malformed session object",
			})
			return
		}

		a.logger.Info("payment successful", zap.String("session_id", sess.ID))

		if err := a.fulfiller.FulfillOrder(r.Context(), completedSession(&sess)); err != nil {
			// A 5xx makes the provider redeliver; fulfillment is safe under
			// redelivery.
			metrics.WebhookEvents.WithLabelValues(event.Type, "error").Inc()
			a.logger.Error("fulfillment failed",
				zap.String("session_id", sess.ID),
				zap.Error(err),
			)
			a.writeJSON(w, http.StatusInternalServerError, &messages.ErrorResponse{
				Error:   "Webhook handler failed",
				Message: err.Error(),
			})
			return
		}

	case eventPaymentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
			metrics.WebhookEvents.WithLabelValues(event.Type, "error").Inc()
			a.writeJSON(w, http.StatusBadRequest, &messages.ErrorResponse{
				Error: "Webhook Error: malformed payment intent object",
			})
			return
		}
		a.fulfiller.HandlePaymentFailure(r.Context(), &intent)

	default:
		// The provider may add event types at any time; unrecognized events
		// must not fail the webhook.
		a.logger.Info("unhandled event type", zap.String("type", event.Type))
	}

	metrics.WebhookEvents.WithLabelValues(event.Type, "ok").Inc()
	a.writeJSON(w, http.StatusOK, &messages.WebhookAck{Received: true})
}

func completedSession(sess *stripe.CheckoutSession) *service.CompletedSession {
	out := &service.CompletedSession{
		SessionID:   sess.ID,
		CourseID:    sess.Metadata["courseId"],
		CourseName:  sess.Metadata["courseName"],
		AmountTotal: sess.AmountTotal,
		Currency:    sess.Currency,
	}
	if sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
		out.CustomerName = sess.CustomerDetails.Name
	}
	return out
}
