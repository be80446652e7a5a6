package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutSessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_sessions_created_total",
		Help: "Number of provider checkout sessions created.",
	})

	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Number of webhook events processed, by event type and outcome.",
	}, []string{"type", "outcome"})

	EmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confirmation_emails_sent_total",
		Help: "Number of confirmation emails sent.",
	})

	EmailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "confirmation_emails_failed_total",
		Help: "Number of confirmation emails that failed to send.",
	})
)
