package mail

import "context"

// Message is a single outbound email with plain-text and rich variants.
type Message struct {
	ToAddress string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

// Mailer sends transactional mail. Fulfillment treats a send failure as a
// degraded mode, never as a fulfillment failure.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}
