package stripe

// CheckoutSessionParams describes a single-payment checkout session request.
type CheckoutSessionParams struct {
	PriceRef      string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

// CheckoutSession is the subset of the provider's session object this system
// cares about. The session itself is owned by the provider; only the
// reference and the echoed metadata matter here.
type CheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PaymentStatus   string            `json:"payment_status"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	CustomerDetails *CustomerDetails  `json:"customer_details"`
	Metadata        map[string]string `json:"metadata"`
}

// CustomerDetails carries the customer information collected by the hosted
// checkout form.
type CustomerDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PaymentIntent is the payload of a failed-payment webhook event.
type PaymentIntent struct {
	ID               string        `json:"id"`
	Amount           int64         `json:"amount"`
	Currency         string        `json:"currency"`
	LastPaymentError *PaymentError `json:"last_payment_error"`
}

type PaymentError struct {
	Message string `json:"message"`
}
