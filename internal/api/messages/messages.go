package messages

import "encoding/json"

// CheckoutRequest is the body of a create-checkout-session call.
type CheckoutRequest struct {
	CourseID string `json:"courseId"`
	Email    string `json:"email,omitempty"`
}

// CheckoutResponse carries the provider session reference back to the
// browser for the client-side redirect.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// ErrorResponse is the JSON error body for every failure path. ValidCourses
// is populated only on the invalid-course-id path; the valid-course list is
// safe to disclose and aids integration testing.
type ErrorResponse struct {
	Error        string   `json:"error"`
	Message      string   `json:"message,omitempty"`
	ValidCourses []string `json:"validCourses,omitempty"`
}

// WebhookAck acknowledges a processed webhook event.
type WebhookAck struct {
	Received bool `json:"received"`
}

// WebhookEvent is the envelope of an inbound provider event. Object is left
// raw until the event type is known.
type WebhookEvent struct {
	Type string      `json:"type"`
	Data WebhookData `json:"data"`
}

type WebhookData struct {
	Object json.RawMessage `json:"object"`
}

// SessionStatusResponse is the success page's payment-status readback.
type SessionStatusResponse struct {
	Status        string `json:"status"`
	CustomerEmail string `json:"customer_email"`
	Course        string `json:"course"`
}

// UserResponse is the authenticated user's stored profile.
type UserResponse struct {
	UID       string `json:"uid"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Role      string `json:"role,omitempty"`
}

// LeadRequest is the body of a lead-capture form submission.
type LeadRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Interest string `json:"interest"`
}
