package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	stripego "github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// apiBase is the default Stripe API base URL. Overridable in tests via
// ClientConfig.BaseURL.
const apiBase = "https://api.stripe.com"

// ClientConfig contains configuration for the Stripe client.
type ClientConfig struct {
	BaseURL        string
	SecretKey      string
	RequestTimeout time.Duration
}

// Client handles communication with the Stripe REST API.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Stripe API client.
func NewClient(config ClientConfig, logger *zap.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = apiBase
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		logger: logger,
	}
}

// CreateCheckoutSession creates a hosted checkout session in single-payment
// mode with exactly one line item.
func (c *Client) CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*CheckoutSession, error) {
	c.logger.Info("creating checkout session",
		zap.String("price", params.PriceRef),
		zap.String("course_id", params.Metadata["courseId"]),
	)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price]", params.PriceRef)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	resp, err := c.post(ctx, "/v1/checkout/sessions", form)
	if err != nil {
		c.logger.Error("failed to create checkout session", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode checkout session response failed: %w", err)
	}

	c.logger.Info("checkout session created", zap.String("session_id", session.ID))

	return &session, nil
}

// GetCheckoutSession retrieves a checkout session, typically for the success
// page's payment-status readback.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	resp, err := c.get(ctx, "/v1/checkout/sessions/"+url.PathEscape(sessionID))
	if err != nil {
		c.logger.Error("failed to get checkout session",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode checkout session failed: %w", err)
	}

	return &session, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setAuthHeaders(req)

	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	c.setAuthHeaders(req)

	return c.do(req)
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	req.Header.Set("Stripe-Version", stripego.APIVersion)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, newAPIError(resp.StatusCode, body)
	}

	return resp, nil
}

// APIError represents an error returned by the Stripe API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stripe API error (status %d): %s", e.StatusCode, e.Message)
}

func newAPIError(statusCode int, body []byte) *APIError {
	var wrapper struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := string(body)
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Error.Message != "" {
		message = wrapper.Error.Message
	}
	return &APIError{StatusCode: statusCode, Message: message}
}
