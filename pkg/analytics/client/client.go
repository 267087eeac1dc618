// Package client delivers analytics payloads to the Simple Analytics collection endpoint
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
	analyticserrors "github.com/wrale/wrale-analytics/pkg/analytics/errors"
)

// DefaultEndpoint is the public collection endpoint
const DefaultEndpoint = "https://queue.simpleanalyticscdn.com/events"

// DefaultTimeout bounds a single delivery attempt
const DefaultTimeout = 10 * time.Second

// Client posts payloads to the collection endpoint. It is safe for concurrent use.
type Client struct {
	// endpoint is the absolute URL payloads are posted to
	endpoint string
	// httpClient is the underlying HTTP client, owned by the Client
	httpClient *http.Client
	// timeout overrides the HTTP client's timeout when set
	timeout   *time.Duration
	tlsConfig *tls.Config
	logger    zerolog.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithEndpoint overrides the collection endpoint
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient uses hc as the template for the underlying HTTP client.
// hc is copied and never modified.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

// WithTLSConfig sets custom TLS configuration
func WithTLSConfig(config *tls.Config) ClientOption {
	return func(c *Client) {
		c.tlsConfig = config
	}
}

// WithLogger sets the logger used for delivery diagnostics
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client posting to DefaultEndpoint unless overridden
func NewClient(options ...ClientOption) (*Client, error) {
	c := &Client{
		endpoint: DefaultEndpoint,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range options {
		opt(c)
	}

	if c.httpClient == nil {
		return nil, analyticserrors.InvalidInput("client.NewClient", "http client must not be nil")
	}
	hc := *c.httpClient
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	if c.tlsConfig != nil {
		hc.Transport = &http.Transport{TLSClientConfig: c.tlsConfig}
	}
	c.httpClient = &hc

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.endpoint)
	}
	c.endpoint = u.String()
	c.logger = c.logger.With().Str("component", "dispatcher").Logger()

	return c, nil
}

// Endpoint returns the URL payloads are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts payload as JSON. A non-2xx response is logged and absorbed;
// only encoding and transport failures are returned, the latter matching
// errors.ErrTransport from pkg/analytics/errors.
func (c *Client) Send(ctx context.Context, payload v1alpha1.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	dispatchID := uuid.NewString()
	logger := c.logger.With().
		Str("dispatchId", dispatchID).
		Str("type", payload.PayloadType()).
		Logger()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return analyticserrors.NewError("TRANSPORT", fmt.Sprintf("failed to track %s", payload.PayloadType()), "client.Send",
			fmt.Errorf("%w: %v", analyticserrors.ErrTransport, err))
	}
	defer resp.Body.Close()

	handleResponse(resp, payload.PayloadType(), logger)
	return nil
}
