package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures client settings using the functional options pattern.
type Option func(*settings)

type settings struct {
	logger     *zap.Logger
	httpClient *http.Client
	timeout    time.Duration
	baseURL    string
}

// WithLogger sets a custom logger for the client.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithHTTPClient replaces the HTTP client entirely, bypassing the endpoint's
// TLS configuration. Primarily for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithTimeout bounds every request. Ignored when WithHTTPClient is used.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithBaseURL overrides the environment's base address, for tests and stub
// deployments. The URL must end with a trailing slash.
func WithBaseURL(raw string) Option {
	return func(s *settings) { s.baseURL = raw }
}

func applyOptions(opts []Option) settings {
	s := settings{
		logger:  zap.NewNop(),
		timeout: defaultHTTPTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
