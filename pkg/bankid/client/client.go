// Package client implements the BankID relying-party operations: starting
// authentication and signing orders, polling them with collect, and
// cancelling them. One instance is safe for concurrent use; it holds no state
// beyond its immutable transport configuration.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/klarhet/bankid/internal/metrics"
	"github.com/klarhet/bankid/pkg/bankid/endpoint"
)

const (
	defaultHTTPTimeout = 10 * time.Second

	// Limit error-body reads so we don't accidentally slurp huge responses.
	maxErrBodyBytes = 4096
)

// Client issues relying-party requests against one BankID environment.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	logger     *zap.Logger
}

// New builds a client for the given environment profile. Transport
// misconfiguration (unparseable trust root, unusable client identity,
// malformed base address) fails here, not on first request.
func New(ep endpoint.Endpoint, opts ...Option) (*Client, error) {
	s := applyOptions(opts)

	baseURL, err := ep.BaseURL()
	if err != nil {
		return nil, err
	}
	if s.baseURL != "" {
		baseURL, err = url.Parse(s.baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base URL override: %w", err)
		}
		if !baseURL.IsAbs() {
			return nil, fmt.Errorf("base URL override %q is not absolute", s.baseURL)
		}
	}

	httpClient := s.httpClient
	if httpClient == nil {
		tlsCfg, err := ep.TLSClientConfig()
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{
			Timeout:   s.timeout,
			Transport: &http.Transport{TLSClientConfig: tlsCfg},
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     s.logger,
	}, nil
}

// Auth starts an authentication order for the end user at the given IP.
func (c *Client) Auth(ctx context.Context, req *AuthRequest) (*OrderResponse, error) {
	var out OrderResponse
	if err := c.post(ctx, "auth", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sign starts a signing order.
func (c *Client) Sign(ctx context.Context, req *SignRequest) (*OrderResponse, error) {
	var out OrderResponse
	if err := c.post(ctx, "sign", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Collect polls the current status of an order once and returns immediately.
// Callers re-invoke on an interval (1-2s is recommended) until Terminal();
// the polling loop is deliberately not part of the client.
func (c *Client) Collect(ctx context.Context, orderRef uuid.UUID) (*CollectResponse, error) {
	var out CollectResponse
	if err := c.post(ctx, "collect", collectRequest{OrderRef: orderRef}, &out); err != nil {
		return nil, err
	}
	metrics.CollectStatus.WithLabelValues(string(out.Status), string(out.HintCode)).Inc()
	return &out, nil
}

// Cancel aborts an in-progress order. Cancelling an order the server already
// considers terminal surfaces the server's error; callers should treat that
// as a benign race, not a failure.
func (c *Client) Cancel(ctx context.Context, orderRef uuid.UUID) error {
	return c.post(ctx, "cancel", cancelRequest{OrderRef: orderRef}, nil)
}

// post performs one request/response exchange and applies the uniform
// classification: pre-status failures are *TransportError, 2xx bodies decode
// into out (or *ProtocolError), non-2xx bodies decode as *ServerError (or
// *ProtocolError). There is no internal retry.
func (c *Client) post(ctx context.Context, op string, in, out any) error {
	start := time.Now()
	err := c.exchange(ctx, op, in, out)
	metrics.RequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(op, outcomeLabel(err)).Inc()

	if err != nil {
		c.logger.Debug("bankid request failed",
			zap.String("operation", op),
			zap.Error(err))
	}
	return err
}

func (c *Client) exchange(ctx context.Context, op string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath(op).String(), bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ProtocolError{Op: op, StatusCode: resp.StatusCode, Err: err}
		}
		return nil
	}

	// A body was received along with a status, so the failure is the
	// server's to explain: decode it as the error shape, never as a
	// transport problem.
	errBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyBytes))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read error body: %w", err)}
	}

	var serverErr ServerError
	if err := json.Unmarshal(errBody, &serverErr); err != nil {
		return &ProtocolError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if serverErr.Code == "" {
		return &ProtocolError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("error body missing errorCode")}
	}
	return &serverErr
}

func outcomeLabel(err error) string {
	var (
		serverErr    *ServerError
		protocolErr  *ProtocolError
		transportErr *TransportError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &serverErr):
		return "server_error"
	case errors.As(err, &protocolErr):
		return "protocol_error"
	case errors.As(err, &transportErr):
		return "transport_error"
	default:
		return "error"
	}
}
