package client

import (
	"encoding/json"
	"fmt"
)

// ErrorCode is a business error code reported by the BankID service. The set
// is closed; unknown codes fail decoding.
type ErrorCode string

const (
	ErrorAlreadyInProgress    ErrorCode = "alreadyInProgress"
	ErrorInvalidParameters    ErrorCode = "invalidParameters"
	ErrorCanceled             ErrorCode = "canceled"
	ErrorUnauthorized         ErrorCode = "unauthorized"
	ErrorNotFound             ErrorCode = "notFound"
	ErrorRequestTimeout       ErrorCode = "requestTimeout"
	ErrorUnsupportedMediaType ErrorCode = "unsupportedMediaType"
	ErrorInternalError        ErrorCode = "internalError"
	ErrorMaintenance          ErrorCode = "maintenance"
)

var errorCodes = map[ErrorCode]struct{}{
	ErrorAlreadyInProgress:    {},
	ErrorInvalidParameters:    {},
	ErrorCanceled:             {},
	ErrorUnauthorized:         {},
	ErrorNotFound:             {},
	ErrorRequestTimeout:       {},
	ErrorUnsupportedMediaType: {},
	ErrorInternalError:        {},
	ErrorMaintenance:          {},
}

// UnmarshalJSON rejects codes outside the documented set so that wire drift
// surfaces as a protocol violation instead of a silently mislabeled error.
func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	code := ErrorCode(s)
	if _, ok := errorCodes[code]; !ok {
		return fmt.Errorf("unknown error code %q", s)
	}
	*c = code
	return nil
}

// ServerError is a structured business rejection from the BankID service.
// Callers branch on Code; Details is diagnostic free text only.
type ServerError struct {
	Code    ErrorCode `json:"errorCode"`
	Details string    `json:"details"`
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("bankid: server error %s: %s", e.Code, e.Details)
}

// TransportError is a failure before any HTTP status was available:
// connection refused, TLS handshake failure, timeout, or request encoding.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bankid: %s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a response that was received but does not match the
// documented shape: an undecodable success payload, an undecodable error
// payload, or an unknown discriminator or enum literal. It usually means the
// client and server disagree about the API version.
type ProtocolError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("bankid: %s: unexpected response shape (status %d): %v", e.Op, e.StatusCode, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
