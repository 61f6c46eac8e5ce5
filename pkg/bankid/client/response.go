package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"

	"github.com/google/uuid"

	"github.com/klarhet/bankid/pkg/bankid/identity"
)

// OrderResponse is the handle to a started order. Possession of OrderRef is
// both necessary and sufficient to collect or cancel the order; the server is
// authoritative on its expiry.
type OrderResponse struct {
	OrderRef       uuid.UUID `json:"orderRef"`
	AutoStartToken uuid.UUID `json:"autoStartToken"`
	QRStartToken   uuid.UUID `json:"qrStartToken"`
	QRStartSecret  uuid.UUID `json:"qrStartSecret"`
}

// CollectStatus discriminates the collect response union.
type CollectStatus string

const (
	StatusPending  CollectStatus = "pending"
	StatusFailed   CollectStatus = "failed"
	StatusComplete CollectStatus = "complete"
)

// HintCode is a sub-status explaining why an order is pending or failed. The
// set is closed; unknown hints fail decoding. Note the wire literal for
// HintCanceled is "cancelled".
type HintCode string

const (
	HintOutstandingTransaction HintCode = "outstandingTransaction"
	HintNoClient               HintCode = "noClient"
	HintStarted                HintCode = "started"
	HintUserSign               HintCode = "userSign"
	HintExpiredTransaction     HintCode = "expiredTransaction"
	HintCertificateErr         HintCode = "certificateErr"
	HintUserCancel             HintCode = "userCancel"
	HintCanceled               HintCode = "cancelled"
	HintStartFailed            HintCode = "startFailed"
)

var hintCodes = map[HintCode]struct{}{
	HintOutstandingTransaction: {},
	HintNoClient:               {},
	HintStarted:                {},
	HintUserSign:               {},
	HintExpiredTransaction:     {},
	HintCertificateErr:         {},
	HintUserCancel:             {},
	HintCanceled:               {},
	HintStartFailed:            {},
}

func (h *HintCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	hint := HintCode(s)
	if _, ok := hintCodes[hint]; !ok {
		return fmt.Errorf("unknown hint code %q", s)
	}
	*h = hint
	return nil
}

// User identifies the end user verified by a completed order.
type User struct {
	PersonalNumber identity.PersonalNumber `json:"personalNumber"`
	Name           string                  `json:"name"`
	GivenName      string                  `json:"givenName"`
	Surname        string                  `json:"surname"`
}

// Device describes the device the order completed on.
type Device struct {
	IPAddress netip.Addr `json:"ipAddress"`
}

// Cert is the validity window of the end user's BankID certificate.
type Cert struct {
	NotBefore string `json:"notBefore"`
	NotAfter  string `json:"notAfter"`
}

// CompletionData carries the verified identity and the signature evidence of
// a completed order. Signature and OCSPResponse are opaque blobs the client
// does not interpret.
type CompletionData struct {
	User         User   `json:"user"`
	Device       Device `json:"device"`
	Cert         Cert   `json:"cert"`
	Signature    string `json:"signature"`
	OCSPResponse string `json:"ocspResponse"`
}

// CollectResponse is the tagged union returned by a single collect poll.
// Exactly one of the variant payloads is set: HintCode for pending and
// failed, CompletionData for complete. Pending is the only non-terminal
// status; an order never leaves failed or complete.
type CollectResponse struct {
	OrderRef       uuid.UUID
	Status         CollectStatus
	HintCode       HintCode
	CompletionData *CompletionData
}

// Pending reports whether the order is still in progress.
func (r *CollectResponse) Pending() bool { return r.Status == StatusPending }

// Terminal reports whether the order has reached a final state.
func (r *CollectResponse) Terminal() bool { return r.Status != StatusPending }

type collectWire struct {
	OrderRef       *uuid.UUID      `json:"orderRef,omitempty"`
	Status         string          `json:"status"`
	HintCode       *HintCode       `json:"hintCode,omitempty"`
	CompletionData *CompletionData `json:"completionData,omitempty"`
}

// UnmarshalJSON enforces the closed discriminator: an unrecognized status, or
// a variant missing its payload, is a hard decode error, never a default.
func (r *CollectResponse) UnmarshalJSON(data []byte) error {
	var w collectWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch CollectStatus(w.Status) {
	case StatusPending, StatusFailed:
		if w.HintCode == nil {
			return fmt.Errorf("collect status %q without hintCode", w.Status)
		}
		r.HintCode = *w.HintCode
	case StatusComplete:
		if w.CompletionData == nil {
			return errors.New(`collect status "complete" without completionData`)
		}
		r.CompletionData = w.CompletionData
	default:
		return fmt.Errorf("unknown collect status %q", w.Status)
	}

	if w.OrderRef != nil {
		r.OrderRef = *w.OrderRef
	}
	r.Status = CollectStatus(w.Status)
	return nil
}

// MarshalJSON emits the wire form of the variant, omitting the payloads the
// variant does not carry.
func (r CollectResponse) MarshalJSON() ([]byte, error) {
	w := collectWire{
		Status: string(r.Status),
	}
	if r.OrderRef != uuid.Nil {
		ref := r.OrderRef
		w.OrderRef = &ref
	}
	switch r.Status {
	case StatusPending, StatusFailed:
		hint := r.HintCode
		w.HintCode = &hint
	case StatusComplete:
		w.CompletionData = r.CompletionData
	default:
		return nil, fmt.Errorf("unknown collect status %q", r.Status)
	}
	return json.Marshal(w)
}
