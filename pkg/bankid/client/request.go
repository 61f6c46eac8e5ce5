package client

import (
	"net/netip"

	"github.com/google/uuid"

	"github.com/klarhet/bankid/pkg/bankid/identity"
)

// Requirement configures optional authentication policy for an order. Every
// field defaults to omitted, letting the service apply its own defaults.
type Requirement struct {
	CertificatePolicies    []string `json:"certificatePolicies,omitempty"`
	AllowFingerprint       *bool    `json:"allowFingerprint,omitempty"`
	AutoStartTokenRequired *bool    `json:"autoStartTokenRequired,omitempty"`
	IssuerCN               []string `json:"issuerCn,omitempty"`
	CardReader             string   `json:"cardReader,omitempty"`
}

// AuthRequest starts an authentication order. PersonalNumber is optional:
// when nil the field is omitted entirely and the service resolves the
// identity interactively on the end user's device.
type AuthRequest struct {
	EndUserIP      netip.Addr               `json:"endUserIp"`
	PersonalNumber *identity.PersonalNumber `json:"personalNumber,omitempty"`
	Requirement    *Requirement             `json:"requirement,omitempty"`
}

// SignRequest starts a signing order. UserVisibleData and UserNonVisibleData
// are opaque to the client and omitted when empty.
type SignRequest struct {
	EndUserIP          netip.Addr               `json:"endUserIp"`
	PersonalNumber     *identity.PersonalNumber `json:"personalNumber,omitempty"`
	Requirement        *Requirement             `json:"requirement,omitempty"`
	UserVisibleData    string                   `json:"userVisibleData,omitempty"`
	UserNonVisibleData string                   `json:"userNonVisibleData,omitempty"`
}

type collectRequest struct {
	OrderRef uuid.UUID `json:"orderRef"`
}

type cancelRequest struct {
	OrderRef uuid.UUID `json:"orderRef"`
}
