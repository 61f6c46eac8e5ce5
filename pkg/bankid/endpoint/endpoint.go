// Package endpoint selects the BankID environment a client talks to: which
// base address, which trust root for the server certificate, and which client
// identity to present for mutual TLS.
package endpoint

import (
	"crypto/tls"
	"crypto/x509"
	_ "embed"
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/crypto/pkcs12"
)

//go:embed certs/ca-test.pem
var sandboxRootPEM []byte

//go:embed certs/ca-prod.pem
var productionRootPEM []byte

//go:embed certs/fptestcert4.p12
var sandboxIdentityDER []byte

// Passphrase for the bundled sandbox identity. This is the publicly documented
// test credential; it is never reachable from a Production endpoint.
const sandboxIdentityPassword = "qwerty123"

const (
	sandboxBaseURL    = "https://appapi2.test.bankid.com/rp/v5.1/"
	productionBaseURL = "https://appapi2.bankid.com/rp/v5.1/"
)

// Endpoint is an immutable environment profile. Construct one with Sandbox or
// Production; the zero value is the sandbox.
type Endpoint struct {
	production bool
	identity   tls.Certificate
}

// Sandbox returns the test environment profile. It uses the bundled test trust
// root and the bundled pre-shared test identity.
func Sandbox() Endpoint {
	return Endpoint{}
}

// Production returns the production environment profile presenting the given
// client identity. The identity is caller-supplied key material; the bundled
// test credentials are not available on this path.
func Production(identity tls.Certificate) Endpoint {
	return Endpoint{production: true, identity: identity}
}

// IsProduction reports whether the profile targets the production environment.
func (e Endpoint) IsProduction() bool { return e.production }

// BaseURL returns the environment's base address. Operation paths are joined
// onto it per request.
func (e Endpoint) BaseURL() (*url.URL, error) {
	raw := sandboxBaseURL
	if e.production {
		raw = productionBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	return u, nil
}

// TLSClientConfig builds the mutual-TLS configuration for the environment:
// trust root for server verification plus the client identity to present.
// It fails if the trust root does not parse or the identity is unusable, so
// misconfiguration surfaces at client construction rather than first request.
func (e Endpoint) TLSClientConfig() (*tls.Config, error) {
	rootPEM := sandboxRootPEM
	if e.production {
		rootPEM = productionRootPEM
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(rootPEM) {
		return nil, errors.New("append trust root from PEM failed")
	}

	identity := e.identity
	if !e.production {
		var err error
		identity, err = IdentityFromPKCS12(sandboxIdentityDER, sandboxIdentityPassword)
		if err != nil {
			return nil, fmt.Errorf("load sandbox identity: %w", err)
		}
	}
	if len(identity.Certificate) == 0 {
		return nil, errors.New("client identity has no certificate")
	}

	return &tls.Config{
		RootCAs:      pool,
		Certificates: []tls.Certificate{identity},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// IdentityFromPEM builds a client identity from PEM-encoded certificate and
// private key material.
func IdentityFromPEM(certPEM, keyPEM []byte) (tls.Certificate, error) {
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("load client cert/key: %w", err)
	}
	return cert, nil
}

// IdentityFromPKCS12 builds a client identity from a PKCS#12 bundle, the
// format BankID issues relying-party certificates in.
func IdentityFromPKCS12(der []byte, password string) (tls.Certificate, error) {
	key, cert, err := pkcs12.Decode(der, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("decode PKCS#12 bundle: %w", err)
	}
	return tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
		Leaf:        cert,
	}, nil
}
