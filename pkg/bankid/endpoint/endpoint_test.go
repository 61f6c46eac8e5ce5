package endpoint

import (
	"crypto/tls"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	sandbox, err := Sandbox().BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://appapi2.test.bankid.com/rp/v5.1/", sandbox.String())

	prod, err := Production(tls.Certificate{}).BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://appapi2.bankid.com/rp/v5.1/", prod.String())
}

func TestSandbox_TLSClientConfig(t *testing.T) {
	cfg, err := Sandbox().TLSClientConfig()
	require.NoError(t, err)

	// Bundled trust root and bundled test identity.
	assert.NotNil(t, cfg.RootCAs)
	require.Len(t, cfg.Certificates, 1)
	require.NotNil(t, cfg.Certificates[0].Leaf)
	assert.Contains(t, cfg.Certificates[0].Leaf.Subject.CommonName, "Testcert")
}

func TestProduction_RequiresIdentity(t *testing.T) {
	_, err := Production(tls.Certificate{}).TLSClientConfig()
	assert.ErrorContains(t, err, "identity")
}

func TestIdentityFromPKCS12(t *testing.T) {
	identity, err := IdentityFromPKCS12(sandboxIdentityDER, sandboxIdentityPassword)
	require.NoError(t, err)
	assert.NotNil(t, identity.PrivateKey)

	_, err = IdentityFromPKCS12(sandboxIdentityDER, "wrong-password")
	assert.Error(t, err)
}

func TestIdentityFromPEM_Invalid(t *testing.T) {
	_, err := IdentityFromPEM([]byte("not a cert"), []byte("not a key"))
	assert.Error(t, err)
}
