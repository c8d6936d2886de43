package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/restream/auth"
	"github.com/viant/restream/schema"
)

func TestParse(t *testing.T) {
	data := []byte(`
url: https://api.example.com:6443
namespace: default
timeoutSeconds: 10
auth:
  token: initial-token
  provider: token
  providerConfig:
    url: /var/run/secrets/token
`)
	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com:6443", cfg.URL)
	assert.Equal(t, "default", cfg.Namespace)
	assert.Equal(t, 10*time.Second, cfg.Timeout())

	credential := cfg.Credential()
	require.NotNil(t, credential)
	assert.Equal(t, "initial-token", credential.Token)
	assert.Equal(t, auth.KindToken, credential.Kind)
	assert.Equal(t, "/var/run/secrets/token", credential.Config["url"])
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		description string
		data        string
		expectIssue string
	}{
		{
			description: "missing url",
			data:        `namespace: default`,
			expectIssue: "url is required",
		},
		{
			description: "unsupported scheme",
			data:        `url: ftp://example.com`,
			expectIssue: "scheme",
		},
		{
			description: "unknown provider kind",
			data: `
url: https://example.com
auth:
  token: t
  provider: vault
`,
			expectIssue: "unknown credential provider",
		},
		{
			description: "cert without key",
			data: `
url: https://example.com
clientCertificate: PEM
`,
			expectIssue: "must be set together",
		},
		{
			description: "auth without token or provider",
			data: `
url: https://example.com
auth: {}
`,
			expectIssue: "token or a provider",
		},
	}
	for _, testCase := range testCases {
		_, err := Parse([]byte(testCase.data))
		require.Error(t, err, testCase.description)
		configErr := &schema.ConfigError{}
		require.ErrorAs(t, err, &configErr, testCase.description)
		assert.Contains(t, configErr.Error(), testCase.expectIssue, testCase.description)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{URL: "https://example.com"}
	cfg.Init()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Nil(t, cfg.Credential())
}

func TestConfig_TLS(t *testing.T) {
	cfg := &Config{URL: "https://example.com", InsecureSkipTLSVerify: true}
	tlsConfig, err := cfg.TLS(context.Background(), afs.New())
	require.NoError(t, err)
	assert.True(t, tlsConfig.InsecureSkipVerify)
	assert.Nil(t, tlsConfig.RootCAs)
}

func TestConfig_TLS_InvalidCA(t *testing.T) {
	cfg := &Config{URL: "https://example.com", CertificateAuthority: "not PEM"}
	_, err := cfg.TLS(context.Background(), afs.New())
	require.Error(t, err)
}
