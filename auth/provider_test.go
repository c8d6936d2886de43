package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/restream/schema"
)

func TestRegistry_Lookup_UnknownKind(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Lookup(ProviderKind("vault"))
	require.Error(t, err)
	configErr := &schema.ConfigError{}
	assert.ErrorAs(t, err, &configErr)
}

func TestRegistry_Refresh(t *testing.T) {
	registry := NewRegistry()
	credential := &Credential{
		Token:  "stale",
		Kind:   KindToken,
		Config: ProviderConfig{"value": "fresh"},
	}
	refreshed, err := registry.Refresh(context.Background(), credential)
	require.NoError(t, err)
	assert.Equal(t, "fresh", refreshed.Token)
	// The original credential is untouched; refresh replaces, never mutates.
	assert.Equal(t, "stale", credential.Token)
	assert.Equal(t, KindToken, refreshed.Kind)
}

func TestTokenProvider_File(t *testing.T) {
	location := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(location, []byte("file-token\n"), 0o600))

	provider := NewTokenProvider()
	token, err := provider.Refresh(context.Background(), ProviderConfig{"url": location})
	require.NoError(t, err)
	assert.Equal(t, "file-token", token)
}

func TestTokenProvider_MissingConfig(t *testing.T) {
	provider := NewTokenProvider()
	_, err := provider.Refresh(context.Background(), ProviderConfig{})
	require.Error(t, err)
}

func TestExecProvider_MissingCommand(t *testing.T) {
	provider := NewExecProvider()
	_, err := provider.Refresh(context.Background(), ProviderConfig{})
	require.Error(t, err)
}

func TestOAuth2Provider_MissingConfig(t *testing.T) {
	provider := NewOAuth2Provider()
	_, err := provider.Refresh(context.Background(), ProviderConfig{})
	require.Error(t, err)
}

func TestProviderKind_Known(t *testing.T) {
	assert.True(t, KindNone.Known())
	assert.True(t, KindToken.Known())
	assert.True(t, KindOAuth2.Known())
	assert.True(t, KindExec.Known())
	assert.False(t, ProviderKind("vault").Known())
}

func TestCredential_Refreshable(t *testing.T) {
	var credential *Credential
	assert.False(t, credential.Refreshable())
	assert.False(t, (&Credential{Token: "t"}).Refreshable())
	assert.True(t, (&Credential{Token: "t", Kind: KindToken}).Refreshable())
}
