package auth

import (
	"context"
	"fmt"

	"github.com/viant/restream/schema"
)

// Provider acquires a fresh bearer token for a credential binding.
type Provider interface {
	Refresh(ctx context.Context, config ProviderConfig) (string, error)
}

// Registry maps provider kinds to implementations. The mapping is assembled
// at construction time from the built-in kinds; there is no dynamic lookup.
type Registry struct {
	providers map[ProviderKind]Provider
}

// NewRegistry creates a registry with the built-in providers.
func NewRegistry() *Registry {
	return &Registry{
		providers: map[ProviderKind]Provider{
			KindToken:  NewTokenProvider(),
			KindOAuth2: NewOAuth2Provider(),
			KindExec:   NewExecProvider(),
		},
	}
}

// Register overrides or adds a provider for kind.
func (r *Registry) Register(kind ProviderKind, provider Provider) {
	r.providers[kind] = provider
}

// Lookup resolves kind to a provider; unknown kinds are a configuration
// error, surfaced before any refresh is attempted.
func (r *Registry) Lookup(kind ProviderKind) (Provider, error) {
	provider, ok := r.providers[kind]
	if !ok {
		return nil, schema.NewConfigError(fmt.Sprintf("unknown credential provider kind: %q", kind))
	}
	return provider, nil
}

// Refresh resolves the credential's provider and returns a new credential
// carrying the freshly acquired token.
func (r *Registry) Refresh(ctx context.Context, credential *Credential) (*Credential, error) {
	provider, err := r.Lookup(credential.Kind)
	if err != nil {
		return nil, err
	}
	token, err := provider.Refresh(ctx, credential.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh %v credential: %w", credential.Kind, err)
	}
	return credential.WithToken(token), nil
}
