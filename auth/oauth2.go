package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/scy/auth/authorizer"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2Provider obtains tokens with the client-credentials grant. The client
// configuration comes either from inline keys (clientID, clientSecret,
// tokenURL, scopes) or from an encrypted scy resource referenced by the
// "configURL" key.
type OAuth2Provider struct{}

// NewOAuth2Provider creates an OAuth2 provider.
func NewOAuth2Provider() *OAuth2Provider {
	return &OAuth2Provider{}
}

// Refresh implements Provider.
func (p *OAuth2Provider) Refresh(ctx context.Context, config ProviderConfig) (string, error) {
	grant, err := p.grantConfig(ctx, config)
	if err != nil {
		return "", err
	}
	token, err := grant.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("client credentials grant failed: %w", err)
	}
	return token.AccessToken, nil
}

func (p *OAuth2Provider) grantConfig(ctx context.Context, config ProviderConfig) (*clientcredentials.Config, error) {
	if configURL := config["configURL"]; configURL != "" {
		anAuthorizer := authorizer.New()
		oauthCfg := &authorizer.OAuthConfig{ConfigURL: configURL}
		if err := anAuthorizer.EnsureConfig(ctx, oauthCfg); err != nil {
			return nil, fmt.Errorf("failed to load oauth2 config %v: %w", configURL, err)
		}
		return &clientcredentials.Config{
			ClientID:     oauthCfg.Config.ClientID,
			ClientSecret: oauthCfg.Config.ClientSecret,
			TokenURL:     oauthCfg.Config.Endpoint.TokenURL,
			Scopes:       oauthCfg.Config.Scopes,
		}, nil
	}
	if config["clientID"] == "" || config["tokenURL"] == "" {
		return nil, fmt.Errorf(`oauth2 provider requires "configURL" or "clientID" and "tokenURL"`)
	}
	grant := &clientcredentials.Config{
		ClientID:     config["clientID"],
		ClientSecret: config["clientSecret"],
		TokenURL:     config["tokenURL"],
	}
	if scopes := config["scopes"]; scopes != "" {
		grant.Scopes = strings.Split(scopes, ",")
	}
	return grant, nil
}
