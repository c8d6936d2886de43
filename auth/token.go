package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
)

// TokenProvider serves static tokens. It reads the "value" key verbatim, or
// downloads the "url" key (any afs-supported scheme) and uses the trimmed
// content, so rotated token files are picked up on each refresh.
type TokenProvider struct {
	fs afs.Service
}

// NewTokenProvider creates a token provider backed by the abstract file system.
func NewTokenProvider() *TokenProvider {
	return &TokenProvider{fs: afs.New()}
}

// Refresh implements Provider.
func (p *TokenProvider) Refresh(ctx context.Context, config ProviderConfig) (string, error) {
	if value := config["value"]; value != "" {
		return value, nil
	}
	URL := config["url"]
	if URL == "" {
		return "", fmt.Errorf(`token provider requires "value" or "url"`)
	}
	data, err := p.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("failed to download token %v: %w", URL, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token %v was empty", URL)
	}
	return token, nil
}
