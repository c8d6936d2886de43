package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"
)

// ExecProvider runs the configured "command" in a local shell and uses its
// trimmed standard output as the token, mirroring exec-style credential
// plugins.
type ExecProvider struct{}

// NewExecProvider creates an exec provider.
func NewExecProvider() *ExecProvider {
	return &ExecProvider{}
}

// Refresh implements Provider.
func (p *ExecProvider) Refresh(ctx context.Context, config ProviderConfig) (string, error) {
	command := config["command"]
	if command == "" {
		return "", fmt.Errorf(`exec provider requires "command"`)
	}
	service, err := gosh.New(ctx, local.New())
	if err != nil {
		return "", fmt.Errorf("failed to create shell service: %w", err)
	}
	output, code, err := service.Run(ctx, command)
	if err != nil {
		return "", fmt.Errorf("failed to run %v: %w", command, err)
	}
	if code != 0 {
		return "", fmt.Errorf("%v exited with %v: %v", command, code, output)
	}
	token := strings.TrimSpace(output)
	if token == "" {
		return "", fmt.Errorf("%v produced no token", command)
	}
	return token, nil
}
