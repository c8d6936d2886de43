package restream

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/viant/restream/client"
	"github.com/viant/restream/config"
)

// ClientOptions defines options for constructing a connection client. Values
// can come from a YAML config file, CLI flags, or both; flag values override
// file values.
type ClientOptions struct {
	ConfigURL string `yaml:"configURL,omitempty" json:"configURL,omitempty" short:"c" long:"config" description:"connection config URL"`
	URL       string `yaml:"url,omitempty" json:"url,omitempty" short:"u" long:"url" description:"server base URL"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty" short:"n" long:"namespace" description:"namespace"`
	Token     string `yaml:"token,omitempty" json:"token,omitempty" short:"t" long:"token" description:"bearer token"`
	Insecure  bool   `yaml:"insecure,omitempty" json:"insecure,omitempty" short:"k" long:"insecure" description:"skip TLS verification"`
	Verbose   bool   `yaml:"verbose,omitempty" json:"verbose,omitempty" short:"v" long:"verbose" description:"debug logging"`
}

// New creates a dispatcher client from options, loading and validating the
// connection configuration first.
func New(ctx context.Context, options *ClientOptions) (*client.Client, error) {
	if options == nil {
		return nil, fmt.Errorf("options were empty")
	}
	cfg := &config.Config{}
	if options.ConfigURL != "" {
		loaded, err := config.Load(ctx, options.ConfigURL)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if options.URL != "" {
		cfg.URL = options.URL
	}
	if options.Namespace != "" {
		cfg.Namespace = options.Namespace
	}
	if options.Insecure {
		cfg.InsecureSkipTLSVerify = true
	}
	if options.Token != "" {
		if cfg.Auth == nil {
			cfg.Auth = &config.Auth{}
		}
		cfg.Auth.Token = options.Token
	}
	var clientOptions []client.Option
	if options.Verbose {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
		clientOptions = append(clientOptions, client.WithLogger(logger))
	}
	return client.New(ctx, cfg, clientOptions...)
}
