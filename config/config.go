package config

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"time"

	"github.com/viant/afs"
	"github.com/viant/restream/auth"
	"github.com/viant/restream/schema"
)

const defaultTimeoutSeconds = 30

// Config describes one API server connection: endpoint, TLS material and the
// credential binding shared by every call issued through the connection.
type Config struct {
	URL                   string `yaml:"url" json:"url"`
	Namespace             string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	TimeoutSeconds        int    `yaml:"timeoutSeconds,omitempty" json:"timeoutSeconds,omitempty"`
	InsecureSkipTLSVerify bool   `yaml:"insecureSkipTLSVerify,omitempty" json:"insecureSkipTLSVerify,omitempty"`

	// PEM material, either inline or referenced by an afs URL.
	CertificateAuthority    string `yaml:"certificateAuthority,omitempty" json:"certificateAuthority,omitempty"`
	CertificateAuthorityURL string `yaml:"certificateAuthorityURL,omitempty" json:"certificateAuthorityURL,omitempty"`
	ClientCertificate       string `yaml:"clientCertificate,omitempty" json:"clientCertificate,omitempty"`
	ClientCertificateURL    string `yaml:"clientCertificateURL,omitempty" json:"clientCertificateURL,omitempty"`
	ClientKey               string `yaml:"clientKey,omitempty" json:"clientKey,omitempty"`
	ClientKeyURL            string `yaml:"clientKeyURL,omitempty" json:"clientKeyURL,omitempty"`

	Auth *Auth `yaml:"auth,omitempty" json:"auth,omitempty"`
}

// Auth binds a bearer token to the provider able to replace it.
type Auth struct {
	Token          string            `yaml:"token,omitempty" json:"token,omitempty"`
	Provider       string            `yaml:"provider,omitempty" json:"provider,omitempty"`
	ProviderConfig map[string]string `yaml:"providerConfig,omitempty" json:"providerConfig,omitempty"`
}

// Init applies defaults.
func (c *Config) Init() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the configuration at construction time and reports every
// problem found as a single typed error.
func (c *Config) Validate() error {
	var issues []string
	if c.URL == "" {
		issues = append(issues, "url is required")
	} else if parsed, err := url.Parse(c.URL); err != nil {
		issues = append(issues, fmt.Sprintf("url %v is malformed: %v", c.URL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		issues = append(issues, fmt.Sprintf("url scheme %q is not supported", parsed.Scheme))
	}
	hasCert := c.ClientCertificate != "" || c.ClientCertificateURL != ""
	hasKey := c.ClientKey != "" || c.ClientKeyURL != ""
	if hasCert != hasKey {
		issues = append(issues, "clientCertificate and clientKey must be set together")
	}
	if c.Auth != nil {
		kind := auth.ProviderKind(c.Auth.Provider)
		if !kind.Known() {
			issues = append(issues, fmt.Sprintf("unknown credential provider kind: %q", c.Auth.Provider))
		}
		if c.Auth.Token == "" && kind == auth.KindNone {
			issues = append(issues, "auth requires a token or a provider")
		}
	}
	if len(issues) > 0 {
		return schema.NewConfigError(issues...)
	}
	return nil
}

// Credential builds the connection's initial credential, or nil when the
// configuration carries no auth block.
func (c *Config) Credential() *auth.Credential {
	if c.Auth == nil {
		return nil
	}
	return &auth.Credential{
		Token:  c.Auth.Token,
		Kind:   auth.ProviderKind(c.Auth.Provider),
		Config: c.Auth.ProviderConfig,
	}
}

// TLS assembles the client TLS configuration from the PEM material,
// downloading URL-referenced items through the abstract file system.
func (c *Config) TLS(ctx context.Context, fs afs.Service) (*tls.Config, error) {
	tlsConfig := &tls.Config{InsecureSkipVerify: c.InsecureSkipTLSVerify}
	caPEM, err := c.material(ctx, fs, c.CertificateAuthority, c.CertificateAuthorityURL)
	if err != nil {
		return nil, err
	}
	if len(caPEM) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("failed to parse certificate authority PEM")
		}
		tlsConfig.RootCAs = pool
	}
	certPEM, err := c.material(ctx, fs, c.ClientCertificate, c.ClientCertificateURL)
	if err != nil {
		return nil, err
	}
	keyPEM, err := c.material(ctx, fs, c.ClientKey, c.ClientKeyURL)
	if err != nil {
		return nil, err
	}
	if len(certPEM) > 0 && len(keyPEM) > 0 {
		pair, err := tls.X509KeyPair(certPEM, keyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to load client key pair: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{pair}
	}
	return tlsConfig, nil
}

func (c *Config) material(ctx context.Context, fs afs.Service, inline, URL string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if URL == "" {
		return nil, nil
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", URL, err)
	}
	return data, nil
}
