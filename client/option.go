package client

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/restream/auth"
)

// Option represents a client option.
type Option func(c *Client)

// WithTransport overrides the default net/http transport.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithRegistry overrides the credential provider registry.
func WithRegistry(registry *auth.Registry) Option {
	return func(c *Client) {
		c.registry = registry
	}
}

// WithLogger sets the client logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHandshakeTimeout bounds the streaming session dial.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.handshakeTimeout = timeout
	}
}
