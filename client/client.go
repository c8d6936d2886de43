package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/restream/auth"
	"github.com/viant/restream/config"
	"github.com/viant/restream/schema"
	"github.com/viant/restream/wsstream"
)

// Result is the normalized outcome of a dispatched call. Plain calls carry
// StatusCode and Body. Stream-flag calls carry a live handle the caller must
// close. Upgraded calls carry the session's terminal result, with Body set to
// the concatenated data-channel output.
type Result struct {
	StatusCode int
	Body       []byte
	Stream     io.ReadCloser
	Session    *wsstream.Result
}

// Client dispatches logical calls against one API server connection. It owns
// the connection configuration, including the current credential shared by
// every call issued through it.
type Client struct {
	baseURL          *url.URL
	config           *config.Config
	transport        Transport
	registry         *auth.Registry
	logger           zerolog.Logger
	tlsConfig        *tls.Config
	handshakeTimeout time.Duration

	// credential is the only mutable shared state: read at dispatch time,
	// written by the refresh path, last write wins.
	mu         sync.Mutex
	credential *auth.Credential
}

// New creates a client for the validated connection configuration.
func New(ctx context.Context, cfg *config.Config, options ...Option) (*Client, error) {
	cfg.Init()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	baseURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", cfg.URL, err)
	}
	tlsConfig, err := cfg.TLS(ctx, afs.New())
	if err != nil {
		return nil, err
	}
	ret := &Client{
		baseURL:    baseURL,
		config:     cfg,
		tlsConfig:  tlsConfig,
		credential: cfg.Credential(),
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.transport == nil {
		ret.transport = NewHTTPTransport(tlsConfig, cfg.Timeout())
	}
	if ret.registry == nil {
		ret.registry = auth.NewRegistry()
	}
	if ret.credential.Refreshable() {
		if _, err := ret.registry.Lookup(ret.credential.Kind); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Credential returns the connection's current credential.
func (c *Client) Credential() *auth.Credential {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credential
}

func (c *Client) setCredential(credential *auth.Credential) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = credential
}

// Do dispatches one logical call. Stream-flag requests return a live handle
// immediately. Otherwise the response is inspected in fixed order: transport
// failure, upgrade sentinel, auth retry, status check.
func (c *Client) Do(ctx context.Context, request *Request) (*Result, error) {
	logger := c.logger.With().
		Str("call", uuid.New().String()).
		Str("method", request.method()).
		Str("path", request.Path).
		Logger()

	if request.Stream {
		logger.Debug().Msg("dispatching stream request")
		stream, err := c.openStream(ctx, request)
		if err != nil {
			return nil, err
		}
		return &Result{Stream: stream}, nil
	}

	credential := c.Credential()
	if credential != nil && !request.NoAuth && auth.ExpiresWithin(credential.Token, c.config.Timeout()) {
		// Advisory only: the retry protocol is driven by server responses.
		logger.Debug().Time("expiry", auth.Expiry(credential.Token)).Msg("credential expires soon")
	}
	response, err := c.perform(ctx, request, credential)
	if err != nil {
		// Transport-level failure: surfaced immediately, never retried here.
		return nil, err
	}

	if response.Status().IsUpgradeRequired() {
		logger.Debug().Msg("upgrade required, re-issuing as streaming session")
		return c.upgrade(ctx, request, logger)
	}

	if isAuthFailure(response.StatusCode) && credential.Refreshable() {
		refreshed, err := c.registry.Refresh(ctx, credential)
		if err != nil {
			return nil, err
		}
		// Replace the connection credential so subsequent calls use it too.
		c.setCredential(refreshed)
		logger.Debug().Int("status", response.StatusCode).Msg("credential refreshed, retrying once")
		response, err = c.perform(ctx, request, refreshed)
		if err != nil {
			return nil, err
		}
		if response.Status().IsUpgradeRequired() {
			return c.upgrade(ctx, request, logger)
		}
		// A second auth failure falls through to the status check below.
	}

	if !response.IsSuccess() {
		return nil, schema.NewStatusError(response.StatusCode, response.Body)
	}
	return &Result{StatusCode: response.StatusCode, Body: response.Body}, nil
}

func isAuthFailure(statusCode int) bool {
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden
}

func (c *Client) perform(ctx context.Context, request *Request, credential *auth.Credential) (*schema.Response, error) {
	httpRequest, err := c.newHTTPRequest(ctx, request, credential)
	if err != nil {
		return nil, err
	}
	return c.transport.Perform(ctx, httpRequest)
}

func (c *Client) openStream(ctx context.Context, request *Request) (io.ReadCloser, error) {
	httpRequest, err := c.newHTTPRequest(ctx, request, c.Credential())
	if err != nil {
		return nil, err
	}
	return c.transport.Open(ctx, httpRequest)
}

func (c *Client) newHTTPRequest(ctx context.Context, request *Request, credential *auth.Credential) (*http.Request, error) {
	target := c.endpoint(request, c.baseURL.Scheme)
	var body io.Reader
	if len(request.Body) > 0 {
		body = bytes.NewReader(request.Body)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.method(), target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %v: %w", target, err)
	}
	for key, values := range request.Header {
		httpRequest.Header[key] = values
	}
	if request.JSON {
		httpRequest.Header.Set("Content-Type", "application/json")
		httpRequest.Header.Set("Accept", "application/json")
	}
	if credential != nil && credential.Token != "" && !request.NoAuth {
		httpRequest.Header.Set("Authorization", "Bearer "+credential.Token)
	}
	return httpRequest, nil
}

// upgrade re-issues the call as a streaming session against the identical
// path and re-encoded query, and blocks for the session's terminal result.
func (c *Client) upgrade(ctx context.Context, request *Request, logger zerolog.Logger) (*Result, error) {
	credential := c.Credential()
	var token string
	if credential != nil {
		token = credential.Token
	}
	session, err := wsstream.Dial(ctx, &wsstream.Options{
		URL:              c.endpoint(request, socketScheme(c.baseURL.Scheme)),
		BearerToken:      token,
		Header:           request.Header,
		TLS:              c.tlsConfig,
		HandshakeTimeout: c.handshakeTimeout,
		Logger:           &logger,
	})
	if err != nil {
		return nil, err
	}
	result, err := session.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{
		StatusCode: http.StatusOK,
		Body:       []byte(result.Output),
		Session:    result,
	}, nil
}

func (c *Client) endpoint(request *Request, scheme string) string {
	target := *c.baseURL
	target.Scheme = scheme
	target.Path = joinPath(target.Path, request.Path)
	target.RawQuery = request.encodedQuery()
	return target.String()
}

func socketScheme(scheme string) string {
	if scheme == "https" {
		return "wss"
	}
	return "ws"
}

func joinPath(base, path string) string {
	if base == "" || base == "/" {
		return path
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
