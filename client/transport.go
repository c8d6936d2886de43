package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/viant/restream/schema"
)

// Transport issues HTTP exchanges on behalf of the dispatcher. Perform
// buffers the response; Open returns a live byte stream for long-lived
// reads such as log tails.
type Transport interface {
	Perform(ctx context.Context, request *http.Request) (*schema.Response, error)
	Open(ctx context.Context, request *http.Request) (io.ReadCloser, error)
}

type httpTransport struct {
	// buffered carries the per-request timeout; stream must not, or the
	// timeout would sever long-lived tails mid-read.
	buffered *http.Client
	stream   *http.Client
}

// NewHTTPTransport creates the default net/http backed transport.
func NewHTTPTransport(tlsConfig *tls.Config, timeout time.Duration) Transport {
	base := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: tlsConfig,
	}
	return &httpTransport{
		buffered: &http.Client{Transport: base, Timeout: timeout},
		stream:   &http.Client{Transport: base},
	}
}

func (t *httpTransport) Perform(ctx context.Context, request *http.Request) (*schema.Response, error) {
	response, err := t.buffered.Do(request.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &schema.Response{StatusCode: response.StatusCode, Body: body}, nil
}

func (t *httpTransport) Open(ctx context.Context, request *http.Request) (io.ReadCloser, error) {
	response, err := t.stream.Do(request.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return response.Body, nil
}
