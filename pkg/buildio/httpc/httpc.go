// Package httpc implements buildio.HTTPClient over net/http.
package httpc

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/arthur-debert/buildio/pkg/buildio"
)

// Client sends HTTP requests through an underlying *http.Client, reporting
// transport failures as buildio errors attributed to the request URL. It
// adds no retry or timeout policy; callers bound the call through the
// context they pass to Send.
type Client struct {
	http *http.Client
}

var _ buildio.HTTPClient = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a Client backed by http.DefaultClient unless overridden.
func New(opts ...Option) *Client {
	c := &Client{http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send performs the request and returns the response with its body fully
// read into memory, so the caller never deals with a live network stream.
func (c *Client) Send(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, buildio.NewReadError(buildio.KindFile, req.URL.String(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, buildio.NewReadError(buildio.KindFile, req.URL.String(), err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
