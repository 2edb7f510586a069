// Package upstream is the HTTP client for the backoffice REST API. The
// gateway consumes it for credential exchange, identity lookup, role
// permission lookup, and the password reset flow. Response shapes beyond
// these are not interpreted here.
package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/errors/v5"
	"golang.org/x/oauth2"
)

const name = "github.com/playline/backoffice/upstream"

// Client talks to the backoffice API at a fixed base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport used for all requests, including
// bearer-authenticated ones.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "url.Parse()")
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// authClient returns an http.Client that attaches the bearer token to
// every request.
func (c *Client) authClient(ctx context.Context, bearer string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: bearer, TokenType: "Bearer"})

	return oauth2.NewClient(ctx, ts)
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}
