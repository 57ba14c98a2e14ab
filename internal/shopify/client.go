// Package shopify talks to the Storefront GraphQL API: catalog reads and
// cart mutations. Failures surface as cart.TransportError or cart.UserErrors.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

const (
	DefaultAPIVersion  = "2026-01"
	HeaderAccessToken  = "X-Shopify-Storefront-Access-Token"
	maxErrorBodyLength = 512
)

var ErrMissingCredentials = errors.New("missing Storefront API store domain or access token")

type Options struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	HTTP        *http.Client
}

type Client struct {
	Name     string
	Endpoint *url.URL
	HTTP     *http.Client
	token    string
}

// NewClient builds a client for the shop's GraphQL endpoint. Missing
// credentials are not an error here; every call then fails with
// ErrMissingCredentials so read paths can fall back.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{Name: "storefront-api", HTTP: httpClient, token: opts.AccessToken}

	domain := strings.TrimSpace(opts.StoreDomain)
	if domain == "" {
		return c, nil
	}
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	base, err := url.Parse(domain)
	if err != nil {
		return nil, fmt.Errorf("invalid store domain %q: %w", opts.StoreDomain, err)
	}

	version := opts.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	c.Endpoint = base.ResolveReference(&url.URL{Path: "/api/" + version + "/graphql.json"})
	return c, nil
}

// Configured reports whether calls can reach the API at all.
func (c *Client) Configured() bool {
	return c.Endpoint != nil && c.token != ""
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors GraphQLErrors   `json:"errors"`
}

type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLErrors are top-level errors: the operation did not run.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ge := range e {
		msgs = append(msgs, ge.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// Do runs one GraphQL operation and decodes its data into out.
func (c *Client) Do(ctx context.Context, op, query string, variables map[string]any, out any) error {
	if !c.Configured() {
		return &cart.TransportError{Op: op, Err: ErrMissingCredentials}
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return &cart.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderAccessToken, c.token)
	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &cart.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		return &cart.TransportError{Op: op, Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))}
	}

	var gr graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return &cart.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(gr.Errors) > 0 {
		return &cart.TransportError{Op: op, Err: gr.Errors}
	}
	if out == nil || len(gr.Data) == 0 || string(gr.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return &cart.TransportError{Op: op, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}
