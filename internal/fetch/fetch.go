// Package fetch downloads remote preview images.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrTooLarge is returned when a response body exceeds the client's limit.
var ErrTooLarge = errors.New("response exceeds size limit")

// UserAgentTransport wraps an http.RoundTripper and adds a User-Agent header.
type UserAgentTransport struct {
	http.RoundTripper
	UserAgent string
}

// RoundTrip executes a single HTTP transaction, adding the User-Agent header.
func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// The caller's request must not be modified.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("User-Agent", t.UserAgent)
	return t.RoundTripper.RoundTrip(cloned)
}

// Options configures a Client.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	MaxBytes  int64

	// Transport is the underlying round tripper. nil means
	// http.DefaultTransport.
	Transport http.RoundTripper
}

// Client retrieves image bytes over HTTP(S).
type Client struct {
	http     *http.Client
	maxBytes int64
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	var rt http.RoundTripper = base
	if opts.UserAgent != "" {
		rt = &UserAgentTransport{RoundTripper: base, UserAgent: opts.UserAgent}
	}
	return &Client{
		http:     &http.Client{Transport: rt, Timeout: opts.Timeout},
		maxBytes: opts.MaxBytes,
	}
}

// Response is a downloaded resource.
type Response struct {
	URL         string
	ContentType string
	Body        []byte
}

// Fetch downloads rawURL. Only http and https URLs are accepted. Non-2xx
// responses and bodies larger than the configured limit are errors.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("fetch %s: unexpected status %s: %s", u.Redacted(), resp.Status, strings.TrimSpace(string(snippet)))
	}

	body, err := c.readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}

	return &Response{
		URL:         u.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	if c.maxBytes <= 0 {
		return io.ReadAll(resp.Body)
	}
	if resp.ContentLength > c.maxBytes {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, resp.ContentLength, c.maxBytes)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, c.maxBytes)
	}
	return body, nil
}

// IsURL reports whether s looks like an http(s) URL rather than a file path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
