// Package github talks to the GitHub REST API: it resolves repository references,
// lists repository trees and fetches truncated file contents for sampling.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/logging"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL = "https://api.github.com"
	// DefaultWebURL is the base for browsable file links.
	DefaultWebURL = "https://github.com"
	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the client to GitHub.
	DefaultUserAgent = "grifter-or-pro"
	// maxErrorBody caps how much of an error response is kept in APIError.Message.
	maxErrorBody = 512
)

// Options configures the client. Zero values fall back to the defaults above.
type Options struct {
	Token     string
	APIURL    string
	WebURL    string
	Timeout   time.Duration
	UserAgent string
	MaxLines  int
}

// DefaultOptions returns options for unauthenticated access to github.com.
func DefaultOptions() *Options {
	return &Options{
		APIURL:    DefaultAPIURL,
		WebURL:    DefaultWebURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxLines:  DefaultMaxLines,
	}
}

// Client provides access to the GitHub REST API.
// It holds only read-only configuration and is safe for concurrent use.
type Client struct {
	token     string
	apiURL    string
	webURL    string
	userAgent string
	maxLines  int
	httpCli   *http.Client
	logger    *zap.Logger
}

// NewClient creates a client. An empty token works but is subject to very low rate limits.
func NewClient(opts *Options, logger *zap.Logger) *Client {
	defaults := DefaultOptions()
	if opts == nil {
		opts = defaults
	}

	c := &Client{
		token:     opts.Token,
		apiURL:    strings.TrimRight(opts.APIURL, "/"),
		webURL:    strings.TrimRight(opts.WebURL, "/"),
		userAgent: opts.UserAgent,
		maxLines:  opts.MaxLines,
		httpCli:   &http.Client{Timeout: opts.Timeout},
		logger:    logging.OrNop(logger),
	}
	if c.apiURL == "" {
		c.apiURL = defaults.APIURL
	}
	if c.webURL == "" {
		c.webURL = defaults.WebURL
	}
	if c.userAgent == "" {
		c.userAgent = defaults.UserAgent
	}
	if c.maxLines <= 0 {
		c.maxLines = defaults.MaxLines
	}
	if opts.Timeout <= 0 {
		c.httpCli.Timeout = defaults.Timeout
	}
	return c
}

// getJSON issues a GET against the API and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	resp, err := c.get(ctx, u, "application/vnd.github+json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &APIError{URL: u, StatusCode: resp.StatusCode, Message: "decoding response", Cause: err}
	}
	return nil
}

// getRaw downloads at most limit bytes from an absolute URL.
func (c *Client) getRaw(ctx context.Context, u string, limit int64) ([]byte, error) {
	resp, err := c.get(ctx, u, "application/vnd.github.raw")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, &APIError{URL: u, StatusCode: resp.StatusCode, Message: "reading response", Cause: err}
	}
	return body, nil
}

// get sends an authenticated GET and returns the response when the status is 200.
// The caller owns the body.
func (c *Client) get(ctx context.Context, u, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &APIError{URL: u, Message: "creating request", Cause: err}
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, &APIError{URL: u, Message: "request failed", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
			msg = "rate limit exceeded"
		}
		return nil, &APIError{URL: u, StatusCode: resp.StatusCode, Message: msg}
	}
	return resp, nil
}

// repoPath returns the escaped /repos/{owner}/{name} prefix.
func repoPath(owner, name string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(name)
}

// escapePath escapes each segment of a slash-separated file path.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
