package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// BaseURL is the archive root that page names and image paths are
	// resolved against.
	BaseURL = "https://apod.nasa.gov/apod/"

	// DefaultUserAgent identifies the tool in the server's access logs.
	DefaultUserAgent = "apod-wallpaper/1.0 (+https://github.com/waeller/apod-wallpaper)"

	// DefaultMaxPageSize caps how much of a page is handed to the scraper.
	// Archive pages are a few kilobytes; the picture link is near the top.
	DefaultMaxPageSize = 1 * 1024 * 1024

	// DefaultTimeout is the per-request timeout of the default HTTP client.
	DefaultTimeout = 2 * time.Minute
)

// Client fetches archive pages and images.
type Client struct {
	// httpClient performs the requests.
	httpClient *http.Client

	// base is the parsed archive root.
	base *url.URL

	// userAgent is sent with every request.
	userAgent string

	// maxPageSize limits the bytes read from a page body.
	maxPageSize int64

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout on a fresh HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxPageSize sets the page body limit in bytes.
func WithMaxPageSize(size int64) Option {
	return func(c *Client) {
		c.maxPageSize = size
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client rooted at baseURL. Pass BaseURL outside tests.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		base:        base,
		userAgent:   DefaultUserAgent,
		maxPageSize: DefaultMaxPageSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Image is an image download in progress.
type Image struct {
	// URL is the resolved image address.
	URL string

	// Size is the Content-Length, or -1 when the server did not send one.
	Size int64

	// Body streams the image bytes. The caller must close it.
	Body io.ReadCloser
}

// ResolveURL resolves a page name or image path against the base URL.
// Absolute references are returned unchanged.
func (c *Client) ResolveURL(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference %q: %w", ref, err)
	}
	return c.base.ResolveReference(u).String(), nil
}

// FetchPage requests the page with the given name and returns its markup
// stream, truncated to the configured page limit. The caller must close it.
func (c *Client) FetchPage(ctx context.Context, pageName string) (io.ReadCloser, error) {
	resp, err := c.get(ctx, pageName, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	return limitedBody{
		Reader: io.LimitReader(resp.Body, c.maxPageSize),
		Closer: resp.Body,
	}, nil
}

// FetchImage requests the image at imagePath, relative to the base URL.
func (c *Client) FetchImage(ctx context.Context, imagePath string) (*Image, error) {
	resp, err := c.get(ctx, imagePath, "image/*,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	return &Image{
		URL:  resp.Request.URL.String(),
		Size: resp.ContentLength,
		Body: resp.Body,
	}, nil
}

// get issues a GET for ref and returns the response if it has a 2xx status.
func (c *Client) get(ctx context.Context, ref, accept string) (*http.Response, error) {
	target, err := c.ResolveURL(ref)
	if err != nil {
		return nil, &FetchError{URL: ref, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	c.logger.Debug("requesting", "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096) //nolint:errcheck // best effort
		resp.Body.Close()
		return nil, &FetchError{URL: target, StatusCode: resp.StatusCode}
	}

	c.logger.Debug("response received",
		"url", target,
		"status", resp.StatusCode,
		"content_size", resp.ContentLength,
	)
	return resp, nil
}

// limitedBody pairs a limited reader with the original body's Close.
type limitedBody struct {
	io.Reader
	io.Closer
}
