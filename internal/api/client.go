package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nao1215/countryflags/internal/model"
)

// CollectionPath is the path of the country collection on the remote service.
const CollectionPath = "/api/countries"

// DefaultUserAgent identifies the client in the remote service's logs.
const DefaultUserAgent = "countryflags/1.0 (+https://github.com/nao1215/countryflags)"

// maxErrorBodySize bounds how much of an error response is read for logging.
const maxErrorBodySize = 4 * 1024

// Client talks to the remote country service.
// It holds no state besides its configuration and is safe for concurrent use.
type Client struct {
	// httpClient performs the requests. No client-level timeout is set;
	// requests are bounded by the caller's context only.
	httpClient *http.Client

	// baseURL is the service root without a trailing slash.
	baseURL string

	// userAgent is sent with every request.
	userAgent string

	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client for the service rooted at baseURL.
// A trailing slash on baseURL is ignored.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListAll fetches every country summary.
// The decoded body is returned as-is; order and values are not touched.
func (c *Client) ListAll(ctx context.Context) ([]model.CountrySummary, error) {
	var countries []model.CountrySummary
	if err := c.getJSON(ctx, c.collectionURL(), &countries); err != nil {
		return nil, &FetchError{Op: opListCountries, Err: err}
	}
	return countries, nil
}

// GetByName fetches the detail record for name.
//
// The name is appended to the collection URL as-is. It is not escaped, so a
// name containing "/" or "?" addresses a different resource on the service.
func (c *Client) GetByName(ctx context.Context, name string) (*model.CountryDetail, error) {
	var country model.CountryDetail
	if err := c.getJSON(ctx, c.collectionURL()+"/"+name, &country); err != nil {
		return nil, &FetchError{Op: opGetCountryByName, Err: err}
	}
	return &country, nil
}

func (c *Client) collectionURL() string {
	return c.baseURL + CollectionPath
}

// getJSON issues a GET and decodes a 2xx JSON body into out.
// It returns the raw underlying error; callers add the operation prefix.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("requesting country service", "method", req.Method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		c.logger.Debug("country service returned an error status",
			"url", url,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
