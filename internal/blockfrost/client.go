// Package blockfrost provides an HTTP client for the Blockfrost Cardano API.
package blockfrost

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
	"time"

	klog "github.com/Klingon-tech/adawallet/internal/log"
)

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 10 * time.Second

// ErrUnavailable wraps transport failures (DNS, connection, timeout).
var ErrUnavailable = errors.New("indexer unavailable")

// Client is a Blockfrost HTTP client.
type Client struct {
	baseURL   string
	projectID string
	http      *http.Client
	maxPages  int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint derived from the project key.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the given project key.
func New(projectID string, opts ...Option) *Client {
	c := &Client{
		baseURL:   BaseURLForKey(projectID),
		projectID: projectID,
		http:      &http.Client{Timeout: DefaultTimeout},
		maxPages:  DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURLForKey returns the API root for a project key. Keys start with the
// network name, e.g. "preprodXXXX" maps to cardano-preprod.
func BaseURLForKey(projectID string) string {
	network := projectID
	if len(network) > 7 {
		network = network[:7]
	}
	return fmt.Sprintf("https://cardano-%s.blockfrost.io/api/v0", network)
}

// BaseURL returns the API root in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is returned when the server responds with a non-2xx status.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Err        string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blockfrost error %d: %s: %s", e.StatusCode, e.Err, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// get issues a GET and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, result)
}

// post sends body with the given content type and decodes the JSON response.
func (c *Client) post(ctx context.Context, path, contentType string, body []byte, result interface{}) error {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result interface{}) error {
	req.Header.Set("project_id", c.projectID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	klog.Indexer.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.StatusCode == 0 {
			apiErr = &APIError{
				StatusCode: resp.StatusCode,
				Err:        http.StatusText(resp.StatusCode),
				Message:    strings.TrimSpace(string(data)),
			}
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
