// API client for the catalog server's REST endpoints
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/leilabk/shelfctl/internal/session"
)

const defaultBaseURL = "http://localhost:7577"

// RequestError is returned for any non-2xx response. Body carries the server
// message verbatim; for 400 responses it is a human-readable domain violation
// intended for direct display.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// IsStatus reports whether err is a RequestError with the given status code.
func IsStatus(err error, status int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Status == status
}

// UserMessage maps an error to the string shown to the user: a 400 response
// surfaces the server's message verbatim, anything else gets the fallback.
// Most mutation failures in practice stem from a missing or expired token, so
// fallbacks should point at logging in.
func UserMessage(err error, fallback string) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Status == http.StatusBadRequest && reqErr.Body != "" {
		return reqErr.Body
	}
	return fallback
}

// Client issues requests against the catalog server, attaching the session
// token to every outbound request. The session is an injected value rather
// than ambient state so tests can substitute a fake.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
}

// NewClient creates a catalog API client.
func NewClient(baseURL string, httpClient *http.Client, sess *session.Session) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if sess == nil {
		sess = session.New(session.NewMemStore(""))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    sess,
	}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// do performs a request and returns the raw response. Non-2xx statuses are
// converted to [RequestError]; transport failures pass through wrapped.
func (c *Client) do(ctx context.Context, method, path string, body any) (*response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Status: resp.StatusCode, Body: string(data)}
	}

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// doJSON performs a request and decodes the JSON response into result when
// result is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, result any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(resp.body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
