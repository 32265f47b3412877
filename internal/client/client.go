package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	secretHeader = "X-Secret-Key"

	// DefaultTimeout bounds plain request/response calls. The reply stream
	// uses a separate client with no timeout; it is context-controlled.
	DefaultTimeout = 60 * time.Second

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 10 * 1024 * 1024
)

var (
	ErrMissingURL    = errors.New("daemon URL not configured")
	ErrMissingSecret = errors.New("secret key not configured")
	ErrUnauthorized  = errors.New("unauthorized")
)

// APIError is a non-2xx response, carrying the status code and best-effort
// body text.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("daemon error (HTTP %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("daemon error (HTTP %d)", e.Status)
}

// Is lets a 401 APIError match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Client talks to the agent daemon's HTTP surface. Every call except the two
// config reads sends the secret key header, and a missing secret fails
// before any network traffic.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
	stream  *http.Client
	log     *slog.Logger
}

func New(baseURL, secret string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		secret:  strings.TrimSpace(secret),
		http:    &http.Client{Timeout: DefaultTimeout},
		stream:  &http.Client{},
		log:     slog.Default(),
	}
}

// WithLogger replaces the client's logger.
func (c *Client) WithLogger(log *slog.Logger) *Client {
	c.log = log
	return c
}

// BaseURL returns the configured daemon URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, needSecret bool) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, ErrMissingURL
	}
	if needSecret && c.secret == "" {
		return nil, ErrMissingSecret
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if needSecret {
		req.Header.Set(secretHeader, c.secret)
	}
	return req, nil
}

// do performs a request/response call, returning the body for 2xx responses
// and an *APIError otherwise.
func (c *Client) do(req *http.Request) ([]byte, error) {
	reqID := uuid.NewString()
	c.log.Debug("api request", "id", reqID, "method", req.Method, "path", req.URL.Path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.log.Debug("api response", "id", reqID, "status", resp.StatusCode, "elapsed", time.Since(start))

	body, err := readBody(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) == maxResponseSize {
		return nil, fmt.Errorf("response exceeded %d bytes", maxResponseSize)
	}
	return body, nil
}
