package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HeaderClientToken carries the client token on every protected request.
const HeaderClientToken = "X-Client-Token"

const userAgent = "sealslot-cli"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// HTTPClient provides HTTP communication with the server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	token   string
}

// NewHTTPClient creates a new HTTP client. tlsCfg may be nil.
func NewHTTPClient(server, token string, tlsCfg *tls.Config) *HTTPClient {
	baseURL := server
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.addHeaders(req)
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.addHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.client.Do(req)
}

func (c *HTTPClient) addHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set(HeaderClientToken, c.token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
}

// Register obtains a new token and secret.
func (c *HTTPClient) Register(ctx context.Context) (*Credentials, error) {
	resp, err := c.Post(ctx, "/init", nil)
	if err != nil {
		return nil, err
	}
	var creds Credentials
	if err := ParseResponse(resp, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Read fetches the current record.
func (c *HTTPClient) Read(ctx context.Context) (*Record, error) {
	return c.getRecord(ctx, "/")
}

// Recover fetches the most recent history entry.
func (c *HTTPClient) Recover(ctx context.Context) (*Record, error) {
	return c.getRecord(ctx, "/recover")
}

func (c *HTTPClient) getRecord(ctx context.Context, path string) (*Record, error) {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := ParseResponse(resp, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Write submits a sealed record.
func (c *HTTPClient) Write(ctx context.Context, req WriteRequest) (*WriteResult, error) {
	resp, err := c.Post(ctx, "/", req)
	if err != nil {
		return nil, err
	}
	var res WriteResult
	if err := ParseResponse(resp, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Health calls /health, or /ready when ready is set.
func (c *HTTPClient) Health(ctx context.Context, ready bool) (*Health, error) {
	path := "/health"
	if ready {
		path = "/ready"
	}
	resp, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var h Health
	if err := ParseResponse(resp, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ParseResponse unwraps the response envelope and decodes its data into
// target. Error statuses are returned as *APIError.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	envErr := json.Unmarshal(body, &env)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if envErr == nil {
			apiErr.Code = env.Code
			apiErr.Message = env.Message
			apiErr.RequestID = env.RequestID
		}
		if apiErr.Code == "" {
			apiErr.Code = resp.Header.Get("X-Error-Code")
		}
		return apiErr
	}

	if envErr != nil {
		return fmt.Errorf("parse response: %w", envErr)
	}
	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("parse response data: %w", err)
		}
	}
	return nil
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// IsCode reports whether err is an *APIError carrying code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
