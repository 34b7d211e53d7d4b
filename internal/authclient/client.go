// Package authclient is the gateway's HTTP client for the token authority's
// validation endpoint. It never interprets a transport failure as a valid
// token: callers receive an error and must fail closed.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/carebridge/patient-platform/internal/core/ports"
)

const defaultTimeout = 3 * time.Second

// Client calls the token authority's GET /validate endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// New returns a Client for the authority at baseURL. A non-positive timeout
// falls back to defaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Validate forwards the inbound Authorization header to the authority and
// decodes its verdict. A 401 from the authority is a clean "not valid", not
// an error; anything else that prevents a positive verdict is an error so
// the caller rejects the request.
func (c *Client) Validate(ctx context.Context, authHeader string) (ports.ValidationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/validate", nil)
	if err != nil {
		return ports.ValidationResult{}, fmt.Errorf("validate request: %w", err)
	}
	req.Header.Set("Authorization", authHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.ValidationResult{}, fmt.Errorf("validate call: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ports.ValidationResult{}, nil
	case resp.StatusCode != http.StatusOK:
		return ports.ValidationResult{}, fmt.Errorf("validate call: unexpected status %d", resp.StatusCode)
	}

	var result ports.ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ports.ValidationResult{}, fmt.Errorf("validate response: %w", err)
	}
	return result, nil
}
