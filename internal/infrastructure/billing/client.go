// Package billing is the records service's client for the external billing
// subsystem. Only account creation is needed; billing internals stay opaque.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 5 * time.Second

// Client calls the billing subsystem's account-creation RPC over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type createAccountRequest struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// CreateBillingAccount opens a billing account for a newly created patient.
func (c *Client) CreateBillingAccount(ctx context.Context, patientID, name, email string) error {
	body, err := json.Marshal(createAccountRequest{
		PatientID: patientID,
		Name:      name,
		Email:     email,
	})
	if err != nil {
		return fmt.Errorf("billing request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/billing/accounts", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("billing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("billing call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("billing call: unexpected status %d", resp.StatusCode)
	}
	return nil
}
