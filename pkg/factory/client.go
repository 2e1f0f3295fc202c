package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the external pizza factory service. Fulfillment is
// synchronous; a single failed attempt fails the whole order.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new factory client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Fulfill submits an order to the factory and returns the fulfillment
// token and report URL on success.
func (c *Client) Fulfill(ctx context.Context, req FulfillRequest) (*FulfillResponse, error) {
	body, err := c.doRequest(ctx, "order", req)
	if err != nil {
		return nil, err
	}

	var fulfillResp FulfillResponse
	if err := json.Unmarshal(body, &fulfillResp); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal response: %v", ErrFulfillmentFailed, err)
	}

	return &fulfillResp, nil
}

// doRequest performs an HTTP request to the factory API
func (c *Client) doRequest(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.config.BaseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("%w: unexpected status code %d", ErrFulfillmentFailed, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrFulfillmentFailed, resp.StatusCode, errResp.Message)
	}

	return body, nil
}
