package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client posts GraphQL documents to the CRM API. Success is an HTTP 200
// response carrying a data member and no errors; anything else is a
// failure for the calling job to log.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	// Retries is the number of additional attempts after a transport
	// failure. Zero means a single attempt.
	Retries int
}

// NewClient creates a client for the given endpoint with a bounded request
// timeout.
func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []graphqlError             `json:"errors"`
}

// Execute posts the query and returns the data member keyed by field name.
func (c *Client) Execute(ctx context.Context, query string) (map[string]json.RawMessage, error) {
	var lastErr error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		data, err := c.post(ctx, query)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) post(ctx context.Context, query string) (map[string]json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var parsed graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", parsed.Errors[0].Message)
	}
	if parsed.Data == nil {
		return nil, fmt.Errorf("response missing data")
	}
	return parsed.Data, nil
}
