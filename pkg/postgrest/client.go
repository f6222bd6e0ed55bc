// Package postgrest is a minimal client for a PostgREST-compatible REST
// endpoint. It covers the small surface the repositories need: filtered
// selects, inserts with representation, filtered updates, and deletes.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to a PostgREST endpoint with a service key.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Filters are PostgREST query operators keyed by column, e.g.
// {"user_id": "eq.123", "order": "date.asc"}.
type Filters map[string]string

// Select fetches rows from table matching the filters.
func (c *Client) Select(ctx context.Context, table string, filters Filters) ([]byte, error) {
	return c.do(ctx, http.MethodGet, table, filters, nil)
}

// Insert adds one row (or a slice of rows) and returns the representation.
func (c *Client) Insert(ctx context.Context, table string, row any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, table, nil, row)
}

// Update patches rows matching the filters and returns the representation.
func (c *Client) Update(ctx context.Context, table string, filters Filters, row any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, table, filters, row)
}

// Delete removes rows matching the filters.
func (c *Client) Delete(ctx context.Context, table string, filters Filters) error {
	_, err := c.do(ctx, http.MethodDelete, table, filters, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, table string, filters Filters, body any) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	if len(filters) > 0 {
		q := url.Values{}
		for column, op := range filters {
			q.Set(column, op)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("postgrest error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
