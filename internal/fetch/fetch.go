// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch is the HTTP client for the Ben Yehuda Project API.
// It exposes the read operations the scraper consumes (work details, work
// content, author details) and classifies failures into missing-work
// (HTTP 404) versus transport errors.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/benyehuda-harvest/pkg/types"
)

// defaultBaseURL is the production Ben Yehuda API root.
const defaultBaseURL = "https://benyehuda.org/api/v1"

// ErrMissingWork reports that the remote collection has no entry for the
// requested identifier. The scrape loop treats it like any other failure;
// only the logged message differs.
var ErrMissingWork = errors.New("no such work")

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Code, e.URL)
}

// Client calls the Ben Yehuda API. The zero value is not usable; construct
// with NewClient.
type Client struct {
	// BaseURL is the API root. Tests point it at an httptest server.
	BaseURL string

	http      *http.Client
	userAgent string
	apiKey    string
}

// NewClient wraps hc with the request defaults from cfg.
func NewClient(hc *http.Client, cfg types.HTTPConfig) *Client {
	return &Client{
		BaseURL:   defaultBaseURL,
		http:      hc,
		userAgent: cfg.UserAgent,
		apiKey:    cfg.APIKey,
	}
}

// WorkDetails fetches the metadata mapping for one work.
func (c *Client) WorkDetails(ctx context.Context, id int) (types.WorkDetails, error) {
	url := fmt.Sprintf("%s/texts/%d?view=enriched", c.BaseURL, id)

	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("work %d details: %w", id, err)
	}

	var details types.WorkDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("work %d details: parsing response: %w", id, err)
	}
	return details, nil
}

// WorkContent fetches the textual body for one work.
func (c *Client) WorkContent(ctx context.Context, id int) (string, error) {
	url := fmt.Sprintf("%s/texts/%d/content?file_format=txt", c.BaseURL, id)

	body, err := c.get(ctx, url, "text/plain")
	if err != nil {
		return "", fmt.Errorf("work %d content: %w", id, err)
	}
	return string(body), nil
}

// Author fetches the metadata mapping for one authority record.
func (c *Client) Author(ctx context.Context, id int) (map[string]any, error) {
	url := fmt.Sprintf("%s/authorities/%d?author_detail=enriched", c.BaseURL, id)

	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("author %d: %w", id, err)
	}

	var author map[string]any
	if err := json.Unmarshal(body, &author); err != nil {
		return nil, fmt.Errorf("author %d: parsing response: %w", id, err)
	}
	return author, nil
}

// get performs a single GET request, no retries, and returns the body.
// A 404 maps to ErrMissingWork, any other non-2xx to *StatusError.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)
	if c.apiKey != "" {
		q := req.URL.Query()
		q.Set("key", c.apiKey)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrMissingWork
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
