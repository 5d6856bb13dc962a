// Package client calls a quote engine over HTTP. Client satisfies the same
// Quoter contract as the in-process service, so the live coordinator can
// drive either.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"quickgfe/domain"
)

// APIError is a non-validation failure reported by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quote api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type quoteEnvelope struct {
	OK      bool                `json:"ok"`
	Quote   domain.QuoteOutput  `json:"quote"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors"`
}

// Quote posts a scenario to /quote. A cancelled ctx yields
// domain.ErrCancelled; a 422 yields *domain.ValidationError.
func (c *Client) Quote(ctx context.Context, req domain.ScenarioRequest) (domain.QuoteOutput, error) {
	var env quoteEnvelope
	status, err := c.post(ctx, "/quote", req, &env)
	if err != nil {
		return domain.QuoteOutput{}, err
	}

	switch {
	case status == http.StatusOK && env.OK:
		return env.Quote, nil
	case status == http.StatusUnprocessableEntity:
		return domain.QuoteOutput{}, &domain.ValidationError{Fields: env.Errors}
	}
	return domain.QuoteOutput{}, &APIError{StatusCode: status, Message: env.Message}
}

// Submit posts a lead to /submit.
func (c *Client) Submit(ctx context.Context, sub domain.LeadSubmission) (domain.LeadReceipt, error) {
	var resp struct {
		ReferenceID string `json:"referenceId"`
		Error       string `json:"error"`
	}
	status, err := c.post(ctx, "/submit", sub, &resp)
	if err != nil {
		return domain.LeadReceipt{}, err
	}
	if status != http.StatusOK || resp.ReferenceID == "" {
		return domain.LeadReceipt{}, &APIError{StatusCode: status, Message: resp.Error}
	}
	return domain.LeadReceipt{ReferenceID: resp.ReferenceID}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
		}
		return 0, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
		}
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			if resp.StatusCode != http.StatusOK {
				return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
			}
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
