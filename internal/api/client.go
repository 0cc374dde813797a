// internal/api/client.go

// Package api wraps the marketplace REST API behind a single configured
// request sender. Every response uses the uniform envelope
// {"message": string, "data": T}; every authenticated call carries a bearer
// token supplied by the session store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coursemarket-client/internal/config"
)

// TokenSource yields the current bearer token, or "" when signed out.
type TokenSource func() string

// Envelope is the uniform response shape of the marketplace API.
type Envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client sends requests to the marketplace API
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     *logrus.Logger
}

// NewClient creates a new API client
func NewClient(cfg *config.Config, token TokenSource, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.API.RequestTimeout,
		},
		token:  token,
		logger: logger,
	}
}

// Do sends a JSON request and decodes the envelope's data field into out.
// out may be nil when the caller only cares about success. Failures are
// never retried; a non-2xx status is returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	raw, _, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("api: decode response envelope: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("api: decode response data: %w", err)
	}
	return nil
}

// DoRaw sends a request and returns the raw response body. Used for binary
// payloads such as the order invoice PDF.
func (c *Client) DoRaw(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	raw, _, err := c.send(ctx, method, path, query, nil)
	return raw, err
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, string, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("api: marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, "", fmt.Errorf("api: build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     method,
			"path":       path,
			"error":      err.Error(),
		}).Error("API request failed before a response was received")
		return nil, requestID, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, requestID, fmt.Errorf("api: read response body: %w", err)
	}

	entry := c.logger.WithFields(logrus.Fields{
		"request_id":    requestID,
		"method":        method,
		"path":          path,
		"status_code":   resp.StatusCode,
		"latency":       time.Since(start),
		"response_size": len(raw),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		entry.Warn("API request completed with error status")
		return nil, requestID, &Error{
			StatusCode: resp.StatusCode,
			Message:    envelopeMessage(raw),
			RequestID:  requestID,
		}
	}

	entry.Debug("API request completed successfully")
	return raw, requestID, nil
}

// envelopeMessage pulls the server's message out of an error response body,
// falling back to the trimmed body text for non-envelope responses.
func envelopeMessage(raw []byte) string {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(raw))
}
