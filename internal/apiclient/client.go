// Package apiclient issues the storefront's calls to the restaurant backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("request rejected by backend validation")
)

// StatusError is returned for any non-2xx response. It unwraps to one of the
// sentinel errors when the status has a dedicated meaning.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return nil
	}
}

// Client wraps http.Client with base URL handling and JSON envelopes.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a backend client. A nil httpClient gets a default one
// with the given timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client, logger zerolog.Logger) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: trimmed,
		http:    httpClient,
		logger:  logger.With().Str("component", "api-client").Logger(),
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := AccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer res.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", res.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend response")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		statusErr := &StatusError{Method: method, Path: path, Status: res.StatusCode, Message: eb.Message}
		if res.StatusCode != http.StatusNotFound {
			c.logger.Warn().
				Str("method", method).
				Str("path", path).
				Int("status", res.StatusCode).
				Str("body", strings.TrimSpace(string(raw))).
				Msg("backend returned unexpected status")
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
