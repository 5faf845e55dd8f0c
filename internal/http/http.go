// Package http provides a wrapper around the retryablehttp.Client
// for making HTTP requests with retry capabilities.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	mJson "github.com/matt-dz/admingate/internal/json"
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMin = 100 * time.Millisecond
	defaultRetryWaitMax = time.Second
	defaultTimeout      = 5 * time.Second
)

type HTTPDoer interface {
	Do(*retryablehttp.Request) (*http.Response, error)
}

type HTTP struct {
	*retryablehttp.Client
}

var _ HTTPDoer = (*retryablehttp.Client)(nil)

func DefaultConfig() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetryMax
	client.RetryWaitMin = defaultRetryWaitMin
	client.RetryWaitMax = defaultRetryWaitMax
	client.HTTPClient.Timeout = defaultTimeout
	client.Logger = nil
	return client
}

func New(client *retryablehttp.Client) *HTTP {
	return &HTTP{
		Client: client,
	}
}

// WithLogger routes retry diagnostics to logger.
func (h *HTTP) WithLogger(logger *slog.Logger) *HTTP {
	h.Logger = logger
	return h
}

func ExpectStatus2xx(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

type PingResponse struct {
	Status string `json:"status"`
}

// Ping calls a ping endpoint and fails unless it answers 2xx with status "ok".
func (h *HTTP) Ping(ctx context.Context, url string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := h.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", url, err)
	}
	if err := ExpectStatus2xx(resp); err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var body PingResponse
	decoder := json.NewDecoder(resp.Body)
	decoder.DisallowUnknownFields()
	if err := mJson.DecodeJSON(&body, decoder); err != nil {
		return fmt.Errorf("reading ping response: %w", err)
	}
	if body.Status != "ok" {
		return fmt.Errorf("unexpected ping status %q", body.Status)
	}

	return nil
}
