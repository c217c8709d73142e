package fireapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production endpoint of the 24Fire KVM API.
	DefaultBaseURL = "https://api.24fire.de/kvm"

	// DefaultTimeout is applied per request when no timeout option is given.
	DefaultTimeout = 5 * time.Second

	// apiKeyHeader carries the private API key on every request.
	apiKeyHeader = "X-FIRE-APIKEY"
)

// Client is the blocking 24Fire API client. Each method suspends the caller
// for the duration of one HTTP round trip.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new blocking 24Fire client for the given API key.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = options.timeout

	return &Client{
		baseURL:    strings.TrimRight(options.baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// GetConfig retrieves the server configuration.
func (c *Client) GetConfig(ctx context.Context) (Envelope, error) {
	return c.do(ctx, http.MethodGet, "config", nil)
}

// GetStatus retrieves the current server status.
func (c *Client) GetStatus(ctx context.Context) (Envelope, error) {
	return c.do(ctx, http.MethodGet, "status", nil)
}

// StartServer sends a power-on command.
func (c *Client) StartServer(ctx context.Context) (Envelope, error) {
	return c.do(ctx, http.MethodPost, "status/start", nil)
}

// StopServer sends a power-off command.
func (c *Client) StopServer(ctx context.Context) (Envelope, error) {
	return c.do(ctx, http.MethodPost, "status/stop", nil)
}

// RestartServer sends a restart command.
func (c *Client) RestartServer(ctx context.Context) (Envelope, error) {
	return c.do(ctx, http.MethodPost, "status/restart", nil)
}

// ListBackups lists all backups. Requires a '24fire+' subscription.
func (c *Client) ListBackups(ctx context.Context) (Envelope, error) {
	return c.do(ctx, http.MethodGet, "backup/list", nil)
}

// CreateBackup starts a backup task with the given description.
// Requires a '24fire+' subscription.
func (c *Client) CreateBackup(ctx context.Context, description string) (Envelope, error) {
	body := struct {
		Description string `json:"description"`
	}{Description: description}
	return c.do(ctx, http.MethodPost, "backup/create", body)
}

// DeleteBackup deletes the backup with the given ID.
// Requires a '24fire+' subscription.
func (c *Client) DeleteBackup(ctx context.Context, backupID string) (Envelope, error) {
	if backupID == "" {
		return nil, ErrMissingBackupID
	}
	endpoint := fmt.Sprintf("backup/delete?backup_id=%s", url.QueryEscape(backupID))
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

// MonitoringTimings retrieves monitoring timings.
// Requires a '24fire+' subscription.
func (c *Client) MonitoringTimings(ctx context.Context) (Envelope, error) {
	return c.do(ctx, http.MethodGet, "monitoring/timings", nil)
}

// MonitoringIncidences retrieves monitoring incidences.
// Requires a '24fire+' subscription.
func (c *Client) MonitoringIncidences(ctx context.Context) (Envelope, error) {
	return c.do(ctx, http.MethodGet, "monitoring/incidences", nil)
}

// do performs one authenticated round trip and classifies the response.
// The endpoint may carry a query string; exactly one slash separates it from
// the base URL regardless of how either side was written.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (Envelope, error) {
	requestURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &ClientError{Op: "encode request body", Err: err}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, &ClientError{Op: "create request", Err: err}
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making 24Fire API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", requestURL).Msg("Request failed")
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, &RequestError{Err: err}
		}
		return nil, &ClientError{Op: "execute request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Op: "read response body", Err: err}
	}

	return c.classify(resp.StatusCode, respBody)
}

// classify maps an HTTP status and raw body to an envelope or a typed error.
// 401 and 403 win over everything else, including unreadable bodies.
func (c *Client) classify(statusCode int, body []byte) (Envelope, error) {
	switch {
	case statusCode == http.StatusUnauthorized:
		return nil, &AuthError{
			StatusCode: statusCode,
			Message:    "authentication failed, check your API key",
		}
	case statusCode == http.StatusForbidden:
		return nil, &AuthError{
			StatusCode: statusCode,
			Message:    "access denied or this feature requires a '24fire+' subscription",
		}
	case statusCode < 200 || statusCode > 299:
		err := &RequestError{StatusCode: statusCode, Body: string(body)}
		c.logger.Error().Int("status", statusCode).Msg("API request failed")
		return nil, err
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Error().Err(err).Msg("Failed to decode API response")
		return nil, &ClientError{Op: "decode response", Err: err}
	}

	return envelope, nil
}
