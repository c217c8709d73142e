package fireapi

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// AsyncClient is the non-blocking 24Fire API client. Each method returns a
// buffered channel immediately and performs the round trip on its own
// goroutine; the channel receives exactly one Result.
//
// Both clients run the same executor, so requests and error classification
// are identical to Client. Only the suspension mechanism differs.
type AsyncClient struct {
	client *Client
}

var _ AsyncAPI = (*AsyncClient)(nil)

// NewAsyncClient creates a new non-blocking 24Fire client for the given
// API key. It accepts the same options as NewClient.
func NewAsyncClient(apiKey string, logger zerolog.Logger, opts ...Option) (*AsyncClient, error) {
	client, err := NewClient(apiKey, logger, opts...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{client: client}, nil
}

// GetConfig retrieves the server configuration.
func (a *AsyncClient) GetConfig(ctx context.Context) <-chan Result {
	return a.dispatch(ctx, http.MethodGet, "config", nil)
}

// GetStatus retrieves the current server status.
func (a *AsyncClient) GetStatus(ctx context.Context) <-chan Result {
	return a.dispatch(ctx, http.MethodGet, "status", nil)
}

// StartServer sends a power-on command.
func (a *AsyncClient) StartServer(ctx context.Context) <-chan Result {
	return a.dispatch(ctx, http.MethodPost, "status/start", nil)
}

// StopServer sends a power-off command.
func (a *AsyncClient) StopServer(ctx context.Context) <-chan Result {
	return a.dispatch(ctx, http.MethodPost, "status/stop", nil)
}

// RestartServer sends a restart command.
func (a *AsyncClient) RestartServer(ctx context.Context) <-chan Result {
	return a.dispatch(ctx, http.MethodPost, "status/restart", nil)
}

// ListBackups lists all backups. Requires a '24fire+' subscription.
func (a *AsyncClient) ListBackups(ctx context.Context) <-chan Result {
	return a.dispatch(ctx, http.MethodGet, "backup/list", nil)
}

// CreateBackup starts a backup task with the given description.
// Requires a '24fire+' subscription.
func (a *AsyncClient) CreateBackup(ctx context.Context, description string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		envelope, err := a.client.CreateBackup(ctx, description)
		ch <- Result{Envelope: envelope, Err: err}
	}()
	return ch
}

// DeleteBackup deletes the backup with the given ID.
// Requires a '24fire+' subscription.
func (a *AsyncClient) DeleteBackup(ctx context.Context, backupID string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		envelope, err := a.client.DeleteBackup(ctx, backupID)
		ch <- Result{Envelope: envelope, Err: err}
	}()
	return ch
}

// MonitoringTimings retrieves monitoring timings.
// Requires a '24fire+' subscription.
func (a *AsyncClient) MonitoringTimings(ctx context.Context) <-chan Result {
	return a.dispatch(ctx, http.MethodGet, "monitoring/timings", nil)
}

// MonitoringIncidences retrieves monitoring incidences.
// Requires a '24fire+' subscription.
func (a *AsyncClient) MonitoringIncidences(ctx context.Context) <-chan Result {
	return a.dispatch(ctx, http.MethodGet, "monitoring/incidences", nil)
}

// dispatch runs the shared executor on a goroutine. The channel is buffered
// so the goroutine never leaks when the caller abandons the result.
func (a *AsyncClient) dispatch(ctx context.Context, method, endpoint string, body any) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		envelope, err := a.client.do(ctx, method, endpoint, body)
		ch <- Result{Envelope: envelope, Err: err}
	}()
	return ch
}
