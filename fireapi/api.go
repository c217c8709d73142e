package fireapi

import (
	"context"
)

// Envelope is the decoded JSON response body returned by the 24Fire API.
// The client passes it through unmodified; callers index into it as needed.
type Envelope map[string]any

// Result carries the outcome of a non-blocking call.
type Result struct {
	Envelope Envelope
	Err      error
}

// API defines the supported 24Fire operations. It is implemented by Client;
// AsyncAPI mirrors it for the non-blocking variant.
type API interface {
	// GetConfig retrieves the server configuration.
	GetConfig(ctx context.Context) (Envelope, error)

	// GetStatus retrieves the current server status.
	GetStatus(ctx context.Context) (Envelope, error)

	// StartServer sends a power-on command.
	StartServer(ctx context.Context) (Envelope, error)

	// StopServer sends a power-off command.
	StopServer(ctx context.Context) (Envelope, error)

	// RestartServer sends a restart command.
	RestartServer(ctx context.Context) (Envelope, error)

	// ListBackups lists all backups. Requires a '24fire+' subscription.
	ListBackups(ctx context.Context) (Envelope, error)

	// CreateBackup starts a backup task with the given description.
	// Requires a '24fire+' subscription.
	CreateBackup(ctx context.Context, description string) (Envelope, error)

	// DeleteBackup deletes the backup with the given ID.
	// Requires a '24fire+' subscription.
	DeleteBackup(ctx context.Context, backupID string) (Envelope, error)

	// MonitoringTimings retrieves monitoring timings.
	// Requires a '24fire+' subscription.
	MonitoringTimings(ctx context.Context) (Envelope, error)

	// MonitoringIncidences retrieves monitoring incidences.
	// Requires a '24fire+' subscription.
	MonitoringIncidences(ctx context.Context) (Envelope, error)
}

// AsyncAPI is the non-blocking counterpart of API. Every method returns a
// buffered channel that receives exactly one Result.
type AsyncAPI interface {
	GetConfig(ctx context.Context) <-chan Result
	GetStatus(ctx context.Context) <-chan Result
	StartServer(ctx context.Context) <-chan Result
	StopServer(ctx context.Context) <-chan Result
	RestartServer(ctx context.Context) <-chan Result
	ListBackups(ctx context.Context) <-chan Result
	CreateBackup(ctx context.Context, description string) <-chan Result
	DeleteBackup(ctx context.Context, backupID string) <-chan Result
	MonitoringTimings(ctx context.Context) <-chan Result
	MonitoringIncidences(ctx context.Context) <-chan Result
}
