package fireapi

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Common errors returned by the fireapi client.
var (
	// ErrMissingAPIKey indicates the client was constructed without an API key.
	ErrMissingAPIKey = errors.New("fireapi: API key is required")

	// ErrMissingBackupID indicates a backup operation was called without an ID.
	ErrMissingBackupID = errors.New("fireapi: backup ID is required")
)

// AuthError indicates the API rejected the request with HTTP 401 or 403.
type AuthError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("fireapi: status %d: %s", e.StatusCode, e.Message)
}

// SubscriptionRequired reports whether the failure is an access denial that
// needs a '24fire+' subscription (HTTP 403) rather than a bad key (HTTP 401).
func (e *AuthError) SubscriptionRequired() bool {
	return e.StatusCode == http.StatusForbidden
}

// RequestError indicates the API answered with a non-2xx status outside the
// authentication range, or that the configured timeout elapsed before a
// response arrived. For timeouts the status code is zero and Err carries the
// timeout condition.
type RequestError struct {
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("fireapi: request failed: %v", e.Err)
	}
	return fmt.Sprintf("fireapi: request failed with status %d: %s", e.StatusCode, e.Body)
}

// Unwrap returns the underlying cause, if any.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the error was caused by the request timeout.
func (e *RequestError) Timeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ClientError wraps a lower-level failure that prevented a round trip from
// completing (connection refused, DNS failure) or a 2xx response whose body
// could not be decoded as JSON.
type ClientError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return fmt.Sprintf("fireapi: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	return e.Err
}
