package fireapi

import (
	"net/http"
	"time"
)

// Option configures a Client or AsyncClient.
type Option func(*clientOptions)

// clientOptions holds configuration options shared by both client variants.
type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
}

// WithBaseURL overrides the API base URL. Useful for testing against a mock
// server; trailing slashes are normalized away.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient supplies a custom http.Client. The configured timeout is
// still applied to it.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}
