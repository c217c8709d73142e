package fireapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the client actually sent.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	APIKey string
	Body   string
}

// newTestClient starts a mock server and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL)}, opts...)
	client, err := NewClient("test-key", zerolog.Nop(), opts...)
	require.NoError(t, err)

	return client, server
}

// recordingHandler responds 200 {} and stores each request it sees.
func recordingHandler(record *recordedRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*record = recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			APIKey: r.Header.Get("X-FIRE-APIKEY"),
			Body:   string(body),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success"}`))
	}
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewClient("", logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient("test-key", logger)
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithBaseURL("http://localhost:8080/kvm/"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/kvm", client.baseURL)
	})

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithTimeout(10*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{}
		client, err := NewClient("test-key", logger, WithHTTPClient(custom), WithTimeout(3*time.Second))
		require.NoError(t, err)
		assert.Equal(t, custom, client.httpClient)
		assert.Equal(t, 3*time.Second, custom.Timeout)
	})
}

func TestOperationRoutes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func(*Client) (Envelope, error)
		wantMethod string
		wantPath   string
		wantQuery  string
		wantBody   string
	}{
		{
			name:       "get config",
			call:       func(c *Client) (Envelope, error) { return c.GetConfig(ctx) },
			wantMethod: http.MethodGet,
			wantPath:   "/config",
		},
		{
			name:       "get status",
			call:       func(c *Client) (Envelope, error) { return c.GetStatus(ctx) },
			wantMethod: http.MethodGet,
			wantPath:   "/status",
		},
		{
			name:       "start",
			call:       func(c *Client) (Envelope, error) { return c.StartServer(ctx) },
			wantMethod: http.MethodPost,
			wantPath:   "/status/start",
		},
		{
			name:       "stop",
			call:       func(c *Client) (Envelope, error) { return c.StopServer(ctx) },
			wantMethod: http.MethodPost,
			wantPath:   "/status/stop",
		},
		{
			name:       "restart",
			call:       func(c *Client) (Envelope, error) { return c.RestartServer(ctx) },
			wantMethod: http.MethodPost,
			wantPath:   "/status/restart",
		},
		{
			name:       "list backups",
			call:       func(c *Client) (Envelope, error) { return c.ListBackups(ctx) },
			wantMethod: http.MethodGet,
			wantPath:   "/backup/list",
		},
		{
			name:       "create backup",
			call:       func(c *Client) (Envelope, error) { return c.CreateBackup(ctx, "nightly") },
			wantMethod: http.MethodPost,
			wantPath:   "/backup/create",
			wantBody:   `{"description":"nightly"}`,
		},
		{
			name:       "delete backup",
			call:       func(c *Client) (Envelope, error) { return c.DeleteBackup(ctx, "abc-123") },
			wantMethod: http.MethodDelete,
			wantPath:   "/backup/delete",
			wantQuery:  "backup_id=abc-123",
		},
		{
			name:       "monitoring timings",
			call:       func(c *Client) (Envelope, error) { return c.MonitoringTimings(ctx) },
			wantMethod: http.MethodGet,
			wantPath:   "/monitoring/timings",
		},
		{
			name:       "monitoring incidences",
			call:       func(c *Client) (Envelope, error) { return c.MonitoringIncidences(ctx) },
			wantMethod: http.MethodGet,
			wantPath:   "/monitoring/incidences",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record recordedRequest
			client, _ := newTestClient(t, recordingHandler(&record))

			_, err := tt.call(client)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMethod, record.Method)
			assert.Equal(t, tt.wantPath, record.Path)
			assert.Equal(t, tt.wantQuery, record.Query)
			assert.Equal(t, tt.wantBody, record.Body)
			assert.Equal(t, "test-key", record.APIKey)
		})
	}
}

func TestURLNormalization(t *testing.T) {
	// Base URLs with and without trailing slash must construct the same request.
	var record recordedRequest
	server := httptest.NewServer(recordingHandler(&record))
	defer server.Close()

	for _, suffix := range []string{"", "/", "//"} {
		client, err := NewClient("test-key", zerolog.Nop(), WithBaseURL(server.URL+suffix))
		require.NoError(t, err)

		_, err = client.GetConfig(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/config", record.Path, "suffix %q", suffix)
	}
}

func TestAuthErrors(t *testing.T) {
	// 401 and 403 must classify as AuthError regardless of body content.
	bodies := []string{"", "{}", `{"status":"error"}`, "not json at all {{"}

	for _, body := range bodies {
		t.Run("401 body "+body, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(body))
			})

			_, err := client.GetStatus(context.Background())
			require.Error(t, err)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
			assert.False(t, authErr.SubscriptionRequired())
			assert.Contains(t, authErr.Message, "check your API key")
		})
	}

	t.Run("403 distinguishable from 401", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := client.ListBackups(context.Background())
		require.Error(t, err)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusForbidden, authErr.StatusCode)
		assert.True(t, authErr.SubscriptionRequired())
		assert.Contains(t, authErr.Message, "24fire+")
	})
}

func TestRequestError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"internal server error", http.StatusInternalServerError, "internal error"},
		{"not found", http.StatusNotFound, `{"status":"error","message":"unknown endpoint"}`},
		{"bad gateway empty body", http.StatusBadGateway, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.StartServer(context.Background())
			require.Error(t, err)

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, tt.body, reqErr.Body)
			assert.False(t, reqErr.Timeout())
		})
	}
}

func TestInvalidJSONResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	})

	envelope, err := client.GetConfig(context.Background())
	require.Error(t, err)
	assert.Nil(t, envelope)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "decode response", clientErr.Op)

	var jsonErr *json.SyntaxError
	assert.ErrorAs(t, err, &jsonErr)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	sample := map[string]any{
		"status":    "success",
		"requestID": "9a220700-00c4-42f7-bc8c-9487f09ec72c",
		"data": map[string]any{
			"cores":  4,
			"mem":    41984,
			"os":     map[string]any{"name": "debian_11", "displayname": "Debian 11"},
			"labels": []any{"a", "b"},
		},
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(sample))
	})

	envelope, err := client.GetConfig(context.Background())
	require.NoError(t, err)

	// Round trip through the server-side encoder gives float64 numbers.
	want := Envelope{
		"status":    "success",
		"requestID": "9a220700-00c4-42f7-bc8c-9487f09ec72c",
		"data": map[string]any{
			"cores":  float64(4),
			"mem":    float64(41984),
			"os":     map[string]any{"name": "debian_11", "displayname": "Debian 11"},
			"labels": []any{"a", "b"},
		},
	}
	assert.Equal(t, want, envelope)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), data["cores"])
}

func TestTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}, WithTimeout(50*time.Millisecond))

	_, err := client.GetStatus(context.Background())
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.StatusCode)
	assert.True(t, reqErr.Timeout())
}

func TestTransportFailure(t *testing.T) {
	// Point at a closed server so the dial fails outright.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient("test-key", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.GetConfig(context.Background())
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "execute request", clientErr.Op)
}

func TestDeleteBackupRequiresID(t *testing.T) {
	client, _ := newTestClient(t, recordingHandler(&recordedRequest{}))

	_, err := client.DeleteBackup(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingBackupID)
}

func TestDeleteBackupEscapesID(t *testing.T) {
	var record recordedRequest
	client, _ := newTestClient(t, recordingHandler(&record))

	_, err := client.DeleteBackup(context.Background(), "id with spaces&x=1")
	require.NoError(t, err)
	assert.Equal(t, "/backup/delete", record.Path)
	assert.Equal(t, "backup_id=id+with+spaces%26x%3D1", record.Query)
}

func TestSnapshot(t *testing.T) {
	success := func(w http.ResponseWriter, section string) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "success", "section": section})
	}

	t.Run("all endpoints available", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			success(w, r.URL.Path)
		})

		snap, err := client.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/config", snap.Config["section"])
		assert.Equal(t, "/status", snap.Status["section"])
		assert.Equal(t, "/backup/list", snap.Backups["section"])
		assert.Equal(t, "/monitoring/timings", snap.Timings["section"])
	})

	t.Run("subscription denial tolerated", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/backup/list", "/monitoring/timings":
				w.WriteHeader(http.StatusForbidden)
			default:
				success(w, r.URL.Path)
			}
		})

		snap, err := client.Snapshot(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, snap.Config)
		assert.NotNil(t, snap.Status)
		assert.Nil(t, snap.Backups)
		assert.Nil(t, snap.Timings)
	})

	t.Run("hard failure aborts", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/status" {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("boom"))
				return
			}
			success(w, r.URL.Path)
		})

		snap, err := client.Snapshot(context.Background())
		require.Error(t, err)
		assert.Nil(t, snap)

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	})
}
