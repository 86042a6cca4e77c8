package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// capturingHandler records the last log record for assertions.
type capturingHandler struct {
	record slog.Record
}

func (h *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.record = r.Clone()
	return nil
}

func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(_ string) slog.Handler { return h }

func TestLoggingMiddleware(t *testing.T) {
	var cap capturingHandler
	logger := slog.New(&cap)

	tests := []struct {
		name          string
		handlerStatus int
		path          string
		method        string
		wantLevel     slog.Level
	}{
		{"ok status", http.StatusOK, "/activities", http.MethodGet, slog.LevelInfo},
		{"signup", http.StatusOK, "/activities/Chess Club/signup", http.MethodPost, slog.LevelInfo},
		{"not found", http.StatusNotFound, "/activities/Nope/unregister", http.MethodPost, slog.LevelInfo},
		{"server error", http.StatusInternalServerError, "/activities", http.MethodGet, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte("{}"))
			})
			handler := RequestID(LoggingMiddleware(logger, next))
			req := httptest.NewRequest(tt.method, "http://test/", nil)
			req.URL.Path = tt.path
			req.Header.Set(RequestIDHeader, "req-123")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, "request", cap.record.Message)
			require.Equal(t, tt.wantLevel, cap.record.Level)
			attrs := make(map[string]slog.Value)
			cap.record.Attrs(func(a slog.Attr) bool {
				attrs[a.Key] = a.Value
				return true
			})
			require.Contains(t, attrs, "method")
			require.Contains(t, attrs, "path")
			require.Contains(t, attrs, "status")
			require.Contains(t, attrs, "duration_ms")
			require.Equal(t, tt.method, attrs["method"].String())
			require.Equal(t, tt.path, attrs["path"].String())
			require.Equal(t, int64(tt.handlerStatus), attrs["status"].Int64())
			require.Equal(t, int64(2), attrs["bytes"].Int64())
			require.Equal(t, "req-123", attrs["request_id"].String())
			require.GreaterOrEqual(t, attrs["duration_ms"].Int64(), int64(0))
			require.Equal(t, tt.handlerStatus, rr.Code)
		})
	}
}

func TestLoggingMiddleware_DefaultStatus(t *testing.T) {
	var cap capturingHandler
	logger := slog.New(&cap)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	LoggingMiddleware(logger, next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var status int64
	cap.record.Attrs(func(a slog.Attr) bool {
		if a.Key == "status" {
			status = a.Value.Int64()
		}
		return true
	})
	require.Equal(t, int64(http.StatusOK), status)
}

func TestLoggingMiddleware_Route(t *testing.T) {
	var cap capturingHandler
	logger := slog.New(&cap)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /activities/{name}/signup", func(w http.ResponseWriter, r *http.Request) {})
	handler := LoggingMiddleware(logger, mux)

	route := func() string {
		var got string
		cap.record.Attrs(func(a slog.Attr) bool {
			if a.Key == "route" {
				got = a.Value.String()
			}
			return true
		})
		return got
	}

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup?email=a%40mergington.edu", nil))
	require.Equal(t, "POST /activities/{name}/signup", route())

	var path string
	cap.record.Attrs(func(a slog.Attr) bool {
		if a.Key == "path" {
			path = a.Value.String()
		}
		return true
	})
	require.Equal(t, "/activities/Chess Club/signup", path)
	require.NotContains(t, path, "mergington.edu")

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Empty(t, route())
}
