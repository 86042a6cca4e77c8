package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	allowed := []string{"http://localhost:3000/", " https://activities.mergington.edu "}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	handler := CORS(allowed, next)

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantAllowed bool
	}{
		{"allowed origin", http.MethodGet, "http://localhost:3000", http.StatusOK, true},
		{"trimmed origin", http.MethodPost, "https://activities.mergington.edu", http.StatusOK, true},
		{"unknown origin", http.MethodGet, "https://evil.example", http.StatusOK, false},
		{"preflight allowed", http.MethodOptions, "http://localhost:3000", http.StatusNoContent, true},
		{"preflight unknown", http.MethodOptions, "https://evil.example", http.StatusNoContent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/activities", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantAllowed {
				require.Equal(t, tt.origin, rr.Header().Get("Access-Control-Allow-Origin"))
			} else {
				require.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
			}
			if tt.method == http.MethodOptions && tt.wantAllowed {
				require.Equal(t, corsAllowMethods, rr.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
