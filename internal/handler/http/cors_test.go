package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins: []string{"https://guide.example.com/", " http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         600,
	}

	tests := []struct {
		name         string
		method       string
		origin       string
		preflight    bool
		wantStatus   int
		wantAllowed  string
		wantNextCall bool
	}{
		{name: "same origin", method: http.MethodGet, wantStatus: http.StatusOK, wantNextCall: true},
		{
			name: "allowed origin", method: http.MethodGet, origin: "https://GUIDE.example.com",
			wantStatus: http.StatusOK, wantAllowed: "https://GUIDE.example.com", wantNextCall: true,
		},
		{name: "disallowed origin", method: http.MethodGet, origin: "https://evil.example", wantStatus: http.StatusOK, wantNextCall: true},
		{
			name: "preflight", method: http.MethodOptions, origin: "http://localhost:3000", preflight: true,
			wantStatus: http.StatusNoContent, wantAllowed: "http://localhost:3000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := CORS(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/countries", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "PATCH")
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowed, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantNextCall, called)
			if tt.preflight {
				assert.Equal(t, "GET, POST, PATCH, DELETE", rr.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "600", rr.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}

func TestCORS_Wildcard(t *testing.T) {
	handler := CORS(CORSConfig{AllowedOrigins: []string{"*"}}, slog.New(slog.NewTextHandler(io.Discard, nil)))(ok())

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "https://anywhere.example", rr.Header().Get("Access-Control-Allow-Origin"))
}
