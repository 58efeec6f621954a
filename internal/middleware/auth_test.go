package middleware

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

// =============================================================================
// Metrics Auth Middleware Tests
// =============================================================================

func TestMetricsAuthMiddleware_Credentials(t *testing.T) {
	wrapped := NewMetricsAuthMiddleware("admin", "secret123").Handler(okHandler)

	testCases := []struct {
		name     string
		user     string
		pass     string
		noAuth   bool
		expected int
	}{
		{name: "valid", user: "admin", pass: "secret123", expected: http.StatusOK},
		{name: "wrong password", user: "admin", pass: "wrong", expected: http.StatusUnauthorized},
		{name: "wrong user", user: "wrong", pass: "secret123", expected: http.StatusUnauthorized},
		{name: "empty", user: "", pass: "", expected: http.StatusUnauthorized},
		{name: "missing header", noAuth: true, expected: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/metrics", nil)
			if !tc.noAuth {
				req.SetBasicAuth(tc.user, tc.pass)
			}
			rec := httptest.NewRecorder()

			wrapped.ServeHTTP(rec, req)

			if rec.Code != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, rec.Code)
			}
			if tc.expected == http.StatusUnauthorized && !strings.Contains(rec.Header().Get("WWW-Authenticate"), `realm="metrics"`) {
				t.Errorf("expected metrics challenge, got %q", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestMetricsAuthMiddleware_DisabledWhenNoCredentials(t *testing.T) {
	wrapped := NewMetricsAuthMiddleware("", "").Handler(okHandler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 when auth is disabled, got %d", rec.Code)
	}
}

func TestMetricsAuthMiddleware_HeaderInjection(t *testing.T) {
	wrapped := NewMetricsAuthMiddleware("admin", "secret123").Handler(okHandler)

	req := httptest.NewRequest("GET", "/metrics", nil)
	malicious := base64.StdEncoding.EncodeToString([]byte("admin:secret123\r\nX-Injected: header"))
	req.Header.Set("Authorization", "Basic "+malicious)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for injection attempt, got %d", rec.Code)
	}
}

// =============================================================================
// Admin Auth Middleware Tests
// =============================================================================

func TestAdminAuthMiddleware(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	mw := NewAdminAuthMiddleware("owner", string(hash), slog.New(slog.DiscardHandler))
	if !mw.Enabled() {
		t.Fatal("expected auth to be enabled")
	}
	wrapped := mw.Handler(okHandler)

	testCases := []struct {
		name     string
		user     string
		pass     string
		expected int
	}{
		{"valid", "owner", "correct horse", http.StatusOK},
		{"wrong password", "owner", "battery staple", http.StatusUnauthorized},
		{"wrong user", "admin", "correct horse", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			req.SetBasicAuth(tc.user, tc.pass)
			rec := httptest.NewRecorder()

			wrapped.ServeHTTP(rec, req)

			if rec.Code != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, rec.Code)
			}
		})
	}

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/admin", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing credentials: expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("WWW-Authenticate"), `realm="admin"`) {
		t.Errorf("expected admin challenge, got %q", rec.Header().Get("WWW-Authenticate"))
	}
}

func TestAdminAuthMiddleware_DisabledWithoutHash(t *testing.T) {
	mw := NewAdminAuthMiddleware("owner", "", slog.New(slog.DiscardHandler))
	if mw.Enabled() {
		t.Fatal("expected auth to be disabled")
	}

	rec := httptest.NewRecorder()
	mw.Handler(okHandler).ServeHTTP(rec, httptest.NewRequest("GET", "/admin", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
