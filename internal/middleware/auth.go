package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// Metrics Auth
// =============================================================================

// MetricsAuthMiddleware provides basic authentication for the metrics endpoint.
type MetricsAuthMiddleware struct {
	username string
	password string
	enabled  bool
}

// NewMetricsAuthMiddleware creates a new metrics auth middleware.
// If both username and password are empty, authentication is disabled.
func NewMetricsAuthMiddleware(username, password string) *MetricsAuthMiddleware {
	return &MetricsAuthMiddleware{
		username: username,
		password: password,
		enabled:  username != "" || password != "",
	}
}

// Handler returns middleware that requires basic authentication.
func (m *MetricsAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok {
			unauthorized(w, "metrics")
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(m.username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(m.password)) == 1

		if !userMatch || !passMatch {
			unauthorized(w, "metrics")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Admin Auth
// =============================================================================

// AdminAuthMiddleware guards the admin dashboard with basic auth checked
// against a bcrypt password hash.
type AdminAuthMiddleware struct {
	username string
	hash     []byte
	logger   *slog.Logger
}

// NewAdminAuthMiddleware creates the admin auth middleware. An empty hash
// disables authentication, which is only expected in development.
func NewAdminAuthMiddleware(username, passwordHash string, logger *slog.Logger) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		username: username,
		hash:     []byte(passwordHash),
		logger:   logger,
	}
}

// Enabled reports whether credentials are required.
func (m *AdminAuthMiddleware) Enabled() bool {
	return len(m.hash) > 0
}

// Handler returns middleware that requires admin credentials.
func (m *AdminAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok {
			unauthorized(w, "admin")
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(m.username)) == 1
		// Always run bcrypt so a wrong username costs the same as a wrong password.
		passErr := bcrypt.CompareHashAndPassword(m.hash, []byte(pass))

		if !userMatch || passErr != nil {
			m.logger.Warn("admin authentication failed",
				"ip", getClientIP(r),
				"request_id", RequestID(r.Context()),
			)
			unauthorized(w, "admin")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// unauthorized sends a 401 response with a WWW-Authenticate challenge.
func unauthorized(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`", charset="UTF-8"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
