// Package csrf protects the site's HTML forms with the double-submit cookie
// pattern: a random token is stored in a cookie and echoed in a hidden form
// field, and unsafe requests are rejected unless the two match.
package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
)

const (
	// CookieName is the name of the CSRF token cookie.
	CookieName = "csrf_token"

	// FormFieldName is the name of the CSRF token form field.
	FormFieldName = "csrf_token"

	// TokenLength is the number of random bytes for the token (32 bytes = 256 bits).
	TokenLength = 32

	// CookieMaxAge is the lifetime of the CSRF cookie (2 hours).
	CookieMaxAge = 7200
)

type contextKey struct{}

// GenerateToken returns 32 random bytes, base64 URL-encoded.
func GenerateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ValidateToken compares the cookie token with the form token in constant time.
func ValidateToken(cookieToken, formToken string) bool {
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}

// Token returns the token the Protector attached to ctx, for rendering into
// forms. It is empty outside a protected handler.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(contextKey{}).(string)
	return token
}

// Protector issues tokens on every request and checks them on unsafe ones.
type Protector struct {
	secure bool
	logger *slog.Logger
}

// New creates a Protector. secure marks the cookie HTTPS-only.
func New(secure bool, logger *slog.Logger) *Protector {
	return &Protector{secure: secure, logger: logger}
}

// Handler returns middleware that validates POST, PUT, PATCH and DELETE
// requests and makes the current token available through Token.
func (p *Protector) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if !p.validRequest(r) {
				p.logger.Warn("csrf validation failed",
					"path", r.URL.Path,
					"method", r.Method,
				)
				http.Error(w, "Your form has expired. Please reload the page and try again.", http.StatusForbidden)
				return
			}
		}

		token, err := p.ensureToken(w, r)
		if err != nil {
			p.logger.Error("csrf token generation failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, token)))
	})
}

// validRequest reads the cookie and the form field. ParseForm is called as a
// side effect so handlers can read r.Form afterwards.
func (p *Protector) validRequest(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return ValidateToken(cookie.Value, r.FormValue(FormFieldName))
}

// ensureToken reuses the token cookie when present and sets a fresh one
// otherwise.
func (p *Protector) ensureToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	token, err := GenerateToken()
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}
