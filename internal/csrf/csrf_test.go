package csrf

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func protected(seen *string) http.Handler {
	p := New(false, slog.New(slog.DiscardHandler))
	return p.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = Token(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func postForm(token, cookie string) *http.Request {
	form := url.Values{"name": {"Jordan"}}
	if token != "" {
		form.Set(FormFieldName, token)
	}
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	return req
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := GenerateToken()

	if len(a) != 44 {
		t.Errorf("expected 44 character token, got %d", len(a))
	}
	if a == b {
		t.Error("tokens should be unique")
	}
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		cookie, form string
		want         bool
	}{
		{"abc", "abc", true},
		{"abc", "abd", false},
		{"", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		if got := ValidateToken(tt.cookie, tt.form); got != tt.want {
			t.Errorf("ValidateToken(%q, %q) = %v", tt.cookie, tt.form, got)
		}
	}
}

func TestProtector_GetIssuesToken(t *testing.T) {
	var seen string
	rec := httptest.NewRecorder()
	protected(&seen).ServeHTTP(rec, httptest.NewRequest("GET", "/contact", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected csrf cookie, got %v", cookies)
	}
	if seen == "" || seen != cookies[0].Value {
		t.Errorf("context token %q should match cookie %q", seen, cookies[0].Value)
	}
}

func TestProtector_GetReusesCookie(t *testing.T) {
	var seen string
	req := httptest.NewRequest("GET", "/contact", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "existing"})
	rec := httptest.NewRecorder()

	protected(&seen).ServeHTTP(rec, req)

	if seen != "existing" {
		t.Errorf("expected existing token, got %q", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("should not reissue cookie")
	}
}

func TestProtector_Post(t *testing.T) {
	tests := []struct {
		name   string
		form   string
		cookie string
		want   int
	}{
		{"matching", "tok", "tok", http.StatusOK},
		{"mismatch", "tok", "other", http.StatusForbidden},
		{"no cookie", "tok", "", http.StatusForbidden},
		{"no field", "", "tok", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			rec := httptest.NewRecorder()
			protected(&seen).ServeHTTP(rec, postForm(tt.form, tt.cookie))

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
