package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue reads a counter from the default registry, or 0 if the series
// does not exist yet.
func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	series:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue series
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/{resource}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Middleware(mux)

	labels := map[string]string{"method": "GET", "route": "/api/{resource}", "status_code": "418"}
	before := counterValue(t, "futureforward_http_requests_total", labels)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/services", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/industries", nil))

	if got := counterValue(t, "futureforward_http_requests_total", labels) - before; got != 2 {
		t.Errorf("expected 2 requests on one route label, got %v", got)
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	h := Middleware(http.NewServeMux())

	labels := map[string]string{"route": "unmatched", "status_code": "404"}
	before := counterValue(t, "futureforward_http_requests_total", labels)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/wp-login.php", nil))

	if got := counterValue(t, "futureforward_http_requests_total", labels) - before; got != 1 {
		t.Errorf("expected unmatched request to be counted once, got %v", got)
	}
}

func TestContactSubmission(t *testing.T) {
	labels := map[string]string{"channel": ChannelAPI, "outcome": OutcomeInvalid}
	before := counterValue(t, "futureforward_contact_submissions_total", labels)

	ContactSubmission(ChannelAPI, OutcomeInvalid)

	if got := counterValue(t, "futureforward_contact_submissions_total", labels) - before; got != 1 {
		t.Errorf("expected counter to increase by 1, got %v", got)
	}
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"", "unmatched"},
		{"GET /about", "/about"},
		{"/static/", "/static/"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		r.Pattern = tt.pattern
		if got := routeLabel(r); got != tt.want {
			t.Errorf("routeLabel(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}
