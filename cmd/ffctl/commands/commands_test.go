package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/DukeRupert/futureforward/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	contacts atomic.Int32
	last     domain.ContactSubmission
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/services":
		_ = json.NewEncoder(w).Encode([]domain.Service{
			{ID: 1, Title: "Strategy Consulting", Features: []string{"Growth Strategy"}, Price: "Custom"},
			{ID: 2, Title: "Market Research", Features: []string{"Sizing"}},
		})
	case "/api/industries":
		_ = json.NewEncoder(w).Encode([]domain.Industry{
			{ID: 1, Name: "Manufacturing", Solutions: []string{"Lean"}, CaseStudies: []string{"A", "B"}},
		})
	case "/api/contact":
		f.contacts.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&f.last)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": domain.ContactThanks})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"not_found","message":"Not here"}}`))
	}
}

func run(t *testing.T, baseURL string, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--base-url", baseURL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv.URL + "/api"
}

func TestServices_Table(t *testing.T) {
	_, url := newFakeAPI(t)

	out, err := run(t, url, "", "services")
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy Consulting")
	assert.Contains(t, out, "Custom")
	assert.Contains(t, out, "Market Research")
}

func TestIndustries_JSON(t *testing.T) {
	_, url := newFakeAPI(t)

	out, err := run(t, url, "", "industries", "--json")
	require.NoError(t, err)

	var got []domain.Industry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"A", "B"}, got[0].CaseStudies)
}

func TestStatus(t *testing.T) {
	_, url := newFakeAPI(t)

	out, err := run(t, url, "", "status")
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 services, 1 industries\n", out)
}

func TestContact_Sends(t *testing.T) {
	api, url := newFakeAPI(t)

	out, err := run(t, url, "We would like to plan a market entry for next year.\n",
		"contact", "--name", "Jordan Avery", "--email", "jordan@example.com",
		"--subject", "Strategy engagement", "--message", "-")
	require.NoError(t, err)

	assert.Contains(t, out, domain.ContactThanks)
	assert.Equal(t, int32(1), api.contacts.Load())
	assert.Equal(t, "We would like to plan a market entry for next year.", api.last.Message)
}

func TestContact_InvalidSendsNothing(t *testing.T) {
	api, url := newFakeAPI(t)

	_, err := run(t, url, "", "contact", "--name", "J", "--email", "bad", "--subject", "Hi", "--message", "short")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "name: Name must be at least 2 characters")
	assert.Contains(t, err.Error(), "email: Invalid email format")
	assert.Equal(t, int32(0), api.contacts.Load())
}

func TestUnreachableAPI(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := run(t, url+"/api", "", "services")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Something went wrong")
}
