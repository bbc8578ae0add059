package http

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/dashboard"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
	"github.com/autopeer-io/riskboard/internal/riskboard/predictor"
	"github.com/autopeer-io/riskboard/internal/riskboard/session"
	"github.com/autopeer-io/riskboard/internal/riskboard/theme"
	"github.com/autopeer-io/riskboard/internal/riskboard/view"
	"github.com/autopeer-io/riskboard/pkg/options"
)

// scoringService fakes the external scoring API.
type scoringService struct {
	failVehicles atomic.Bool
	unhealthy    atomic.Bool
}

func (s *scoringService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		if s.unhealthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
	mux.HandleFunc("GET /models", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[
			{"name":"decision_tree","model_type":"tree","auc":0.812,"description":"Shallow tree"},
			{"name":"random_forest","model_type":"ensemble","auc":0.874,"description":"Bagged trees"}]`)
	})
	mux.HandleFunc("GET /vehicles", func(w http.ResponseWriter, r *http.Request) {
		if s.failVehicles.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		bucket := "High"
		if r.URL.Query().Get("model_name") == "random_forest" {
			bucket = "Medium"
		}
		_, _ = io.WriteString(w, `[{"id":42,"vin":"VIN0042","model":"Sedan X","model_year":2021,"mileage":48210,
			"region":"West","supplier_code":"SUP-7","risk_score":0.734,"risk_bucket":"`+bucket+`"}]`)
	})
	mux.HandleFunc("GET /vehicles/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "42" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"summary":{"id":42,"vin":"VIN0042","model":"Sedan X","model_year":2021,
			"risk_score":0.734,"risk_bucket":"High"},"service_history":[]}`)
	})
	return mux
}

type fixture struct {
	scoring *scoringService
	server  *httptest.Server
	client  *http.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	scoring := &scoringService{}
	backend := httptest.NewServer(scoring.handler())
	t.Cleanup(backend.Close)

	client := predictor.NewClient(backend.URL, 0)
	sessions := session.NewRegistry(func() *dashboard.Controller {
		return dashboard.NewController(dashboard.Machine{DefaultModel: "decision_tree", VehicleLimit: 100}, client)
	}, time.Minute)

	renderer, err := view.NewRenderer(nil)
	require.NoError(t, err)

	h := NewHandler(HandlerConfig{
		Sessions:     sessions,
		Themes:       theme.NewMemoryStore(),
		DefaultTheme: model.ThemeLight,
		Renderer:     renderer,
		Health:       client,
		RenderWait:   2 * time.Second,
	})
	srv := httptest.NewServer(NewRouter(h, options.NewMetricsOptions()))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &fixture{
		scoring: scoring,
		server:  srv,
		client:  &http.Client{Jar: jar},
	}
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.Get(f.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (f *fixture) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.server.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndexMountsSession(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<option value="decision_tree" selected>decision_tree (tree)</option>`)
	assert.Contains(t, body, "AUC: <strong>0.812</strong>")
	assert.Contains(t, body, `<span class="risk-badge risk-high">High (73%)</span>`)
	assert.Contains(t, body, `action="/actions/vehicles/42"`)
	assert.Contains(t, body, "Select a vehicle on the left")

	u, _ := url.Parse(f.server.URL)
	names := map[string]bool{}
	for _, c := range f.client.Jar.Cookies(u) {
		names[c.Name] = true
	}
	assert.True(t, names[SessionCookie])
	assert.True(t, names[ClientCookie])
}

func TestSelectVehicle(t *testing.T) {
	f := newFixture(t)
	f.get(t, "/")

	resp, body := f.post(t, "/actions/vehicles/42", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode, "redirected back to the dashboard")
	assert.Contains(t, body, `class="row-selected"`)
	assert.Contains(t, body, "No service history recorded for this vehicle in the PoC dataset.")

	resp, _ = f.post(t, "/actions/vehicles/7", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestActionsRedirectWithSeeOther(t *testing.T) {
	f := newFixture(t)
	f.get(t, "/")
	f.client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	resp, _ := f.post(t, "/actions/reload", nil)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestSelectModel(t *testing.T) {
	f := newFixture(t)
	f.get(t, "/")

	_, body := f.post(t, "/actions/model", url.Values{"model": {"random_forest"}})

	assert.Contains(t, body, `<option value="random_forest" selected>`)
	assert.Contains(t, body, "Medium (73%)")
	assert.Contains(t, body, "Bagged trees")

	resp, _ := f.post(t, "/actions/model", url.Values{"model": {"nope"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.post(t, "/actions/model", url.Values{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body = f.get(t, "/")
	assert.Contains(t, body, `<option value="random_forest" selected>`, "selection survives a missing model field")
}

func TestVehicleFailureShowsBanner(t *testing.T) {
	f := newFixture(t)
	f.get(t, "/")
	f.scoring.failVehicles.Store(true)

	_, body := f.post(t, "/actions/model", url.Values{"model": {"random_forest"}})

	assert.Contains(t, body, `<div class="error-banner" role="alert">Failed to load vehicles.</div>`)
	assert.Contains(t, body, "VIN0042", "previous list stays visible")
	assert.Contains(t, body, "Predictive Warranty Risk (OEM PoC)")

	f.scoring.failVehicles.Store(false)
	_, body = f.post(t, "/actions/model", url.Values{"model": {"random_forest"}})
	assert.NotContains(t, body, "error-banner")
}

func TestToggleTheme(t *testing.T) {
	f := newFixture(t)
	_, body := f.get(t, "/")
	assert.Contains(t, body, `<body class="theme-light">`)

	_, body = f.post(t, "/actions/theme", nil)
	assert.Contains(t, body, `<body class="theme-dark">`)

	// A new session for the same client keeps the preference.
	u, _ := url.Parse(f.server.URL)
	var kept []*http.Cookie
	for _, c := range f.client.Jar.Cookies(u) {
		if c.Name == ClientCookie {
			kept = append(kept, c)
		}
	}
	jar, _ := cookiejar.New(nil)
	jar.SetCookies(u, kept)
	f.client.Jar = jar

	_, body = f.get(t, "/")
	assert.Contains(t, body, `<body class="theme-dark">`)
}

func TestToggleThemeReplacesMalformedClientID(t *testing.T) {
	f := newFixture(t)
	u, _ := url.Parse(f.server.URL)
	f.client.Jar.SetCookies(u, []*http.Cookie{{Name: ClientCookie, Value: "not-a-uuid", Path: "/"}})

	f.client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, _ := f.post(t, "/actions/theme", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var issued []string
	for _, c := range resp.Cookies() {
		if c.Name == ClientCookie {
			issued = append(issued, c.Value)
		}
	}
	require.Len(t, issued, 1)
	assert.NotEqual(t, "not-a-uuid", issued[0])

	// The preference was saved under the id the browser now holds.
	_, body := f.get(t, "/")
	assert.Contains(t, body, `<body class="theme-dark">`)
}

func TestAPIState(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/api/state")

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var got struct {
		SelectedModel   string                 `json:"selectedModel"`
		Vehicles        []model.VehicleSummary `json:"vehicles"`
		LoadingVehicles bool                   `json:"loadingVehicles"`
		Theme           string                 `json:"theme"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "decision_tree", got.SelectedModel)
	assert.Len(t, got.Vehicles, 1)
	assert.False(t, got.LoadingVehicles)
	assert.Equal(t, "light", got.Theme)
}

func TestHealthEndpointsAndMetrics(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	resp, _ = f.get(t, "/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	f.scoring.unhealthy.Store(true)
	resp, _ = f.get(t, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	f.get(t, "/")
	resp, body = f.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, "riskboard_fetch_total"))
	assert.Contains(t, body, "riskboard_active_sessions")
}

func TestStaticAssets(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/static/riskboard.css")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".row-selected")
}
