package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/autopeer-io/riskboard/internal/riskboard/core"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/dashboard"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
	"github.com/autopeer-io/riskboard/internal/riskboard/session"
	"github.com/autopeer-io/riskboard/internal/riskboard/theme"
	"github.com/autopeer-io/riskboard/internal/riskboard/view"
	"github.com/autopeer-io/riskboard/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// SessionCookie identifies the dashboard session. It is not persistent.
	SessionCookie = "riskboard_session"
	// ClientCookie identifies the browser across reloads; theme preferences
	// are keyed by it.
	ClientCookie = "riskboard_client"

	clientCookieMaxAge = 365 * 24 * 60 * 60
	readyTimeout       = 2 * time.Second
)

// Route names.
const (
	routeIndex         = "index"
	routeSelectModel   = "select-model"
	routeSelectVehicle = "select-vehicle"
	routeToggleTheme   = "toggle-theme"
	routeReload        = "reload"
)

// HealthChecker checks that a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler serves the dashboard pages and actions.
type Handler struct {
	sessions     *session.Registry
	themes       core.ThemeStore
	defaultTheme model.Theme
	renderer     *view.Renderer
	health       HealthChecker
	renderWait   time.Duration

	router *mux.Router
}

// HandlerConfig groups the dependencies of a Handler.
type HandlerConfig struct {
	Sessions     *session.Registry
	Themes       core.ThemeStore
	DefaultTheme model.Theme
	Renderer     *view.Renderer
	Health       HealthChecker
	RenderWait   time.Duration
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		sessions:     cfg.Sessions,
		themes:       cfg.Themes,
		defaultTheme: cfg.DefaultTheme,
		renderer:     cfg.Renderer,
		health:       cfg.Health,
		renderWait:   cfg.RenderWait,
	}
}

// Register adds the dashboard routes to r.
func (h *Handler) Register(r *mux.Router) {
	h.router = r

	r.HandleFunc("/", h.index).Methods(http.MethodGet).Name(routeIndex)
	r.HandleFunc("/actions/model", h.selectModel).Methods(http.MethodPost).Name(routeSelectModel)
	r.HandleFunc("/actions/vehicles/{id:[0-9]+}", h.selectVehicle).Methods(http.MethodPost).Name(routeSelectVehicle)
	r.HandleFunc("/actions/theme", h.toggleTheme).Methods(http.MethodPost).Name(routeToggleTheme)
	r.HandleFunc("/actions/reload", h.reload).Methods(http.MethodPost).Name(routeReload)
	r.HandleFunc("/api/state", h.apiState).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.readyz).Methods(http.MethodGet)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", view.StaticHandler()))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	state := h.settled(r.Context(), s)
	t := h.theme(r.Context(), h.clientID(w, r))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Page(w, view.NewPageProps(state, t, h.links())); err != nil {
		log.Error(err, "Failed to render dashboard", "session", s.ID)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) selectModel(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	name := r.PostFormValue("model")

	if err := s.Controller.Dispatch(dashboard.ModelSelected{Name: name}); err != nil {
		h.dispatchError(w, err)
		return
	}
	h.redirectHome(w, r)
}

func (h *Handler) selectVehicle(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid vehicle id", http.StatusBadRequest)
		return
	}

	if err := s.Controller.Dispatch(dashboard.VehicleSelected{ID: id}); err != nil {
		h.dispatchError(w, err)
		return
	}
	h.redirectHome(w, r)
}

func (h *Handler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	clientID := h.clientID(w, r)
	current := h.theme(r.Context(), clientID)

	next := current.Toggle()
	if requested := r.PostFormValue("theme"); requested != "" {
		next = model.ParseTheme(requested)
	}

	if err := h.themes.Save(r.Context(), clientID, next); err != nil {
		log.Error(err, "Failed to save theme", "client", clientID)
	}
	h.redirectHome(w, r)
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if err := s.Controller.Dispatch(dashboard.Mounted{}); err != nil {
		h.dispatchError(w, err)
		return
	}
	h.redirectHome(w, r)
}

type stateResponse struct {
	dashboard.State
	LoadingVehicles bool        `json:"loadingVehicles"`
	LoadingDetail   bool        `json:"loadingDetail"`
	Theme           model.Theme `json:"theme"`
}

func (h *Handler) apiState(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	state := h.settled(r.Context(), s)

	resp := stateResponse{
		State:           state,
		LoadingVehicles: state.LoadingVehicles(),
		LoadingDetail:   state.LoadingDetail(),
		Theme:           h.theme(r.Context(), h.clientID(w, r)),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error(err, "Failed to encode state", "session", s.ID)
	}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := h.health.Health(ctx); err != nil {
			http.Error(w, "scoring service unavailable: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// session returns the caller's session, issuing a cookie for a new one.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	s, created := h.sessions.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    s.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s
}

// clientID returns the persistent client id, issuing one when missing or
// malformed. Call it once per request and pass the result down.
func (h *Handler) clientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ClientCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   clientCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) theme(ctx context.Context, clientID string) model.Theme {
	t, err := theme.Resolve(ctx, h.themes, clientID, h.defaultTheme)
	if err != nil {
		log.Warn("Failed to load theme, using default", "client", clientID, "error", err.Error())
	}
	return t
}

// settled waits up to renderWait for outstanding fetches, then snapshots.
func (h *Handler) settled(ctx context.Context, s *session.Session) dashboard.State {
	ctx, cancel := context.WithTimeout(ctx, h.renderWait)
	defer cancel()
	_ = s.Controller.WaitIdle(ctx)
	return s.Controller.Snapshot()
}

func (h *Handler) links() view.Links {
	return view.Links{
		SelectModel: h.path(routeSelectModel),
		ToggleTheme: h.path(routeToggleTheme),
		Reload:      h.path(routeReload),
		SelectVehicle: func(id int64) string {
			return h.path(routeSelectVehicle, "id", strconv.FormatInt(id, 10))
		},
	}
}

func (h *Handler) path(name string, pairs ...string) string {
	u, err := h.router.Get(name).URL(pairs...)
	if err != nil {
		log.Error(err, "Failed to build route URL", "route", name)
		return "/"
	}
	return u.Path
}

func (h *Handler) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.path(routeIndex), http.StatusSeeOther)
}

func (h *Handler) dispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrUnknownVehicle):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, dashboard.ErrUnknownModel):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, dashboard.ErrClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		log.Error(err, "Failed to dispatch event")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
