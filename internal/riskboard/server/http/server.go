package http

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/autopeer-io/riskboard/internal/pkg/metrics"
	httpmw "github.com/autopeer-io/riskboard/internal/pkg/middleware/http"
	"github.com/autopeer-io/riskboard/pkg/log"
	"github.com/autopeer-io/riskboard/pkg/options"
)

// Server serves the dashboard with its actions, health endpoints and metrics.
type Server struct {
	server  *http.Server
	options *options.HttpOptions
}

// NewRouter builds the routing table.
func NewRouter(h *Handler, metricsOpts *options.MetricsOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(httpmw.Recover, httpmw.Logging)

	if metricsOpts != nil && metricsOpts.Enabled {
		r.Handle(metricsOpts.Path, promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	h.Register(r)

	return r
}

func NewServer(opts *options.HttpOptions, metricsOpts *options.MetricsOptions, h *Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:    opts.Addr,
			Handler: NewRouter(h, metricsOpts),
		},
		options: opts,
	}
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen(s.options.Network, s.options.Addr)
	if err != nil {
		return err
	}
	log.Info("Starting HTTP Server", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down HTTP Server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
