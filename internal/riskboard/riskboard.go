package riskboard

import (
	"context"

	"github.com/autopeer-io/riskboard/internal/riskboard/server"
	"github.com/autopeer-io/riskboard/pkg/log"
)

// Server is the assembled dashboard process.
type Server struct {
	serverManager *server.Manager
}

// Run blocks until ctx is canceled or one of the servers fails.
func (s *Server) Run(ctx context.Context) error {
	log.Info("Starting riskboard...")
	defer log.Info("riskboard stopped")

	return s.serverManager.Start(ctx)
}
