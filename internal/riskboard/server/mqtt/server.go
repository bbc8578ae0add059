package mqtt

import (
	"context"
	"time"

	"github.com/autopeer-io/riskboard/pkg/log"
	pkgmqtt "github.com/autopeer-io/riskboard/pkg/mqtt"
)

const disconnectTimeout = 5 * time.Second

// Server owns the lifecycle of the alert publisher connection.
type Server struct {
	client pkgmqtt.Client
}

func NewServer(client pkgmqtt.Client) *Server {
	return &Server{client: client}
}

// Start connects to the broker and holds the connection until ctx is done.
// Alerts published before the connection is up fail and are logged by the
// notifier.
func (s *Server) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return err
	}

	defer func() {
		log.Info("Disconnecting MQTT client...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		s.client.Disconnect(shutdownCtx)
	}()

	log.Info("Waiting for MQTT connection...")
	if err := s.client.AwaitConnection(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	log.Info("MQTT Connected")

	<-ctx.Done()
	return nil
}
