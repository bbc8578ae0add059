package riskboard

import (
	"context"
	"fmt"

	"github.com/autopeer-io/riskboard/internal/riskboard/core"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/dashboard"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/format"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
	"github.com/autopeer-io/riskboard/internal/riskboard/notifier"
	"github.com/autopeer-io/riskboard/internal/riskboard/predictor"
	"github.com/autopeer-io/riskboard/internal/riskboard/server"
	httpserver "github.com/autopeer-io/riskboard/internal/riskboard/server/http"
	mqttserver "github.com/autopeer-io/riskboard/internal/riskboard/server/mqtt"
	"github.com/autopeer-io/riskboard/internal/riskboard/session"
	"github.com/autopeer-io/riskboard/internal/riskboard/theme"
	"github.com/autopeer-io/riskboard/internal/riskboard/view"
	"github.com/autopeer-io/riskboard/pkg/log"
	"github.com/autopeer-io/riskboard/pkg/options"
)

type Config struct {
	HttpOptions      *options.HttpOptions
	PredictorOptions *options.PredictorOptions
	ThemeOptions     *options.ThemeOptions
	S3Options        *options.S3Options
	MqttOptions      *options.MqttOptions
	MetricsOptions   *options.MetricsOptions
	ViewOptions      *options.ViewOptions
}

// NewServer assembles the adapters, the session registry and the servers
// that expose them.
func (cfg *Config) NewServer(ctx context.Context) (*Server, error) {
	// 1. Scoring service (secondary adapter)
	client := predictor.NewClient(cfg.PredictorOptions.BaseURL, cfg.PredictorOptions.Timeout)

	// 2. Theme persistence
	themes, err := theme.NewStore(ctx, cfg.ThemeOptions, cfg.S3Options)
	if err != nil {
		return nil, fmt.Errorf("failed to init theme store: %w", err)
	}

	// 3. Optional alert feed
	var alerts core.AlertNotifier = notifier.Nop{}
	servers := []server.Server{}
	if cfg.MqttOptions.Enabled {
		mqttClient, err := InitializeMQTTClient(cfg.MqttOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to init notifier: %w", err)
		}
		alerts = notifier.NewMQTTNotifier(mqttClient, cfg.MqttOptions.TopicRoot)
		servers = append(servers, mqttserver.NewServer(mqttClient))
	}

	// 4. One dashboard controller per browser session
	machine := dashboard.Machine{
		DefaultModel: cfg.PredictorOptions.DefaultModel,
		VehicleLimit: cfg.PredictorOptions.VehicleLimit,
	}
	logger := log.WithName("dashboard")
	registry := session.NewRegistry(func() *dashboard.Controller {
		return dashboard.NewController(machine, client,
			dashboard.WithNotifier(alerts),
			dashboard.WithLogger(logger),
		)
	}, cfg.HttpOptions.SessionIdleTTL)

	// 5. Presentation
	loc, err := cfg.ViewOptions.Location()
	if err != nil {
		return nil, err
	}
	renderer, err := view.NewRenderer(format.NewDateFormatter(cfg.ViewOptions.Locale, loc))
	if err != nil {
		return nil, fmt.Errorf("failed to init renderer: %w", err)
	}

	// 6. Ingress
	handler := httpserver.NewHandler(httpserver.HandlerConfig{
		Sessions:     registry,
		Themes:       themes,
		DefaultTheme: model.ParseTheme(cfg.ThemeOptions.Default),
		Renderer:     renderer,
		Health:       client,
		RenderWait:   cfg.HttpOptions.RenderWait,
	})
	servers = append(servers,
		httpserver.NewServer(cfg.HttpOptions, cfg.MetricsOptions, handler),
		server.ServerFunc(registry.Run),
	)

	return &Server{serverManager: server.NewManager(servers...)}, nil
}
