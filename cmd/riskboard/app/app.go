package app

import (
	"fmt"

	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/riskboard/cmd/riskboard/app/options"
	"github.com/autopeer-io/riskboard/pkg/app"
	"github.com/autopeer-io/riskboard/pkg/log"
)

const (
	commandName = "riskboard"
	commandDesc = `riskboard serves the predictive warranty risk dashboard.

It reads model metadata, scored vehicles and vehicle service history from the
scoring service and renders them as server-side HTML. Each browser session owns
its own dashboard state; the light/dark preference is persisted per client in
a local directory or an S3 bucket. High-risk vehicles can optionally be
published to an MQTT broker whenever a vehicle list loads.`
)

func NewApp() *app.App {
	opts := options.NewServerOptions()
	application := app.NewApp(
		commandName,
		"Launch the warranty risk dashboard",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.ServerOptions) app.RunFunc {
	return func() error {
		defer func() { _ = log.Sync() }()

		ctx := genericapiserver.SetupSignalContext()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		server, err := cfg.NewServer(ctx)
		if err != nil {
			return fmt.Errorf("failed to create riskboard server: %w", err)
		}

		return server.Run(ctx)
	}
}
