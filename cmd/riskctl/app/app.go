package app

import (
	"github.com/spf13/cobra"

	"github.com/autopeer-io/riskboard/cmd/riskctl/app/options"
	"github.com/autopeer-io/riskboard/internal/riskboard/predictor"
	"github.com/autopeer-io/riskboard/pkg/app"
)

const (
	commandName = "riskctl"
	commandDesc = `riskctl queries the warranty risk scoring service from the terminal.

Use the models, vehicles and vehicle commands for scripting, or tui for an
interactive rendition of the dashboard.`
)

func NewApp() *app.App {
	opts := options.NewCtlOptions()
	application := app.NewApp(
		commandName,
		"Query the warranty risk scoring service",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithSubCommands(
			newModelsCommand(opts),
			newVehiclesCommand(opts),
			newVehicleCommand(opts),
			newTUICommand(opts),
		),
	)
	return application
}

func newClient(opts *options.CtlOptions) *predictor.Client {
	return predictor.NewClient(opts.PredictorOptions.BaseURL, opts.PredictorOptions.Timeout)
}

// modelFlag registers --model; an empty value means the configured default model.
func modelFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "model", "", "Scoring model to use (defaults to --predictor.default-model).")
}

func modelOrDefault(opts *options.CtlOptions, name string) string {
	if name == "" {
		return opts.PredictorOptions.DefaultModel
	}
	return name
}
