package app

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/riskboard/cmd/riskctl/app/options"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/dashboard"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/format"
	"github.com/autopeer-io/riskboard/internal/riskboard/tui"
	"github.com/autopeer-io/riskboard/pkg/log"
)

func newTUICommand(opts *options.CtlOptions) *cobra.Command {
	logFile := filepath.Join(os.TempDir(), "riskctl-tui.log")

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the dashboard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := genericapiserver.SetupSignalContext()

			loc, err := opts.ViewOptions.Location()
			if err != nil {
				return err
			}

			// The screen owns the terminal, so fetch failures go to a file.
			logger := log.NewLogger(tuiLogOptions(opts.Log, logFile)).WithName("dashboard")
			defer func() { _ = logger.Sync() }()

			controller := dashboard.NewController(
				dashboard.Machine{
					DefaultModel: opts.PredictorOptions.DefaultModel,
					VehicleLimit: opts.PredictorOptions.VehicleLimit,
				},
				newClient(opts),
				dashboard.WithLogger(logger),
			)
			defer controller.Close()

			return tui.New(controller, format.NewDateFormatter(opts.ViewOptions.Locale, loc)).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", logFile, "File receiving dashboard logs while the terminal UI is open.")
	return cmd
}

// tuiLogOptions derives file logging options from the command's log options.
// Level and caller settings carry over; the output is always JSON in path.
func tuiLogOptions(base *log.Options, path string) *log.Options {
	o := *base
	o.Format = "json"
	o.EnableColor = false
	o.CallerSkip = 1
	o.OutputPaths = []string{path}
	return &o
}
