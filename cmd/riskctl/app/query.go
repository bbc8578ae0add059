package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/autopeer-io/riskboard/cmd/riskctl/app/options"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/format"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
	"github.com/autopeer-io/riskboard/internal/riskboard/view"
)

const maxColWidth = 60

func newModelsCommand(opts *options.CtlOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the scoring models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := newClient(opts).ListModels(cmd.Context())
			if err != nil {
				return err
			}
			return printModels(cmd.OutOrStdout(), models)
		},
	}
}

func newVehiclesCommand(opts *options.CtlOptions) *cobra.Command {
	var modelName string
	var limit int

	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List scored vehicles for a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = opts.PredictorOptions.VehicleLimit
			}
			vehicles, err := newClient(opts).ListVehicles(cmd.Context(), modelOrDefault(opts, modelName), limit)
			if err != nil {
				return err
			}
			return printVehicles(cmd.OutOrStdout(), vehicles)
		},
	}
	modelFlag(cmd, &modelName)
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of vehicles to list (defaults to --predictor.vehicle-limit).")

	return cmd
}

func newVehicleCommand(opts *options.CtlOptions) *cobra.Command {
	var modelName string

	cmd := &cobra.Command{
		Use:   "vehicle <id>",
		Short: "Show one vehicle with its risk drivers and service history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid vehicle id %q: %w", args[0], err)
			}
			detail, err := newClient(opts).GetVehicleDetail(cmd.Context(), id, modelOrDefault(opts, modelName))
			if err != nil {
				return err
			}

			loc, err := opts.ViewOptions.Location()
			if err != nil {
				return err
			}
			return printVehicle(cmd.OutOrStdout(), detail, format.NewDateFormatter(opts.ViewOptions.Locale, loc))
		},
	}
	modelFlag(cmd, &modelName)

	return cmd
}

func newTable() *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = maxColWidth
	table.Wrap = true
	return table
}

func printModels(w io.Writer, models []model.ModelInfo) error {
	table := newTable()
	table.AddRow("NAME", "TYPE", "AUC", "DESCRIPTION")
	for _, m := range models {
		table.AddRow(m.Name, m.ModelType, format.FormatAUC(m.AUC), m.Description)
	}
	_, err := fmt.Fprintln(w, table)
	return err
}

func printVehicles(w io.Writer, vehicles []model.VehicleSummary) error {
	if len(vehicles) == 0 {
		_, err := fmt.Fprintln(w, "No vehicles found.")
		return err
	}

	table := newTable()
	table.AddRow("ID", "VIN", "MODEL", "YEAR", "MILEAGE", "REGION", "RISK", "BUCKET")
	for _, v := range vehicles {
		table.AddRow(v.ID, v.VIN, v.Model, v.ModelYear, format.FormatMileage(v.Mileage), v.Region,
			format.RiskPercent(v.RiskScore), v.RiskBucket)
	}
	_, err := fmt.Fprintln(w, table)
	return err
}

func printVehicle(w io.Writer, d *model.VehicleDetail, dates *format.DateFormatter) error {
	s := d.Summary

	summary := newTable()
	summary.AddRow("VIN:", s.VIN)
	summary.AddRow("Model:", fmt.Sprintf("%s %d", s.Model, s.ModelYear))
	summary.AddRow("Dealership:", s.DealershipName+" · "+s.Region)
	summary.AddRow("Risk:", fmt.Sprintf("%s (%s)", s.RiskBucket, format.RiskPercent(s.RiskScore)))
	for _, drv := range view.Drivers(s) {
		summary.AddRow(drv.Label+":", drv.Value)
	}
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if len(d.ServiceHistory) == 0 {
		_, err := fmt.Fprintln(w, "No service history recorded for this vehicle in the PoC dataset.")
		return err
	}

	history := newTable()
	history.AddRow("DATE", "COMPONENT", "FAULT", "MILEAGE", "ACTION", "COST", "PAYER")
	for _, r := range d.ServiceHistory {
		payer := "Customer pay"
		if r.IsWarrantyClaim {
			payer = "Warranty"
		}
		history.AddRow(dates.Format(r.ServiceDate), r.Component, r.FaultCode, format.FormatMileage(r.Mileage),
			r.Action, format.FormatCurrency(r.Cost), payer)
	}
	_, err := fmt.Fprintln(w, history)
	return err
}
