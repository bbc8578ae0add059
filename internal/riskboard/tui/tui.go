package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/dashboard"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/format"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
	"github.com/autopeer-io/riskboard/internal/riskboard/view"
	"github.com/autopeer-io/riskboard/pkg/log"
)

const helpLine = "[Enter - Details] [m/M - Next/Prev model] [r - Reload] [q - Quit]"

var vehicleHeaders = []string{"ID", "VIN", "Model / Year", "Mileage", "Region", "Risk", "Bucket"}

// Displayer renders one dashboard controller in the terminal.
type Displayer struct {
	app        *tview.Application
	controller *dashboard.Controller
	dates      *format.DateFormatter

	// UI elements cached for updates
	statusText   *tview.TextView
	errorText    *tview.TextView
	helpText     *tview.TextView
	vehicleTable *tview.Table
	detailText   *tview.TextView
}

// New builds the widgets. dates may be nil for en-US.
func New(c *dashboard.Controller, dates *format.DateFormatter) *Displayer {
	if dates == nil {
		dates = format.NewDateFormatter("en-US", time.UTC)
	}

	d := &Displayer{
		app:        tview.NewApplication(),
		controller: c,
		dates:      dates,
	}
	d.build()

	return d
}

// Run mounts the dashboard and blocks until the user quits or ctx is done.
func (d *Displayer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q', 'Q':
			d.app.Stop()
			return nil
		case 'r':
			d.dispatch(dashboard.Mounted{})
			return nil
		case 'm':
			d.cycleModel(1)
			return nil
		case 'M':
			d.cycleModel(-1)
			return nil
		}
		return event
	})

	d.render(d.controller.Snapshot())
	go d.watch(ctx)
	go func() {
		<-ctx.Done()
		d.app.Stop()
	}()

	d.dispatch(dashboard.Mounted{})

	return d.app.Run()
}

func (d *Displayer) build() {
	title := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText(view.Title)
	d.statusText = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true)
	d.errorText = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true)
	d.helpText = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText(helpLine)

	headerFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	headerFlex.AddItem(title, 1, 0, false)
	headerFlex.AddItem(d.statusText, 1, 0, false)
	headerFlex.AddItem(d.errorText, 1, 0, false)
	headerFlex.AddItem(d.helpText, 1, 0, false)

	d.vehicleTable = tview.NewTable().SetBorders(false).SetSelectable(true, false).SetFixed(1, 0)
	d.vehicleTable.SetBorder(true).SetTitle(" Vehicles ")
	d.vehicleTable.SetSelectedFunc(func(row, _ int) {
		if id, ok := d.vehicleTable.GetCell(row, 0).GetReference().(int64); ok {
			d.dispatch(dashboard.VehicleSelected{ID: id})
		}
	})

	d.detailText = tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetScrollable(true)
	d.detailText.SetBorder(true).SetTitle(" Vehicle ")

	body := tview.NewFlex().
		AddItem(d.vehicleTable, 0, 3, true).
		AddItem(d.detailText, 0, 2, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(headerFlex, 4, 0, false)
	mainFlex.AddItem(body, 0, 1, true)

	d.app.SetRoot(mainFlex, true)
}

// watch redraws after every controller change.
func (d *Displayer) watch(ctx context.Context) {
	for {
		changed := d.controller.Changed()
		select {
		case <-ctx.Done():
			return
		case <-changed:
			s := d.controller.Snapshot()
			d.app.QueueUpdateDraw(func() { d.render(s) })
		}
	}
}

func (d *Displayer) dispatch(e dashboard.Event) {
	if err := d.controller.Dispatch(e); err != nil {
		log.Debug("Event rejected", "error", err)
	}
}

func (d *Displayer) cycleModel(step int) {
	s := d.controller.Snapshot()
	if name, ok := nextModel(s.Models, s.SelectedModel, step); ok {
		d.dispatch(dashboard.ModelSelected{Name: name})
	}
}

// nextModel returns the catalog entry step positions away from current,
// wrapping around. An unknown current name starts from the first entry.
func nextModel(models []model.ModelInfo, current string, step int) (string, bool) {
	n := len(models)
	if n == 0 {
		return "", false
	}

	idx := -1
	for i, m := range models {
		if m.Name == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models[0].Name, true
	}

	next := ((idx+step)%n + n) % n
	if next == idx {
		return "", false
	}
	return models[next].Name, true
}

func (d *Displayer) render(s dashboard.State) {
	d.statusText.SetText(statusLine(s))

	if s.Error != "" {
		d.errorText.SetText("[red]" + tview.Escape(s.Error) + "[-]")
	} else {
		d.errorText.SetText("")
	}

	d.renderVehicles(s)
	d.detailText.SetText(d.detailBody(s))
}

func statusLine(s dashboard.State) string {
	parts := []string{}

	switch {
	case s.LoadingModels():
		parts = append(parts, "Model: [yellow]loading models…[-]")
	case s.SelectedModel == "":
		parts = append(parts, "Model: -")
	default:
		label := s.SelectedModel
		if m, ok := s.CurrentModel(); ok {
			label = view.ModelLabel(m) + " · AUC " + format.FormatAUC(m.AUC)
		}
		parts = append(parts, "Model: "+tview.Escape(label))
	}

	if s.LoadingVehicles() {
		parts = append(parts, "[yellow]loading vehicles…[-]")
	} else {
		parts = append(parts, fmt.Sprintf("%d vehicles", len(s.Vehicles)))
	}

	return strings.Join(parts, "  |  ")
}

func (d *Displayer) renderVehicles(s dashboard.State) {
	tbl := d.vehicleTable
	tbl.Clear()

	for col, h := range vehicleHeaders {
		tbl.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold).
			SetExpansion(1))
	}

	// A reload hides the previous model's rows, matching the web list.
	if s.LoadingVehicles() {
		tbl.SetCell(1, 0, tview.NewTableCell("Loading vehicles…").SetSelectable(false))
		return
	}
	if len(s.Vehicles) == 0 {
		tbl.SetCell(1, 0, tview.NewTableCell("No vehicles found.").SetSelectable(false))
		return
	}

	selectedRow := 0
	for i, v := range s.Vehicles {
		row := i + 1
		color := bucketColor(v.RiskBucket)
		tbl.SetCell(row, 0, tview.NewTableCell(strconv.FormatInt(v.ID, 10)).SetReference(v.ID))
		tbl.SetCell(row, 1, tview.NewTableCell(v.VIN))
		tbl.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%s %d", v.Model, v.ModelYear)))
		tbl.SetCell(row, 3, tview.NewTableCell(format.FormatMileage(v.Mileage)).SetAlign(tview.AlignRight))
		tbl.SetCell(row, 4, tview.NewTableCell(v.Region))
		tbl.SetCell(row, 5, tview.NewTableCell(format.RiskPercent(v.RiskScore)).SetAlign(tview.AlignRight).SetTextColor(color))
		tbl.SetCell(row, 6, tview.NewTableCell(string(v.RiskBucket)).SetTextColor(color))

		if s.SelectedVehicleID != nil && *s.SelectedVehicleID == v.ID {
			selectedRow = row
		}
	}

	if selectedRow > 0 {
		tbl.Select(selectedRow, 0)
	}
}

func (d *Displayer) detailBody(s dashboard.State) string {
	if s.SelectedVehicleID == nil {
		return "Select a vehicle from the list to see its risk drivers and service history."
	}
	if s.LoadingDetail() {
		return "[yellow]Loading vehicle details…[-]"
	}
	if s.Detail == nil {
		return "No details available."
	}

	v := s.Detail.Summary
	tag := bucketTag(v.RiskBucket)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s]%s risk  %s[-]\n", tag, tview.Escape(string(v.RiskBucket)), format.RiskPercent(v.RiskScore))
	fmt.Fprintf(&b, "VIN %s\n", tview.Escape(v.VIN))
	fmt.Fprintf(&b, "%s · %d\n", tview.Escape(v.Model), v.ModelYear)
	fmt.Fprintf(&b, "%s · %s\n\n", tview.Escape(v.DealershipName), tview.Escape(v.Region))

	b.WriteString("[::b]Risk drivers[::-]\n")
	for _, drv := range view.Drivers(v) {
		fmt.Fprintf(&b, "%s %s: %s\n", drv.Icon, drv.Label, tview.Escape(drv.Value))
	}

	b.WriteString("\n[::b]Service history[::-]\n")
	if len(s.Detail.ServiceHistory) == 0 {
		b.WriteString("No service history recorded for this vehicle in the PoC dataset.\n")
		return b.String()
	}
	for _, r := range s.Detail.ServiceHistory {
		pay := "Customer pay"
		if r.IsWarrantyClaim {
			pay = "Warranty"
		}
		fmt.Fprintf(&b, "%s  %s (%s)  %s  %s  %s  %s\n",
			d.dates.Format(r.ServiceDate),
			tview.Escape(r.Component),
			tview.Escape(r.FaultCode),
			format.FormatMileage(r.Mileage),
			tview.Escape(r.Action),
			format.FormatCurrency(r.Cost),
			pay,
		)
	}

	return b.String()
}

func bucketColor(b model.RiskBucket) tcell.Color {
	switch b {
	case model.RiskBucketHigh:
		return tcell.ColorRed
	case model.RiskBucketMedium:
		return tcell.ColorYellow
	default:
		return tcell.ColorGreen
	}
}

func bucketTag(b model.RiskBucket) string {
	switch b {
	case model.RiskBucketHigh:
		return "red"
	case model.RiskBucketMedium:
		return "yellow"
	default:
		return "green"
	}
}
