package view

import (
	"io"
	"strconv"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/format"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// VehicleDetailProps drives the detail panel.
type VehicleDetailProps struct {
	Detail            *model.VehicleDetail
	Loading           bool
	SelectedVehicleID *int64
}

// Driver is one explanatory feature card.
type Driver struct {
	Icon  string
	Label string
	Value string
	Hint  string
}

type vehicleDetailView struct {
	Placeholder bool
	Loading     bool
	Detail      *detailView
}

type detailView struct {
	Percent      string
	BadgeClass   string
	Bucket       string
	VIN          string
	ModelYear    string
	DealerRegion string
	Drivers      []Driver
	Services     []serviceRow
}

type serviceRow struct {
	Date      string
	Component string
	FaultCode string
	Mileage   string
	Action    string
	Cost      string
	Warranty  bool
}

// Drivers returns the six driver cards of a vehicle in display order.
func Drivers(s model.VehicleSummary) []Driver {
	return []Driver{
		{Icon: "🏎️", Label: "Mileage", Value: format.FormatMileage(s.Mileage),
			Hint: "High mileage tends to increase warranty risk."},
		{Icon: "⏱️", Label: "Age", Value: format.FormatDecimal(s.AgeMonths, 1) + " months",
			Hint: "Older vehicles naturally carry more failure risk."},
		{Icon: "🔥", Label: "Engine temp", Value: format.FormatDecimal(s.AvgEngineTemp, 1) + "°C",
			Hint: "Elevated operating temperatures are an early warning sign."},
		{Icon: "📈", Label: "Vibration index", Value: format.FormatDecimal(s.AvgVibration, 2),
			Hint: "Higher vibration levels can indicate drivetrain wear."},
		{Icon: "🛠️", Label: "Services (12m)", Value: strconv.Itoa(s.ServicesLast12m),
			Hint: "Frequent visits may signal unstable components."},
		{Icon: "🏭", Label: "Supplier / Plant", Value: s.SupplierCode + " · " + s.PlantCode,
			Hint: "OEMs can act on supplier/plant-level patterns."},
	}
}

// buildVehicleDetail picks the first applicable state: placeholder, loading,
// then the detail itself.
func (r *Renderer) buildVehicleDetail(p VehicleDetailProps) vehicleDetailView {
	if p.SelectedVehicleID == nil {
		return vehicleDetailView{Placeholder: true}
	}
	if p.Loading {
		return vehicleDetailView{Loading: true}
	}
	if p.Detail == nil {
		return vehicleDetailView{}
	}

	s := p.Detail.Summary
	d := &detailView{
		Percent:      format.RiskPercent(s.RiskScore),
		BadgeClass:   format.RiskBadgeClass(s.RiskBucket),
		Bucket:       string(s.RiskBucket),
		VIN:          s.VIN,
		ModelYear:    s.Model + " · " + strconv.Itoa(s.ModelYear),
		DealerRegion: s.DealershipName + " · " + s.Region,
		Drivers:      Drivers(s),
	}
	for _, rec := range p.Detail.ServiceHistory {
		d.Services = append(d.Services, serviceRow{
			Date:      r.dates.Format(rec.ServiceDate),
			Component: rec.Component,
			FaultCode: rec.FaultCode,
			Mileage:   format.FormatMileage(rec.Mileage),
			Action:    rec.Action,
			Cost:      format.FormatCurrency(rec.Cost),
			Warranty:  rec.IsWarrantyClaim,
		})
	}
	return vehicleDetailView{Detail: d}
}

// VehicleDetail renders the detail panel.
func (r *Renderer) VehicleDetail(w io.Writer, p VehicleDetailProps) error {
	return r.execute(w, "vehicle_detail", r.buildVehicleDetail(p))
}
