package view

import (
	"io"
	"strconv"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/format"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// VehicleListColumns is the number of table columns, also spanned by the
// empty-state row.
const VehicleListColumns = 7

// VehicleListProps drives the vehicle list.
type VehicleListProps struct {
	Vehicles          []model.VehicleSummary
	SelectedVehicleID *int64
	Loading           bool

	// OnSelectVehicle returns the action target that selects the vehicle.
	OnSelectVehicle func(id int64) string
}

type vehicleListView struct {
	Loading bool
	Columns int
	Rows    []vehicleRow
}

type vehicleRow struct {
	ID         int64
	Action     string
	Selected   bool
	VIN        string
	Model      string
	Year       string
	Mileage    string
	Region     string
	Supplier   string
	BadgeClass string
	Risk       string
}

func buildVehicleList(p VehicleListProps) vehicleListView {
	v := vehicleListView{Loading: p.Loading, Columns: VehicleListColumns}
	if p.Loading {
		return v
	}

	v.Rows = make([]vehicleRow, 0, len(p.Vehicles))
	for _, veh := range p.Vehicles {
		row := vehicleRow{
			ID:         veh.ID,
			Selected:   p.SelectedVehicleID != nil && *p.SelectedVehicleID == veh.ID,
			VIN:        veh.VIN,
			Model:      veh.Model,
			Year:       strconv.Itoa(veh.ModelYear),
			Mileage:    format.FormatMileage(veh.Mileage),
			Region:     veh.Region,
			Supplier:   veh.SupplierCode,
			BadgeClass: format.RiskBadgeClass(veh.RiskBucket),
			Risk:       string(veh.RiskBucket) + " (" + format.RiskPercent(veh.RiskScore) + ")",
		}
		if p.OnSelectVehicle != nil {
			row.Action = p.OnSelectVehicle(veh.ID)
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// VehicleList renders the vehicle list panel.
func (r *Renderer) VehicleList(w io.Writer, p VehicleListProps) error {
	return r.execute(w, "vehicle_list", buildVehicleList(p))
}
