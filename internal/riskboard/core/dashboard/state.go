package dashboard

import (
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// Banner messages, one per fetch kind.
const (
	MsgModelsFailed   = "Failed to load models."
	MsgVehiclesFailed = "Failed to load vehicles."
	MsgDetailFailed   = "Failed to load vehicle details."
)

// State is a snapshot of everything the dashboard shows. A State is never
// mutated after Reduce returns it; slices are replaced, not edited.
type State struct {
	Models        []model.ModelInfo `json:"models"`
	SelectedModel string            `json:"selectedModel"`

	Vehicles          []model.VehicleSummary `json:"vehicles"`
	SelectedVehicleID *int64                 `json:"selectedVehicleId"`
	Detail            *model.VehicleDetail   `json:"selectedVehicleDetail"`

	ModelsPhase   Phase `json:"modelsPhase"`
	VehiclesPhase Phase `json:"vehiclesPhase"`
	DetailPhase   Phase `json:"detailPhase"`

	// Error is the banner text of the most recent failure, empty when none.
	Error string `json:"error,omitempty"`

	tokens tokens
}

// tokens holds the latest request token issued per fetch kind. Completions
// carrying an older token are stale.
type tokens struct {
	models   uint64
	vehicles uint64
	detail   uint64
}

// LoadingModels reports whether the model catalog is being fetched.
func (s State) LoadingModels() bool { return s.ModelsPhase == PhaseLoading }

// LoadingVehicles reports whether a vehicle list is being fetched.
func (s State) LoadingVehicles() bool { return s.VehiclesPhase == PhaseLoading }

// LoadingDetail reports whether a vehicle detail is being fetched.
func (s State) LoadingDetail() bool { return s.DetailPhase == PhaseLoading }

// Busy reports whether any fetch is outstanding.
func (s State) Busy() bool {
	return s.LoadingModels() || s.LoadingVehicles() || s.LoadingDetail()
}

// CurrentModel returns the catalog entry of the selected model.
func (s State) CurrentModel() (model.ModelInfo, bool) {
	return model.FindModel(s.Models, s.SelectedModel)
}

// HasVehicle reports whether id is in the loaded vehicle list.
func (s State) HasVehicle(id int64) bool {
	for _, v := range s.Vehicles {
		if v.ID == id {
			return true
		}
	}
	return false
}

func (s State) isSelected(id int64) bool {
	return s.SelectedVehicleID != nil && *s.SelectedVehicleID == id
}
