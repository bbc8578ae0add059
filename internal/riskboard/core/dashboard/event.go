package dashboard

import (
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// Event is an input to Reduce: a user action or a fetch completion.
type Event interface {
	eventName() string
}

// Mounted (re)initializes the dashboard and loads the model catalog.
type Mounted struct{}

// ModelSelected is the model selector changing.
type ModelSelected struct {
	Name string
}

// VehicleSelected is a vehicle row being activated.
type VehicleSelected struct {
	ID int64
}

type ModelsLoaded struct {
	Token  uint64
	Models []model.ModelInfo
}

type ModelsFailed struct {
	Token uint64
	Err   error
}

type VehiclesLoaded struct {
	Token    uint64
	Vehicles []model.VehicleSummary
}

type VehiclesFailed struct {
	Token uint64
	Err   error
}

type DetailLoaded struct {
	Token  uint64
	Detail *model.VehicleDetail
}

type DetailFailed struct {
	Token uint64
	Err   error
}

func (Mounted) eventName() string         { return "mounted" }
func (ModelSelected) eventName() string   { return "model_selected" }
func (VehicleSelected) eventName() string { return "vehicle_selected" }
func (ModelsLoaded) eventName() string    { return "models_loaded" }
func (ModelsFailed) eventName() string    { return "models_failed" }
func (VehiclesLoaded) eventName() string  { return "vehicles_loaded" }
func (VehiclesFailed) eventName() string  { return "vehicles_failed" }
func (DetailLoaded) eventName() string    { return "detail_loaded" }
func (DetailFailed) eventName() string    { return "detail_failed" }

// Command is a side effect requested by Reduce. The Controller executes it
// and feeds the outcome back as an Event carrying the same token.
type Command interface {
	commandKind() string
}

type FetchModels struct {
	Token uint64
}

type FetchVehicles struct {
	Token uint64
	Model string
	Limit int
}

type FetchDetail struct {
	Token     uint64
	VehicleID int64
	Model     string
}

// PublishHighRisk forwards the high-risk part of a fresh vehicle list to the
// alert feed. It has no completion event.
type PublishHighRisk struct {
	Model    string
	Vehicles []model.VehicleSummary
}

func (FetchModels) commandKind() string     { return KindModels }
func (FetchVehicles) commandKind() string   { return KindVehicles }
func (FetchDetail) commandKind() string     { return KindDetail }
func (PublishHighRisk) commandKind() string { return "alerts" }

// Fetch kinds, used as metric and log labels.
const (
	KindModels   = "models"
	KindVehicles = "vehicles"
	KindDetail   = "detail"
)
