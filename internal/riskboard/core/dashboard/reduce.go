package dashboard

import (
	"fmt"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// DefaultVehicleLimit is the page size requested for vehicle lists.
const DefaultVehicleLimit = 100

// Machine holds the static inputs of the transition function.
type Machine struct {
	// DefaultModel is selected when the catalog contains it (or is empty).
	DefaultModel string
	// VehicleLimit is sent as the list page size.
	VehicleLimit int
}

// Initial returns the state before the first Mounted event.
func (m Machine) Initial() State {
	return State{
		SelectedModel: m.DefaultModel,
		ModelsPhase:   PhaseIdle,
		VehiclesPhase: PhaseIdle,
		DetailPhase:   PhaseIdle,
	}
}

// Reduce applies e to s and returns the next state plus the commands to run.
// When the event is rejected the returned state is s and the error says why;
// ErrStale means the event is a superseded completion.
func (m Machine) Reduce(s State, e Event) (State, []Command, error) {
	switch ev := e.(type) {
	case Mounted:
		return m.mount(s)
	case ModelsLoaded:
		return m.modelsDone(s, ev.Token, ev.Models, nil)
	case ModelsFailed:
		return m.modelsDone(s, ev.Token, nil, ev.Err)
	case ModelSelected:
		return m.selectModel(s, ev.Name)
	case VehiclesLoaded:
		return m.vehiclesDone(s, ev.Token, ev.Vehicles, nil)
	case VehiclesFailed:
		return m.vehiclesDone(s, ev.Token, nil, ev.Err)
	case VehicleSelected:
		return m.selectVehicle(s, ev.ID)
	case DetailLoaded:
		return m.detailDone(s, ev.Token, ev.Detail, nil)
	case DetailFailed:
		return m.detailDone(s, ev.Token, nil, ev.Err)
	default:
		return s, nil, fmt.Errorf("unhandled event %T", e)
	}
}

// mount starts over. Tokens keep counting so that anything still in flight
// from before is discarded.
func (m Machine) mount(s State) (State, []Command, error) {
	next := m.Initial()
	next.tokens = tokens{
		models:   s.tokens.models + 1,
		vehicles: s.tokens.vehicles + 1,
		detail:   s.tokens.detail + 1,
	}
	next.ModelsPhase = next.ModelsPhase.mustNext(phaseBegin)

	return next, []Command{FetchModels{Token: next.tokens.models}}, nil
}

func (m Machine) modelsDone(s State, token uint64, models []model.ModelInfo, cause error) (State, []Command, error) {
	event := phaseSucceed
	if cause != nil {
		event = phaseFail
	}
	phase, err := s.ModelsPhase.next(event, token, s.tokens.models)
	if err != nil {
		return s, nil, err
	}
	s.ModelsPhase = phase

	if cause != nil {
		s.Error = MsgModelsFailed
		return s, nil, nil
	}

	s.Models = models
	if s.Models == nil {
		s.Models = []model.ModelInfo{}
	}

	resolved := s.SelectedModel
	if len(s.Models) > 0 {
		if _, ok := model.FindModel(s.Models, resolved); !ok {
			resolved = s.Models[0].Name
		}
	}

	return m.selectModel(s, resolved)
}

func (m Machine) selectModel(s State, name string) (State, []Command, error) {
	// Once the catalog is known the selection must name one of its entries.
	if len(s.Models) > 0 {
		if _, ok := model.FindModel(s.Models, name); !ok {
			return s, nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
		}
	}

	s.SelectedModel = name
	if name == "" {
		return s, nil, nil
	}

	s.tokens.vehicles++
	s.VehiclesPhase = s.VehiclesPhase.mustNext(phaseBegin)
	s.Error = ""
	s = clearSelection(s)

	return s, []Command{FetchVehicles{
		Token: s.tokens.vehicles,
		Model: name,
		Limit: m.limit(),
	}}, nil
}

func (m Machine) vehiclesDone(s State, token uint64, vehicles []model.VehicleSummary, cause error) (State, []Command, error) {
	event := phaseSucceed
	if cause != nil {
		event = phaseFail
	}
	phase, err := s.VehiclesPhase.next(event, token, s.tokens.vehicles)
	if err != nil {
		return s, nil, err
	}
	s.VehiclesPhase = phase
	s = clearSelection(s)

	if cause != nil {
		// The previous list stays on screen next to the banner.
		s.Error = MsgVehiclesFailed
		return s, nil, nil
	}

	s.Vehicles = vehicles
	if s.Vehicles == nil {
		s.Vehicles = []model.VehicleSummary{}
	}

	var high []model.VehicleSummary
	for _, v := range s.Vehicles {
		if v.RiskBucket.IsHigh() {
			high = append(high, v)
		}
	}
	if len(high) == 0 {
		return s, nil, nil
	}

	return s, []Command{PublishHighRisk{Model: s.SelectedModel, Vehicles: high}}, nil
}

func (m Machine) selectVehicle(s State, id int64) (State, []Command, error) {
	if !s.HasVehicle(id) {
		return s, nil, fmt.Errorf("%w: %d", ErrUnknownVehicle, id)
	}
	if s.isSelected(id) && (s.DetailPhase == PhaseLoading || s.DetailPhase == PhaseLoaded) {
		return s, nil, nil
	}

	s.SelectedVehicleID = &id
	s.tokens.detail++
	s.DetailPhase = s.DetailPhase.mustNext(phaseBegin)
	s.Error = ""

	return s, []Command{FetchDetail{
		Token:     s.tokens.detail,
		VehicleID: id,
		Model:     s.SelectedModel,
	}}, nil
}

func (m Machine) detailDone(s State, token uint64, detail *model.VehicleDetail, cause error) (State, []Command, error) {
	event := phaseSucceed
	if cause != nil {
		event = phaseFail
	}
	phase, err := s.DetailPhase.next(event, token, s.tokens.detail)
	if err != nil {
		return s, nil, err
	}
	s.DetailPhase = phase

	if cause != nil {
		s.Error = MsgDetailFailed
		return s, nil, nil
	}

	s.Detail = detail
	return s, nil, nil
}

func (m Machine) limit() int {
	if m.VehicleLimit <= 0 {
		return DefaultVehicleLimit
	}
	return m.VehicleLimit
}

// clearSelection drops the selected vehicle and its detail and invalidates
// any detail fetch still in flight.
func clearSelection(s State) State {
	s.SelectedVehicleID = nil
	s.Detail = nil
	s.tokens.detail++
	s.DetailPhase = s.DetailPhase.mustNext(phaseReset)
	return s
}
