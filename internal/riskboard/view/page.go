package view

import (
	"io"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/dashboard"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/format"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// Title is the page heading.
const Title = "Predictive Warranty Risk (OEM PoC)"

// Links are the action targets embedded in the page.
type Links struct {
	SelectModel   string
	ToggleTheme   string
	Reload        string
	SelectVehicle func(id int64) string
}

// PageProps drives the full page.
type PageProps struct {
	Theme         model.Theme
	Models        []model.ModelInfo
	SelectedModel string
	Error         string

	// RefreshSeconds adds a meta refresh while fetches are outstanding.
	RefreshSeconds int

	Links  Links
	List   VehicleListProps
	Detail VehicleDetailProps
}

// NewPageProps derives page props from a dashboard snapshot.
func NewPageProps(s dashboard.State, theme model.Theme, links Links) PageProps {
	p := PageProps{
		Theme:         theme,
		Models:        s.Models,
		SelectedModel: s.SelectedModel,
		Error:         s.Error,
		Links:         links,
		List: VehicleListProps{
			Vehicles:          s.Vehicles,
			SelectedVehicleID: s.SelectedVehicleID,
			Loading:           s.LoadingVehicles(),
			OnSelectVehicle:   links.SelectVehicle,
		},
		Detail: VehicleDetailProps{
			Detail:            s.Detail,
			Loading:           s.LoadingDetail(),
			SelectedVehicleID: s.SelectedVehicleID,
		},
	}
	if s.Busy() {
		p.RefreshSeconds = 1
	}
	return p
}

type pageView struct {
	Title          string
	Theme          string
	NextTheme      string
	RefreshSeconds int
	Links          Links
	Options        []modelOption
	Meta           *modelMeta
	Error          string
	List           vehicleListView
	Detail         vehicleDetailView
}

type modelOption struct {
	Name     string
	Label    string
	Selected bool
}

type modelMeta struct {
	AUC         string
	Description string
}

// ModelLabel is the selector text of a model: "decision_tree (tree)".
func ModelLabel(m model.ModelInfo) string {
	return m.Name + " (" + m.ModelType + ")"
}

func (r *Renderer) buildPage(p PageProps) pageView {
	theme := p.Theme
	if theme == "" {
		theme = model.ThemeLight
	}

	v := pageView{
		Title:          Title,
		Theme:          string(theme),
		NextTheme:      string(theme.Toggle()),
		RefreshSeconds: p.RefreshSeconds,
		Links:          p.Links,
		Error:          p.Error,
		List:           buildVehicleList(p.List),
		Detail:         r.buildVehicleDetail(p.Detail),
	}

	for _, m := range p.Models {
		v.Options = append(v.Options, modelOption{
			Name:     m.Name,
			Label:    ModelLabel(m),
			Selected: m.Name == p.SelectedModel,
		})
	}
	if m, ok := model.FindModel(p.Models, p.SelectedModel); ok {
		v.Meta = &modelMeta{AUC: format.FormatAUC(m.AUC), Description: m.Description}
	}
	return v
}

// Page renders the whole dashboard.
func (r *Renderer) Page(w io.Writer, p PageProps) error {
	return r.execute(w, "page", r.buildPage(p))
}
