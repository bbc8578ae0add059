package core

import (
	"context"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// Predictor is the read-only contract of the external scoring service.
// It is implemented by the HTTP adapter in the predictor package.
type Predictor interface {
	// ListModels returns the model catalog.
	ListModels(ctx context.Context) ([]model.ModelInfo, error)

	// ListVehicles returns up to limit vehicles scored by the named model.
	ListVehicles(ctx context.Context, modelName string, limit int) ([]model.VehicleSummary, error)

	// GetVehicleDetail returns one vehicle and its service history scored by the named model.
	GetVehicleDetail(ctx context.Context, id int64, modelName string) (*model.VehicleDetail, error)
}

// ThemeStore persists the theme preference of a client.
type ThemeStore interface {
	// Load returns the stored theme, or found=false when nothing is stored.
	Load(ctx context.Context, clientID string) (theme model.Theme, found bool, err error)

	// Save stores the theme for the client.
	Save(ctx context.Context, clientID string, theme model.Theme) error
}

// AlertNotifier publishes high-risk vehicles to downstream consumers.
type AlertNotifier interface {
	// NotifyHighRisk is called with the high-risk subset of a freshly loaded vehicle list.
	NotifyHighRisk(ctx context.Context, modelName string, vehicles []model.VehicleSummary) error
}
