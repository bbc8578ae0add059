package dashboard

import "errors"

var (
	// ErrUnknownVehicle rejects a selection whose id is not in the loaded list.
	ErrUnknownVehicle = errors.New("vehicle is not in the current list")
	// ErrUnknownModel rejects a model that is not in the loaded catalog.
	ErrUnknownModel = errors.New("model is not in the catalog")
	// ErrStale marks a completion superseded by a newer request of its kind.
	ErrStale = errors.New("stale completion")
	// ErrClosed is returned by a Controller after Close.
	ErrClosed = errors.New("dashboard is closed")
)
