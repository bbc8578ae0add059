package options

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*PredictorOptions)(nil)

// PredictorOptions configures the client for the external scoring service.
type PredictorOptions struct {
	// BaseURL of the scoring service.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout per request. Zero means no client-side timeout.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// DefaultModel is selected until the model catalog says otherwise.
	DefaultModel string `json:"default-model" mapstructure:"default-model"`

	// VehicleLimit is the fixed page size of the vehicle list.
	VehicleLimit int `json:"vehicle-limit" mapstructure:"vehicle-limit"`
}

// NewPredictorOptions creates a PredictorOptions object with default parameters.
func NewPredictorOptions() *PredictorOptions {
	return &PredictorOptions{
		BaseURL:      "http://localhost:8000",
		DefaultModel: "decision_tree",
		VehicleLimit: 100,
	}
}

// Validate checks the scoring service settings.
func (o *PredictorOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	u, err := url.Parse(o.BaseURL)
	if err != nil {
		errors = append(errors, fmt.Errorf("--predictor.base-url: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, fmt.Errorf("--predictor.base-url must be an http(s) URL, got %q", o.BaseURL))
	}
	if o.Timeout < 0 {
		errors = append(errors, fmt.Errorf("--predictor.timeout must not be negative"))
	}
	if o.VehicleLimit < 1 || o.VehicleLimit > 500 {
		errors = append(errors, fmt.Errorf("--predictor.vehicle-limit must be within [1, 500], got %d", o.VehicleLimit))
	}

	return errors
}

// AddFlags adds flags for PredictorOptions to the specified FlagSet.
func (o *PredictorOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, join(prefixes, "predictor.base-url"), o.BaseURL, "Base URL of the warranty risk scoring service.")
	fs.DurationVar(&o.Timeout, join(prefixes, "predictor.timeout"), o.Timeout, "Per-request timeout against the scoring service (0 disables it).")
	fs.StringVar(&o.DefaultModel, join(prefixes, "predictor.default-model"), o.DefaultModel, "Model selected before the catalog is known.")
	fs.IntVar(&o.VehicleLimit, join(prefixes, "predictor.vehicle-limit"), o.VehicleLimit, "Number of vehicles requested per list.")
}
