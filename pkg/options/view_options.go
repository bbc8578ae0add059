package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*ViewOptions)(nil)

// ViewOptions controls how values are localized on the dashboard.
type ViewOptions struct {
	// Locale used for service dates, e.g. "en-US" or "de".
	Locale string `json:"locale" mapstructure:"locale"`

	// TimeZone applied to timestamps that carry a zone. Calendar dates are never shifted.
	TimeZone string `json:"time-zone" mapstructure:"time-zone"`
}

func NewViewOptions() *ViewOptions {
	return &ViewOptions{
		Locale:   "en-US",
		TimeZone: "UTC",
	}
}

func (o *ViewOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}
	if _, err := o.Location(); err != nil {
		errors = append(errors, fmt.Errorf("--view.time-zone: %w", err))
	}

	return errors
}

// Location resolves TimeZone. An empty value means UTC.
func (o *ViewOptions) Location() (*time.Location, error) {
	if o.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(o.TimeZone)
}

func (o *ViewOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Locale, join(prefixes, "view.locale"), o.Locale, "Locale used to format service dates.")
	fs.StringVar(&o.TimeZone, join(prefixes, "view.time-zone"), o.TimeZone, "IANA time zone for timestamps (e.g. Europe/Berlin).")
}
