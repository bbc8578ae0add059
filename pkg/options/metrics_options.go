package options

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

var _ IOptions = (*MetricsOptions)(nil)

// MetricsOptions controls the Prometheus endpoint on the dashboard server.
type MetricsOptions struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

func NewMetricsOptions() *MetricsOptions {
	return &MetricsOptions{
		Enabled: true,
		Path:    "/metrics",
	}
}

func (o *MetricsOptions) Validate() []error {
	if o == nil || !o.Enabled {
		return nil
	}

	if !strings.HasPrefix(o.Path, "/") {
		return []error{fmt.Errorf("--metrics.path must start with '/', got %q", o.Path)}
	}

	return nil
}

func (o *MetricsOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.BoolVar(&o.Enabled, join(prefixes, "metrics.enabled"), o.Enabled, "Expose Prometheus metrics.")
	fs.StringVar(&o.Path, join(prefixes, "metrics.path"), o.Path, "HTTP path of the metrics endpoint.")
}
