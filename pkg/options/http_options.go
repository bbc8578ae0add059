package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*HttpOptions)(nil)

// HttpOptions contains configuration items related to the dashboard HTTP server.
type HttpOptions struct {
	// Network with server network.
	Network string `json:"network" mapstructure:"network"`

	// Address with server address.
	Addr string `json:"addr" mapstructure:"addr"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`

	// RenderWait is how long a page request waits for in-flight fetches
	// before rendering the loading state instead.
	RenderWait time.Duration `json:"render-wait" mapstructure:"render-wait"`

	// SessionIdleTTL drops dashboard sessions that saw no request for this long.
	SessionIdleTTL time.Duration `json:"session-idle-ttl" mapstructure:"session-idle-ttl"`
}

// NewHttpOptions creates a HttpOptions object with default parameters.
func NewHttpOptions() *HttpOptions {
	return &HttpOptions{
		Network:         "tcp",
		Addr:            "0.0.0.0:5173",
		ShutdownTimeout: 5 * time.Second,
		RenderWait:      2 * time.Second,
		SessionIdleTTL:  30 * time.Minute,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *HttpOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if err := ValidateAddress(o.Addr); err != nil {
		errors = append(errors, err)
	}
	if o.RenderWait < 0 {
		errors = append(errors, fmt.Errorf("--http.render-wait must not be negative"))
	}
	if o.SessionIdleTTL <= 0 {
		errors = append(errors, fmt.Errorf("--http.session-idle-ttl must be positive"))
	}

	return errors
}

// AddFlags adds flags related to the dashboard HTTP server to the specified FlagSet.
func (o *HttpOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Network, join(prefixes, "http.network"), o.Network, "Specify the network for the HTTP server.")
	fs.StringVar(&o.Addr, join(prefixes, "http.addr"), o.Addr, "Specify the HTTP server bind address and port.")
	fs.DurationVar(&o.ShutdownTimeout, join(prefixes, "http.shutdown-timeout"), o.ShutdownTimeout, "Grace period for in-flight requests on shutdown.")
	fs.DurationVar(&o.RenderWait, join(prefixes, "http.render-wait"), o.RenderWait, "How long a page waits for outstanding fetches before rendering the loading state.")
	fs.DurationVar(&o.SessionIdleTTL, join(prefixes, "http.session-idle-ttl"), o.SessionIdleTTL, "Idle time after which a dashboard session is discarded.")
}
