package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

var _ IOptions = (*ThemeOptions)(nil)

const (
	ThemeBackendFile = "file"
	ThemeBackendS3   = "s3"
)

// ThemeOptions selects where the light/dark preference is persisted.
type ThemeOptions struct {
	// Backend is either "file" or "s3".
	Backend string `json:"backend" mapstructure:"backend"`

	// Dir is the directory used by the file backend.
	Dir string `json:"dir" mapstructure:"dir"`

	// Default theme for clients without a stored preference.
	Default string `json:"default" mapstructure:"default"`
}

// NewThemeOptions creates a ThemeOptions object with default parameters.
func NewThemeOptions() *ThemeOptions {
	return &ThemeOptions{
		Backend: ThemeBackendFile,
		Dir:     "/var/lib/riskboard",
		Default: "light",
	}
}

func (o *ThemeOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	switch o.Backend {
	case ThemeBackendFile:
		if o.Dir == "" {
			errors = append(errors, fmt.Errorf("--theme.dir is required for the file backend"))
		}
	case ThemeBackendS3:
	default:
		errors = append(errors, fmt.Errorf("--theme.backend must be %q or %q, got %q", ThemeBackendFile, ThemeBackendS3, o.Backend))
	}

	if o.Default != "light" && o.Default != "dark" {
		errors = append(errors, fmt.Errorf("--theme.default must be 'light' or 'dark', got %q", o.Default))
	}

	return errors
}

func (o *ThemeOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Backend, join(prefixes, "theme.backend"), o.Backend, "Where theme preferences are stored ('file' or 's3').")
	fs.StringVar(&o.Dir, join(prefixes, "theme.dir"), o.Dir, "Directory for the file theme backend.")
	fs.StringVar(&o.Default, join(prefixes, "theme.default"), o.Default, "Theme used when a client has no stored preference.")
}
