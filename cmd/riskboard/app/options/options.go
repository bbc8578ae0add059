package options

import (
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/riskboard/internal/riskboard"
	"github.com/autopeer-io/riskboard/pkg/app"
	"github.com/autopeer-io/riskboard/pkg/log"
	"github.com/autopeer-io/riskboard/pkg/options"
)

type ServerOptions struct {
	HttpOptions      *options.HttpOptions      `json:"http" mapstructure:"http"`
	PredictorOptions *options.PredictorOptions `json:"predictor" mapstructure:"predictor"`
	ThemeOptions     *options.ThemeOptions     `json:"theme" mapstructure:"theme"`
	S3Options        *options.S3Options        `json:"s3" mapstructure:"s3"`
	MqttOptions      *options.MqttOptions      `json:"mqtt" mapstructure:"mqtt"`
	MetricsOptions   *options.MetricsOptions   `json:"metrics" mapstructure:"metrics"`
	ViewOptions      *options.ViewOptions      `json:"view" mapstructure:"view"`
	Log              *log.Options              `json:"log" mapstructure:"log"`
}

var _ app.NamedFlagSetOptions = (*ServerOptions)(nil)

func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		HttpOptions:      options.NewHttpOptions(),
		PredictorOptions: options.NewPredictorOptions(),
		ThemeOptions:     options.NewThemeOptions(),
		S3Options:        options.NewS3Options(),
		MqttOptions:      options.NewMqttOptions(),
		MetricsOptions:   options.NewMetricsOptions(),
		ViewOptions:      options.NewViewOptions(),
		Log:              log.NewOptions(),
	}
}

func (o *ServerOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.HttpOptions.AddFlags(fss.FlagSet("http"))
	o.PredictorOptions.AddFlags(fss.FlagSet("predictor"))
	o.ThemeOptions.AddFlags(fss.FlagSet("theme"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.MqttOptions.AddFlags(fss.FlagSet("mqtt"))
	o.MetricsOptions.AddFlags(fss.FlagSet("metrics"))
	o.ViewOptions.AddFlags(fss.FlagSet("view"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

// Complete initializes the process logger once flags and config are merged.
func (o *ServerOptions) Complete() error {
	log.Init(o.Log)
	return nil
}

func (o *ServerOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.PredictorOptions.Validate()...)
	errs = append(errs, o.ThemeOptions.Validate()...)
	if o.ThemeOptions.Backend == options.ThemeBackendS3 {
		errs = append(errs, o.S3Options.Validate()...)
	}
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.MetricsOptions.Validate()...)
	errs = append(errs, o.ViewOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *ServerOptions) Config() (*riskboard.Config, error) {
	return &riskboard.Config{
		HttpOptions:      o.HttpOptions,
		PredictorOptions: o.PredictorOptions,
		ThemeOptions:     o.ThemeOptions,
		S3Options:        o.S3Options,
		MqttOptions:      o.MqttOptions,
		MetricsOptions:   o.MetricsOptions,
		ViewOptions:      o.ViewOptions,
	}, nil
}
