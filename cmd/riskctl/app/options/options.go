package options

import (
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/riskboard/pkg/app"
	"github.com/autopeer-io/riskboard/pkg/log"
	"github.com/autopeer-io/riskboard/pkg/options"
)

type CtlOptions struct {
	PredictorOptions *options.PredictorOptions `json:"predictor" mapstructure:"predictor"`
	ViewOptions      *options.ViewOptions      `json:"view" mapstructure:"view"`
	Log              *log.Options              `json:"log" mapstructure:"log"`
}

var _ app.NamedFlagSetOptions = (*CtlOptions)(nil)

func NewCtlOptions() *CtlOptions {
	o := &CtlOptions{
		PredictorOptions: options.NewPredictorOptions(),
		ViewOptions:      options.NewViewOptions(),
		Log:              log.NewOptions(),
	}
	// Tables go to stdout; keep diagnostics out of the way.
	o.Log.Level = "warn"
	o.Log.OutputPaths = []string{"stderr"}

	return o
}

func (o *CtlOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.PredictorOptions.AddFlags(fss.FlagSet("predictor"))
	o.ViewOptions.AddFlags(fss.FlagSet("view"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *CtlOptions) Complete() error {
	log.Init(o.Log)
	return nil
}

func (o *CtlOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.PredictorOptions.Validate()...)
	errs = append(errs, o.ViewOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}
