package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/riskboard/pkg/options"
)

func TestDefaultsAreValid(t *testing.T) {
	o := NewServerOptions()
	require.NoError(t, o.Validate())

	cfg, err := o.Config()
	require.NoError(t, err)
	assert.Same(t, o.HttpOptions, cfg.HttpOptions)
	assert.Same(t, o.PredictorOptions, cfg.PredictorOptions)
	assert.Equal(t, 100, cfg.PredictorOptions.VehicleLimit)
	assert.Equal(t, "decision_tree", cfg.PredictorOptions.DefaultModel)
}

func TestValidateAggregatesErrors(t *testing.T) {
	o := NewServerOptions()
	o.PredictorOptions.BaseURL = "ftp://scoring"
	o.PredictorOptions.VehicleLimit = 0
	o.ThemeOptions.Default = "blue"
	o.ViewOptions.TimeZone = "Mars/Olympus_Mons"

	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--predictor.base-url")
	assert.Contains(t, err.Error(), "--predictor.vehicle-limit")
	assert.Contains(t, err.Error(), "--theme.default")
	assert.Contains(t, err.Error(), "--view.time-zone")
}

func TestS3CheckedOnlyForS3Backend(t *testing.T) {
	o := NewServerOptions()
	o.S3Options.BucketName = ""
	assert.NoError(t, o.Validate())

	o.ThemeOptions.Backend = options.ThemeBackendS3
	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--s3.bucket-name")
}

func TestFlagsAreGrouped(t *testing.T) {
	fss := NewServerOptions().Flags()
	for _, name := range []string{"http", "predictor", "theme", "s3", "mqtt", "metrics", "view", "log"} {
		assert.Contains(t, fss.Order, name)
	}
	assert.NotNil(t, fss.FlagSet("predictor").Lookup("predictor.base-url"))
	assert.NotNil(t, fss.FlagSet("mqtt").Lookup("mqtt.enabled"))
}
