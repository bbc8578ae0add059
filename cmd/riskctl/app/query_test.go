package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/format"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

func TestPrintModels(t *testing.T) {
	var buf bytes.Buffer
	err := printModels(&buf, []model.ModelInfo{
		{Name: "decision_tree", ModelType: "tree", AUC: 0.81234, Description: "Depth-limited tree"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "decision_tree")
	assert.Contains(t, out, "0.812")
	assert.Contains(t, out, "Depth-limited tree")
}

func TestPrintVehicles(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printVehicles(&buf, nil))
		assert.Equal(t, "No vehicles found.\n", buf.String())
	})

	t.Run("rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printVehicles(&buf, []model.VehicleSummary{
			{ID: 42, VIN: "VIN42", Model: "F-150", ModelYear: 2021, Mileage: 48210, Region: "Midwest", RiskScore: 0.873, RiskBucket: model.RiskBucketHigh},
		}))
		out := buf.String()
		assert.Contains(t, out, "VIN42")
		assert.Contains(t, out, "48,210 mi")
		assert.Contains(t, out, "87%")
		assert.Contains(t, out, "High")
	})
}

func TestPrintVehicle(t *testing.T) {
	detail := &model.VehicleDetail{
		Summary: model.VehicleSummary{ID: 42, VIN: "VIN42", Model: "F-150", ModelYear: 2021, DealershipName: "Lakeside Motors", Region: "Midwest", RiskScore: 0.5, RiskBucket: model.RiskBucketMedium},
	}
	dates := format.NewDateFormatter("en-US", time.UTC)

	var buf bytes.Buffer
	require.NoError(t, printVehicle(&buf, detail, dates))
	assert.Contains(t, buf.String(), "Lakeside Motors · Midwest")
	assert.Contains(t, buf.String(), "Medium (50%)")
	assert.Contains(t, buf.String(), "No service history recorded for this vehicle in the PoC dataset.")

	detail.ServiceHistory = []model.ServiceRecord{
		{ServiceDate: "2023-05-01", Component: "Turbocharger", FaultCode: "P0299", Mileage: 40100, Action: "Replaced", Cost: 1500.5},
	}
	buf.Reset()
	require.NoError(t, printVehicle(&buf, detail, dates))
	assert.Contains(t, buf.String(), "5/1/2023")
	assert.Contains(t, buf.String(), "$1,501")
	assert.Contains(t, buf.String(), "Customer pay")
}

func TestModelsCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"gradient_boosting","model_type":"ensemble","auc":0.9,"description":"GBM"}]`))
	}))
	defer srv.Close()

	cmd := NewApp().Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"models", "--predictor.base-url", srv.URL})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "gradient_boosting")
	assert.Contains(t, out.String(), "0.900")
}
