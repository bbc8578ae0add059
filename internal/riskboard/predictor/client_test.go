package predictor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 0)
}

func TestListModels(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"name":"decision_tree","model_type":"tree","auc":0.812,"description":"Shallow tree"}]`))
	})

	models, err := c.ListModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.ModelInfo{{Name: "decision_tree", ModelType: "tree", AUC: 0.812, Description: "Shallow tree"}}, models)
}

func TestListVehiclesEncodesModelName(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vehicles", r.URL.Path)
		assert.Equal(t, "model_name=gradient%20boost%26co&limit=100", r.URL.RawQuery)
		assert.Equal(t, "gradient boost&co", r.URL.Query().Get("model_name"))
		_, _ = w.Write([]byte(`[{"id":42,"vin":"1HGCM82633A004352","model":"Sedan X","model_year":2021,
			"mileage":48210,"age_months":30,"risk_score":0.82,"risk_bucket":"High","failure_label":true}]`))
	})

	vehicles, err := c.ListVehicles(context.Background(), "gradient boost&co", 100)

	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, int64(42), vehicles[0].ID)
	assert.Equal(t, int64(48210), vehicles[0].Mileage)
	assert.Equal(t, model.RiskBucketHigh, vehicles[0].RiskBucket)
	assert.True(t, vehicles[0].FailureLabel)
}

func TestGetVehicleDetail(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vehicles/42", r.URL.Path)
		assert.Equal(t, "decision_tree", r.URL.Query().Get("model_name"))
		_, _ = w.Write([]byte(`{"summary":{"id":42,"vin":"V"},"service_history":[
			{"id":2,"service_date":"2023-05-01","cost":1234.6,"is_warranty_claim":true},
			{"id":1,"service_date":"2022-01-15","cost":80,"is_warranty_claim":false}]}`))
	})

	detail, err := c.GetVehicleDetail(context.Background(), 42, "decision_tree")

	require.NoError(t, err)
	assert.Equal(t, "V", detail.Summary.VIN)
	require.Len(t, detail.ServiceHistory, 2)
	assert.Equal(t, int64(2), detail.ServiceHistory[0].ID, "order preserved")
	assert.True(t, detail.ServiceHistory[0].IsWarrantyClaim)
}

func TestNon2xxIsStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Vehicle not found"}`, http.StatusNotFound)
	})

	_, err := c.GetVehicleDetail(context.Background(), 7, "decision_tree")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, statusErr.Body, "Vehicle not found")
}

func TestUndecodableBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := c.ListModels(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestContextCancel(t *testing.T) {
	block := make(chan struct{})
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.ListModels(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHealth(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	assert.NoError(t, c.Health(context.Background()))
	healthy.Store(false)
	assert.Error(t, c.Health(context.Background()))
}
