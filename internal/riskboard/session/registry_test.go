package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/riskboard/internal/riskboard/core/dashboard"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

type emptyPredictor struct{}

func (emptyPredictor) ListModels(context.Context) ([]model.ModelInfo, error) { return nil, nil }
func (emptyPredictor) ListVehicles(context.Context, string, int) ([]model.VehicleSummary, error) {
	return nil, nil
}
func (emptyPredictor) GetVehicleDetail(context.Context, int64, string) (*model.VehicleDetail, error) {
	return nil, nil
}

func newTestRegistry(ttl time.Duration) *Registry {
	return NewRegistry(func() *dashboard.Controller {
		return dashboard.NewController(dashboard.Machine{DefaultModel: "decision_tree"}, emptyPredictor{})
	}, ttl)
}

func TestGetCreatesAndReuses(t *testing.T) {
	r := newTestRegistry(time.Minute)

	s, created := r.Get("")
	require.True(t, created)
	assert.NotEmpty(t, s.ID)
	assert.NotEqual(t, dashboard.PhaseIdle, s.Controller.Snapshot().ModelsPhase, "mounted on creation")

	again, created := r.Get(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := r.Get("unknown")
	assert.True(t, created)
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, 2, r.Len())
}

func TestSweepExpiresIdle(t *testing.T) {
	r := newTestRegistry(time.Minute)
	var mu sync.Mutex
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	old, _ := r.Get("")
	advance(45 * time.Second)
	fresh, _ := r.Get("")
	advance(30 * time.Second)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	_, created := r.Get(old.ID)
	assert.True(t, created)
	_, created = r.Get(fresh.ID)
	assert.False(t, created)
}

func TestRunClosesOnCancel(t *testing.T) {
	r := newTestRegistry(time.Minute)
	s, _ := r.Get("")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	require.NoError(t, <-done)
	assert.Equal(t, 0, r.Len())
	assert.ErrorIs(t, s.Controller.Dispatch(dashboard.Mounted{}), dashboard.ErrClosed)
}
