package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/autopeer-io/riskboard/internal/pkg/metrics"
	"github.com/autopeer-io/riskboard/internal/riskboard/core"
	"github.com/autopeer-io/riskboard/pkg/log"
)

// Controller drives one dashboard: it owns the State, runs the commands
// Reduce asks for and feeds their outcomes back in.
type Controller struct {
	machine   Machine
	predictor core.Predictor
	notifier  core.AlertNotifier
	logger    log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	state    State
	version  uint64
	inflight int
	changed  chan struct{}
	closed   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where high-risk vehicles are published.
func WithNotifier(n core.AlertNotifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(l log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController returns a Controller in the initial state. Nothing is fetched
// until Mounted is dispatched.
func NewController(m Machine, p core.Predictor, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		machine:   m,
		predictor: p,
		logger:    log.Std(),
		ctx:       ctx,
		cancel:    cancel,
		state:     m.Initial(),
		changed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dispatch applies a user event. Rejected events leave the state unchanged
// and return the reason.
func (c *Controller) Dispatch(e Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	return c.applyLocked(e)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Version increases on every state change.
func (c *Controller) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Changed returns a channel that is closed on the next state change.
func (c *Controller) Changed() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changed
}

// WaitIdle blocks until no fetch is outstanding or ctx is done.
func (c *Controller) WaitIdle(ctx context.Context) error {
	for {
		c.mu.Lock()
		if c.inflight == 0 {
			c.mu.Unlock()
			return nil
		}
		ch := c.changed
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels outstanding fetches and waits for their goroutines.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Controller) applyLocked(e Event) error {
	next, cmds, err := c.machine.Reduce(c.state, e)
	if err != nil {
		return err
	}

	c.state = next
	c.notifyLocked()

	for _, cmd := range cmds {
		c.startLocked(cmd)
	}
	return nil
}

func (c *Controller) notifyLocked() {
	c.version++
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Controller) startLocked(cmd Command) {
	c.wg.Add(1)
	if pub, ok := cmd.(PublishHighRisk); ok {
		go func() {
			defer c.wg.Done()
			c.publish(pub)
		}()
		return
	}

	c.inflight++
	go func() {
		defer c.wg.Done()
		c.complete(cmd, c.execute(cmd))
	}()
}

// execute performs a fetch and converts the outcome into an event.
func (c *Controller) execute(cmd Command) Event {
	kind := cmd.commandKind()
	start := time.Now()
	defer func() {
		metrics.FetchLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	var ev Event
	var err error
	switch cmd := cmd.(type) {
	case FetchModels:
		list, ferr := c.predictor.ListModels(c.ctx)
		err = ferr
		if err != nil {
			c.logFailure(err, "Failed to load models", "kind", kind)
			ev = ModelsFailed{Token: cmd.Token, Err: err}
		} else {
			ev = ModelsLoaded{Token: cmd.Token, Models: list}
		}
	case FetchVehicles:
		list, ferr := c.predictor.ListVehicles(c.ctx, cmd.Model, cmd.Limit)
		err = ferr
		if err != nil {
			c.logFailure(err, "Failed to load vehicles", "kind", kind, "model", cmd.Model)
			ev = VehiclesFailed{Token: cmd.Token, Err: err}
		} else {
			ev = VehiclesLoaded{Token: cmd.Token, Vehicles: list}
		}
	case FetchDetail:
		detail, ferr := c.predictor.GetVehicleDetail(c.ctx, cmd.VehicleID, cmd.Model)
		err = ferr
		if err != nil {
			c.logFailure(err, "Failed to load vehicle details", "kind", kind, "model", cmd.Model, "vehicleID", cmd.VehicleID)
			ev = DetailFailed{Token: cmd.Token, Err: err}
		} else {
			ev = DetailLoaded{Token: cmd.Token, Detail: detail}
		}
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailed
	}
	metrics.FetchTotal.WithLabelValues(kind, outcome).Inc()

	return ev
}

// logFailure reports a failed fetch unless the controller is shutting down.
func (c *Controller) logFailure(err error, msg string, keysAndValues ...any) {
	if c.ctx.Err() != nil {
		return
	}
	c.logger.Error(err, msg, keysAndValues...)
}

func (c *Controller) complete(cmd Command, ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight--
	if c.closed {
		c.notifyLocked()
		return
	}

	err := c.applyLocked(ev)
	switch {
	case err == nil:
		return
	case errors.Is(err, ErrStale):
		metrics.StaleDiscardedTotal.WithLabelValues(cmd.commandKind()).Inc()
		c.logger.Debug("Discarded stale completion", "kind", cmd.commandKind(), "event", ev.eventName())
	default:
		c.logger.Error(err, "Failed to apply completion", "kind", cmd.commandKind())
	}
	// Wake WaitIdle even though the state did not change.
	c.notifyLocked()
}

func (c *Controller) publish(cmd PublishHighRisk) {
	if c.notifier == nil {
		return
	}

	outcome := metrics.OutcomeSuccess
	if err := c.notifier.NotifyHighRisk(c.ctx, cmd.Model, cmd.Vehicles); err != nil {
		outcome = metrics.OutcomeFailed
		c.logger.Error(err, "Failed to publish high-risk vehicles", "model", cmd.Model, "count", len(cmd.Vehicles))
	}
	metrics.AlertsPublishedTotal.WithLabelValues(outcome).Inc()
}
