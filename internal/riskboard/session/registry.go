// Package session maps browser sessions to dashboard controllers.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/autopeer-io/riskboard/internal/pkg/metrics"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/dashboard"
	"github.com/autopeer-io/riskboard/pkg/log"
)

// Factory builds the controller of a new session.
type Factory func() *dashboard.Controller

// Session is one mounted dashboard.
type Session struct {
	ID         string
	Controller *dashboard.Controller

	lastSeen time.Time
}

// Registry owns every live session and expires idle ones.
type Registry struct {
	factory Factory
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry returns a registry whose sessions expire after ttl without
// a request.
func NewRegistry(factory Factory, ttl time.Duration) *Registry {
	return &Registry{
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]*Session{},
	}
}

// Get returns the session with the given id. An unknown or expired id gets
// a fresh, mounted session with a new id; created reports that case.
func (r *Registry) Get(id string) (s *Session, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		return s, false
	}

	s = &Session{
		ID:         uuid.NewString(),
		Controller: r.factory(),
		lastSeen:   r.now(),
	}
	r.sessions[s.ID] = s
	metrics.ActiveSessions.Set(float64(len(r.sessions)))

	// Mounted is always accepted by a fresh controller.
	_ = s.Controller.Dispatch(dashboard.Mounted{})
	log.Debug("Session created", "session", s.ID)

	return s, true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than the ttl and returns how many
// were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	var expired []*Session
	deadline := r.now().Add(-r.ttl)
	for id, s := range r.sessions {
		if s.lastSeen.Before(deadline) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	r.mu.Unlock()

	for _, s := range expired {
		s.Controller.Close()
		log.Debug("Session expired", "session", s.ID)
	}
	return len(expired)
}

// Run sweeps periodically until ctx is done, then closes every session.
func (r *Registry) Run(ctx context.Context) error {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Info("Expired idle sessions", "count", n)
			}
		case <-ctx.Done():
			r.closeAll()
			return nil
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = map[string]*Session{}
	metrics.ActiveSessions.Set(0)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Controller.Close()
	}
}
