package theme

import (
	"context"
	"sync"

	"github.com/autopeer-io/riskboard/internal/riskboard/core"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// MemoryStore keeps preferences for the life of the process. riskctl tui
// and tests use it.
type MemoryStore struct {
	mu     sync.RWMutex
	themes map[string]model.Theme
}

var _ core.ThemeStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: map[string]model.Theme{}}
}

func (s *MemoryStore) Load(_ context.Context, clientID string) (model.Theme, bool, error) {
	key, err := Key(clientID)
	if err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.themes[key]
	return t, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, clientID string, t model.Theme) error {
	key, err := Key(clientID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[key] = t
	return nil
}
