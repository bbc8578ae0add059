package theme

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/autopeer-io/riskboard/internal/riskboard/core"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
)

// FileStore keeps one small file per client under a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

var _ core.ThemeStore = (*FileStore)(nil)

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, KeyPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create theme directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(clientID string) (string, error) {
	key, err := Key(clientID)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, filepath.FromSlash(key)), nil
}

func (s *FileStore) Load(_ context.Context, clientID string) (model.Theme, bool, error) {
	p, err := s.path(clientID)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read theme: %w", err)
	}
	return model.ParseTheme(strings.TrimSpace(string(data))), true, nil
}

// Save writes through a temporary file so readers never see a partial value.
func (s *FileStore) Save(_ context.Context, clientID string, t model.Theme) error {
	p, err := s.path(clientID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(t), 0o644); err != nil {
		return fmt.Errorf("failed to write theme: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to replace theme: %w", err)
	}
	return nil
}
