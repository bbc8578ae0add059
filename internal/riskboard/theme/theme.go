// Package theme persists the light/dark preference of dashboard clients.
package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/autopeer-io/riskboard/internal/riskboard/core"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
	"github.com/autopeer-io/riskboard/pkg/options"
)

// KeyPrefix namespaces stored preferences.
const KeyPrefix = "riskboard-theme"

// ErrInvalidClientID rejects client ids that are not UUIDs.
var ErrInvalidClientID = errors.New("invalid client id")

// Key returns the storage key of a client's preference.
func Key(clientID string) (string, error) {
	id, err := uuid.Parse(clientID)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidClientID, clientID)
	}
	return KeyPrefix + "/" + id.String(), nil
}

// NewStore builds the store selected by opts.
func NewStore(ctx context.Context, opts *options.ThemeOptions, s3 *options.S3Options) (core.ThemeStore, error) {
	switch opts.Backend {
	case options.ThemeBackendS3:
		store, err := NewS3Store(s3)
		if err != nil {
			return nil, err
		}
		if err := store.CheckBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case options.ThemeBackendFile, "":
		return NewFileStore(opts.Dir)
	default:
		return nil, fmt.Errorf("unknown theme backend %q", opts.Backend)
	}
}

// Resolve loads the client's theme, falling back to def when nothing is
// stored or the store fails.
func Resolve(ctx context.Context, store core.ThemeStore, clientID string, def model.Theme) (model.Theme, error) {
	t, found, err := store.Load(ctx, clientID)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return t, nil
}
