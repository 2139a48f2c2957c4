// Package filesystem implements the artifactstore port on the local disk.
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Strob0t/runnable/internal/config"
	"github.com/Strob0t/runnable/internal/domain"
	"github.com/Strob0t/runnable/internal/port/artifactstore"
)

// maxSuffix bounds the search for a free name in uniquify mode.
const maxSuffix = 1000

// Store writes files with a configurable collision policy.
type Store struct {
	onCollision string
}

// Compile-time interface check.
var _ artifactstore.Store = (*Store)(nil)

// NewStore creates a Store. onCollision is config.CollisionOverwrite or
// config.CollisionUniquify; anything else behaves as overwrite.
func NewStore(onCollision string) *Store {
	return &Store{onCollision: onCollision}
}

// EnsureDir creates dir and any missing parents. An existing directory is not an error.
func (s *Store) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // output dir is world-readable on purpose
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}

// Write stores data at path. In overwrite mode an existing file is replaced;
// in uniquify mode the first free "<stem>_N<ext>" sibling is used instead.
func (s *Store) Write(path string, data []byte) (string, error) {
	if s.onCollision == config.CollisionUniquify {
		free, err := freeName(path)
		if err != nil {
			return "", err
		}
		path = free
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // generated code is meant to be opened by other desktop apps
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func freeName(path string) (string, error) {
	if !exists(path) {
		return path, nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; i <= maxSuffix; i++ {
		candidate := stem + "_" + strconv.Itoa(i) + ext
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: %w", path, domain.ErrConflict)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
