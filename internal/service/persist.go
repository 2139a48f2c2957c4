package service

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/Strob0t/runnable/internal/domain/artifact"
	"github.com/Strob0t/runnable/internal/domain/run"
	"github.com/Strob0t/runnable/internal/domain/task"
	"github.com/Strob0t/runnable/internal/logger"
	"github.com/Strob0t/runnable/internal/port/artifactstore"
)

// PersistService writes generated code below the output directory.
type PersistService struct {
	store     artifactstore.Store
	extension string
	log       *slog.Logger
}

// NewPersistService creates a PersistService naming files with extension.
func NewPersistService(store artifactstore.Store, extension string, log *slog.Logger) *PersistService {
	return &PersistService{store: store, extension: extension, log: log}
}

// Path returns where the artifact for t is written inside dir, before any
// collision handling.
func (s *PersistService) Path(dir string, t task.Task) string {
	return filepath.Join(dir, t.Filename(s.extension))
}

// Persist renders body under a header for t and writes it. The returned
// path is the file actually written, or the intended path on failure.
// Writing a placeholder body is noted in the outcome detail.
func (s *PersistService) Persist(ctx context.Context, dir string, t task.Task, body string) (string, run.Outcome) {
	path := s.Path(dir, t)

	written, err := s.store.Write(path, artifact.New(t, body).Render())
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to write code to file", "error", err, logger.Stack())
		return path, run.Failed(run.StepPersist, err)
	}

	s.log.InfoContext(ctx, "Code written to: "+written)
	if written != path {
		return written, run.Degraded(run.StepPersist, "name taken, wrote "+written, nil)
	}
	if artifact.IsPlaceholder(body) {
		return written, run.OK(run.StepPersist, "placeholder written to "+written)
	}
	return written, run.OK(run.StepPersist, written)
}
