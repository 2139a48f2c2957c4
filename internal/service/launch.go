package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Strob0t/runnable/internal/config"
	"github.com/Strob0t/runnable/internal/domain"
	"github.com/Strob0t/runnable/internal/domain/run"
	"github.com/Strob0t/runnable/internal/logger"
	"github.com/Strob0t/runnable/internal/port/spawner"
)

// Argument placeholders expanded by LaunchService.
const (
	VarOutputDir = "{output_dir}"
	VarFile      = "{file}"
)

// LaunchService starts auxiliary desktop applications, best effort.
type LaunchService struct {
	spawner spawner.Spawner
	log     *slog.Logger
}

// NewLaunchService creates a LaunchService.
func NewLaunchService(sp spawner.Spawner, log *slog.Logger) *LaunchService {
	return &LaunchService{spawner: sp, log: log}
}

// Launch starts name with args. A failed launch is logged and reported in
// the outcome; it never panics or blocks.
func (s *LaunchService) Launch(ctx context.Context, name string, args ...string) run.Outcome {
	step := run.LaunchStep(name)

	pid, err := s.spawner.Start(name, args...)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.ErrorContext(ctx, name+" not found in container.")
		} else {
			s.log.ErrorContext(ctx, "Failed to launch "+name, "error", err, logger.Stack())
		}
		return run.Failed(step, err)
	}

	s.log.InfoContext(ctx, strings.TrimSpace("Launched: "+name+" "+strings.Join(args, " ")))
	return run.OK(step, fmt.Sprintf("pid %d", pid))
}

// LaunchApp starts app with {output_dir} and {file} expanded in its arguments.
func (s *LaunchService) LaunchApp(ctx context.Context, app config.App, outputDir, file string) run.Outcome {
	r := strings.NewReplacer(VarOutputDir, outputDir, VarFile, file)
	args := make([]string, len(app.Args))
	for i, a := range app.Args {
		args[i] = r.Replace(a)
	}
	return s.Launch(ctx, app.Name, args...)
}

// LaunchAll starts every app in order. Each app is attempted regardless of
// earlier failures.
func (s *LaunchService) LaunchAll(ctx context.Context, apps []config.App, outputDir, file string) []run.Outcome {
	outcomes := make([]run.Outcome, 0, len(apps))
	for _, app := range apps {
		outcomes = append(outcomes, s.LaunchApp(ctx, app, outputDir, file))
	}
	return outcomes
}
