package service

import (
	"context"
	"log/slog"

	"github.com/Strob0t/runnable/internal/domain/artifact"
	"github.com/Strob0t/runnable/internal/domain/run"
	"github.com/Strob0t/runnable/internal/domain/task"
	"github.com/Strob0t/runnable/internal/logger"
	"github.com/Strob0t/runnable/internal/port/textgen"
)

// GenerationService turns a task into code text. It always yields some text:
// failures are replaced with a placeholder and reported in the outcome.
type GenerationService struct {
	gen      textgen.Generator
	model    string
	endpoint string
	log      *slog.Logger
}

// NewGenerationService creates a GenerationService. endpoint is only used in log lines.
func NewGenerationService(gen textgen.Generator, model, endpoint string, log *slog.Logger) *GenerationService {
	return &GenerationService{gen: gen, model: model, endpoint: endpoint, log: log}
}

// Generate sends t as the prompt.
func (s *GenerationService) Generate(ctx context.Context, t task.Task) (string, run.Outcome) {
	s.log.InfoContext(ctx, "Sending prompt to Ollama at "+s.endpoint)

	c, err := s.gen.Generate(ctx, textgen.Request{Model: s.model, Prompt: string(t)})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to generate code with Ollama", "error", err, logger.Stack())
		return artifact.PlaceholderUnreachable,
			run.Degraded(run.StepGenerate, "generation service unreachable", err)
	}

	s.log.InfoContext(ctx, "Code generation succeeded")
	if !c.Present {
		return artifact.PlaceholderNoResponse,
			run.Degraded(run.StepGenerate, "reply carried no response field", nil)
	}
	return c.Text, run.OK(run.StepGenerate, "")
}
