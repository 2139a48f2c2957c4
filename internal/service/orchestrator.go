package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	cfotel "github.com/Strob0t/runnable/internal/adapter/otel"
	"github.com/Strob0t/runnable/internal/config"
	"github.com/Strob0t/runnable/internal/domain/run"
	"github.com/Strob0t/runnable/internal/domain/task"
	"github.com/Strob0t/runnable/internal/logger"
	"github.com/Strob0t/runnable/internal/port/artifactstore"
	"github.com/Strob0t/runnable/internal/port/spawner"
	"github.com/Strob0t/runnable/internal/port/textgen"
)

// Orchestrator drives one invocation: ensure the output directory, generate,
// persist, then launch the auxiliary apps. Steps run strictly in order and
// only an output directory failure stops the sequence.
type Orchestrator struct {
	outputDir string
	apps      []config.App
	store     artifactstore.Store
	generator *GenerationService
	persister *PersistService
	launcher  *LaunchService
	metrics   *cfotel.Metrics
	log       *slog.Logger
	newID     func() string
}

// NewOrchestrator wires the step services from cfg and the given adapters.
func NewOrchestrator(
	cfg *config.Config,
	gen textgen.Generator,
	endpoint string,
	store artifactstore.Store,
	sp spawner.Spawner,
	log *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		outputDir: cfg.Output.Dir,
		apps:      cfg.Launcher.Apps,
		store:     store,
		generator: NewGenerationService(gen, cfg.Ollama.Model, endpoint, log),
		persister: NewPersistService(store, cfg.Output.Extension, log),
		launcher:  NewLaunchService(sp, log),
		log:       log,
		newID:     uuid.NewString,
	}
}

// SetMetrics attaches metric instruments. Without them no metrics are recorded.
func (o *Orchestrator) SetMetrics(m *cfotel.Metrics) {
	o.metrics = m
}

// Run executes the sequence for t and reports every step's outcome.
func (o *Orchestrator) Run(ctx context.Context, t task.Task) *run.Report {
	start := time.Now()
	report := &run.Report{
		RunID:     o.newID(),
		Task:      t,
		OutputDir: o.outputDir,
	}
	ctx = logger.WithRunID(ctx, report.RunID)
	ctx, span := cfotel.StartRunSpan(ctx, report.RunID, string(t))
	defer func() {
		o.metrics.RecordRun(ctx, time.Since(start).Seconds(), report.Aborted)
		cfotel.EndRunSpan(span, report.Aborted)
	}()

	o.log.InfoContext(ctx, "Task received: "+string(t))

	dirOut := o.step(ctx, report, run.StepOutputDir, func(ctx context.Context) run.Outcome {
		if err := o.store.EnsureDir(o.outputDir); err != nil {
			o.log.ErrorContext(ctx, "Failed to create output directory", "error", err)
			return run.Failed(run.StepOutputDir, err)
		}
		return run.OK(run.StepOutputDir, o.outputDir)
	})
	if dirOut.Status == run.StatusFailed {
		report.Aborted = true
		return report
	}

	o.log.InfoContext(ctx, "Generating code using Ollama...")
	var code string
	o.step(ctx, report, run.StepGenerate, func(ctx context.Context) run.Outcome {
		var out run.Outcome
		code, out = o.generator.Generate(ctx, t)
		return out
	})

	report.FilePath = o.persister.Path(o.outputDir, t)
	o.step(ctx, report, run.StepPersist, func(ctx context.Context) run.Outcome {
		var out run.Outcome
		report.FilePath, out = o.persister.Persist(ctx, o.outputDir, t, code)
		return out
	})

	for _, app := range o.apps {
		o.step(ctx, report, run.LaunchStep(app.Name), func(ctx context.Context) run.Outcome {
			return o.launcher.LaunchApp(ctx, app, o.outputDir, report.FilePath)
		})
	}

	o.log.InfoContext(ctx, "Container is ready and running for VNC.")
	return report
}

// step runs fn inside a span, then records its outcome.
func (o *Orchestrator) step(ctx context.Context, report *run.Report, step run.Step, fn func(context.Context) run.Outcome) run.Outcome {
	stepCtx, span := cfotel.StartStepSpan(ctx, step)
	out := fn(stepCtx)
	cfotel.EndStepSpan(span, out)
	o.metrics.RecordStep(ctx, out)
	report.Record(out)
	return out
}
