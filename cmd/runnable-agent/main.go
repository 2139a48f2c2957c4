package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Strob0t/runnable/internal/adapter/filesystem"
	"github.com/Strob0t/runnable/internal/adapter/ollama"
	cfotel "github.com/Strob0t/runnable/internal/adapter/otel"
	"github.com/Strob0t/runnable/internal/adapter/process"
	"github.com/Strob0t/runnable/internal/config"
	"github.com/Strob0t/runnable/internal/domain/task"
	"github.com/Strob0t/runnable/internal/logger"
	"github.com/Strob0t/runnable/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run loads config and executes one invocation. It returns the process exit
// code: 1 for an unusable configuration, 0 otherwise.
func run(args []string, stdout io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		boot := slog.New(logger.NewTagHandler(stdout, slog.LevelInfo))
		logger.Fatal(context.Background(), boot, "Invalid configuration", "error", err)
		return 1
	}

	log := logger.New(cfg.Logging, stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guard(ctx, log, func() {
		if err := agent(ctx, cfg, args, log); err != nil {
			log.Error("Agent run failed", "error", err)
		}
	})
	return 0
}

// guard runs fn and logs any panic at FATAL with its stack instead of crashing.
func guard(ctx context.Context, log *slog.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Fatal(ctx, log, "Unhandled exception", "error", fmt.Sprint(r), logger.Stack())
		}
	}()
	fn()
}

func agent(ctx context.Context, cfg *config.Config, args []string, log *slog.Logger) error {
	shutdown, err := cfotel.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Warn("Telemetry disabled", "error", err)
		shutdown = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown", "error", err)
		}
	}()

	metrics, err := cfotel.NewMetrics(nil)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	client := ollama.NewClient(cfg.Ollama.URL, cfg.Ollama.Timeout)
	orch := service.NewOrchestrator(
		cfg,
		client,
		client.Endpoint(),
		filesystem.NewStore(cfg.Output.OnCollision),
		process.NewLauncher(),
		log,
	)
	orch.SetMetrics(metrics)

	report := orch.Run(ctx, task.Resolve(args))
	if report.Aborted || !cfg.KeepAlive.Enabled {
		return nil
	}

	if err := service.KeepAlive(ctx, cfg.KeepAlive.Duration); err != nil {
		log.Info("Keep-alive interrupted", "reason", err)
	}
	return nil
}
