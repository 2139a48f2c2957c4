package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Strob0t/runnable/internal/logger"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runnable.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RUNNABLE_CONFIG", path)
}

func TestRunEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":"print('todo')"}`))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "output")
	writeConfig(t, `
launcher:
  apps:
    - name: runnable-test-no-such-app
      args: ["{file}"]
keep_alive:
  enabled: false
`)
	t.Setenv("OLLAMA_API", srv.URL)
	t.Setenv("RUNNABLE_OUTPUT_DIR", out)

	var stdout bytes.Buffer
	if code := run([]string{"Build a To-Do List"}, &stdout); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	data, err := os.ReadFile(filepath.Join(out, "build_a_to-do_list.py"))
	if err != nil {
		t.Fatalf("expected generated file: %v", err)
	}
	if string(data) != "# Task: Build a To-Do List\n\nprint('todo')\n" {
		t.Fatalf("unexpected contents %q", data)
	}

	logs := stdout.String()
	for _, want := range []string{
		"[INFO] Task received: Build a To-Do List",
		"[INFO] Code generation succeeded",
		"[ERROR] runnable-test-no-such-app not found in container.",
		"[INFO] Container is ready and running for VNC.",
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("missing %q in logs:\n%s", want, logs)
		}
	}
}

func TestRunOutputDirFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, "keep_alive:\n  enabled: true\n")
	t.Setenv("RUNNABLE_OUTPUT_DIR", filepath.Join(blocker, "output"))
	t.Setenv("OLLAMA_API", "http://127.0.0.1:1")

	var stdout bytes.Buffer
	if code := run(nil, &stdout); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	logs := stdout.String()
	if !strings.Contains(logs, "[ERROR] Failed to create output directory") {
		t.Errorf("missing directory error in logs:\n%s", logs)
	}
	if strings.Contains(logs, "Generating code") {
		t.Error("generation must not start after the directory error")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	writeConfig(t, "output:\n  on_collision: merge\n")

	var stdout bytes.Buffer
	if code := run(nil, &stdout); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "[FATAL] Invalid configuration") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewTagHandler(&buf, slog.LevelInfo))

	guard(context.Background(), log, func() { panic("boom") })

	got := buf.String()
	if !strings.HasPrefix(got, "[FATAL] Unhandled exception error=boom\n") {
		t.Fatalf("unexpected output %q", got)
	}
	if !strings.Contains(got, "goroutine ") {
		t.Error("expected stack trace")
	}
}
