// Package artifact defines the generated code artifact and its on-disk rendering.
package artifact

import (
	"strings"

	"github.com/Strob0t/runnable/internal/domain/task"
)

// Placeholder bodies written when no real generated text is available.
const (
	PlaceholderNoResponse  = "# Ollama returned no response."
	PlaceholderUnreachable = "# ERROR: Could not connect to Ollama instance."
)

// HeaderPrefix starts the first line of every rendered artifact.
const HeaderPrefix = "# Task: "

// Artifact is generated text together with the task that produced it.
type Artifact struct {
	Task task.Task
	Body string
}

// New creates an Artifact for t with the given body.
func New(t task.Task, body string) Artifact {
	return Artifact{Task: t, Body: body}
}

// Render returns the file contents: a header line naming the task, a blank
// line, then the body with surrounding whitespace trimmed and one trailing newline.
func (a Artifact) Render() []byte {
	var b strings.Builder
	b.WriteString(HeaderPrefix)
	b.WriteString(string(a.Task))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(a.Body))
	b.WriteString("\n")
	return []byte(b.String())
}

// IsPlaceholder reports whether body is one of the fallback strings.
func IsPlaceholder(body string) bool {
	return body == PlaceholderNoResponse || body == PlaceholderUnreachable
}
