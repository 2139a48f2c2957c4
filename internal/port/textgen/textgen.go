// Package textgen defines the port interface for text-generation services.
package textgen

import "context"

// Request is a single non-streaming prompt.
type Request struct {
	Model  string
	Prompt string
}

// Completion is the service's answer to a Request.
type Completion struct {
	Text string
	// Present is false when the reply parsed but carried no text field.
	Present bool
}

// Generator is the port interface for a text-generation backend.
type Generator interface {
	Generate(ctx context.Context, req Request) (Completion, error)
}
