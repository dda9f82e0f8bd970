// Package model provides the language model interface and backends.
// The NVIDIA NIM backend speaks the OpenAI-compatible chat completions API.
package model

import "context"

// Model represents a text-completion backend.
type Model interface {
	// Generate runs inference on the model.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// IsAvailable checks if the model is ready.
	IsAvailable() bool

	// Name returns the model identifier.
	Name() string
}
