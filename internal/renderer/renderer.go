// Package renderer materializes a templated project tree into an output
// directory, substituting variables and resolving conditional blocks.
package renderer

import (
	"context"
	"fmt"
)

// Options contains configuration options for renderers
type Options struct {
	// Strict makes references to undefined context keys fail the render.
	// When false, undefined keys render as "<no value>" and are left for
	// the placeholder scan to catch.
	Strict bool
}

// DefaultOptions returns a new Options with default values
func DefaultOptions() *Options {
	return &Options{
		Strict: true,
	}
}

// Error types for the renderer package
var (
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrRenderFailed = fmt.Errorf("render failed")
)

// Renderer defines the interface for project tree renderers.
// Implementations materialize a template root into an output directory
// using a key-value substitution context.
type Renderer interface {
	// Render materializes templateRoot into outputDir. Path segments are
	// templated as well as file contents, so a directory named after a
	// context variable lands under its substituted name. The context can
	// be used to cancel long-running renders.
	//
	// Returns an error wrapping ErrRenderFailed when any file or path
	// fails to render; the output directory may be partially populated
	// in that case and the caller owns its cleanup.
	Render(ctx context.Context, templateRoot string, context map[string]string, outputDir string) error

	// Validate checks that templateRoot exists and is renderable input.
	// This should be called before attempting to render.
	Validate(templateRoot string) error

	// SetOptions configures the renderer with the provided options.
	SetOptions(opts *Options) error

	// GetOptions returns a copy of the current renderer options.
	GetOptions() *Options
}
