// Package generator produces one generation result per configuration by
// driving the template renderer into an isolated output directory.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kickstartmyai/kickstartmyai/internal/logger"
	"github.com/kickstartmyai/kickstartmyai/internal/renderer"
	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// Options holds configuration for the generator
type Options struct {
	// Defaults is the base substitution context merged under every
	// configuration's params
	Defaults map[string]string
}

// Generator materializes configurations using a template renderer
type Generator struct {
	renderer renderer.Renderer
	opts     *Options
}

// New creates a new Generator with the given renderer and options
func New(r renderer.Renderer, opts *Options) *Generator {
	if opts == nil {
		opts = &Options{}
	}
	return &Generator{renderer: r, opts: opts}
}

// Context builds the full substitution context for a configuration:
// defaults overlaid with the configuration's params, with project_slug
// derived from project_name when not set explicitly.
func (g *Generator) Context(cfg types.Configuration) (map[string]string, error) {
	merged := make(map[string]string, len(g.opts.Defaults)+len(cfg.Params)+1)
	for k, v := range g.opts.Defaults {
		merged[k] = v
	}
	for k, v := range cfg.Params {
		merged[k] = v
	}

	name := merged["project_name"]
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}
	if _, ok := merged["project_slug"]; !ok {
		merged["project_slug"] = SanitizeProjectSlug(name)
	}
	if err := ValidateProjectSlug(merged["project_slug"]); err != nil {
		return nil, err
	}
	return merged, nil
}

// Generate materializes one configuration under outputBase. It never
// returns an error: renderer failures are captured in the result so a
// broken configuration cannot abort the rest of the matrix.
func (g *Generator) Generate(ctx context.Context, cfg types.Configuration, templateRoot, outputBase string) types.GenerationResult {
	start := time.Now()
	result := types.GenerationResult{
		Config:    cfg,
		Status:    types.RenderFailed,
		Timestamp: start.Unix(),
	}

	substCtx, err := g.Context(cfg)
	if err != nil {
		result.Error = fmt.Sprintf("invalid configuration: %v", err)
		result.Duration = time.Since(start)
		return result
	}

	// Fresh uniquely named directory per attempt; concurrent generations
	// must never share an output path.
	workDir := filepath.Join(outputBase, fmt.Sprintf("%s-%s", substCtx["project_slug"], uuid.New().String()[:8]))
	if err := os.MkdirAll(workDir, 0755); err != nil {
		result.Error = fmt.Sprintf("failed to allocate output directory: %v", err)
		result.Duration = time.Since(start)
		return result
	}

	if err := g.renderer.Render(ctx, templateRoot, substCtx, workDir); err != nil {
		logger.Debug().Str("config", cfg.Name).Err(err).Msg("render failed")
		result.Error = err.Error()
		result.Duration = time.Since(start)
		// Partial output is useless to the validators
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			logger.Warn().Str("dir", workDir).Err(rmErr).Msg("failed to remove partial output")
		}
		return result
	}

	projectRoot, err := locateProjectRoot(workDir)
	if err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		return result
	}

	result.Status = types.RenderSucceeded
	result.OutputDir = projectRoot
	result.Duration = time.Since(start)
	logger.Debug().Str("config", cfg.Name).Str("dir", projectRoot).Dur("took", result.Duration).Msg("generated project")
	return result
}

// Cleanup removes a result's output directory tree, including the
// per-attempt parent that isolates it from sibling generations.
func Cleanup(result types.GenerationResult) error {
	if result.OutputDir == "" {
		return nil
	}
	return os.RemoveAll(filepath.Dir(result.OutputDir))
}

// locateProjectRoot finds the single project directory the renderer
// produced under workDir.
func locateProjectRoot(workDir string) (string, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return "", fmt.Errorf("failed to read output directory: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) == 0 {
		return "", fmt.Errorf("render produced no project directory")
	}
	if len(dirs) > 1 {
		return "", fmt.Errorf("render produced %d top-level directories, want 1", len(dirs))
	}
	return filepath.Join(workDir, dirs[0]), nil
}
