// Package harness runs the full validation matrix: it generates every
// configuration, validates each output tree, and aggregates the results
// into a single run report.
package harness

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/kickstartmyai/kickstartmyai/internal/generator"
	"github.com/kickstartmyai/kickstartmyai/internal/logger"
	"github.com/kickstartmyai/kickstartmyai/internal/matrix"
	"github.com/kickstartmyai/kickstartmyai/internal/renderer"
	"github.com/kickstartmyai/kickstartmyai/internal/report"
	"github.com/kickstartmyai/kickstartmyai/internal/types"
	"github.com/kickstartmyai/kickstartmyai/internal/validator"
)

// Error types for the harness package. ErrInternal marks failures of the
// harness itself (missing manifest, empty matrix, disk exhaustion) that
// must abort the run rather than produce a misleading report.
var (
	ErrInternal         = fmt.Errorf("harness error")
	ErrValidationFailed = fmt.Errorf("validation failed")
)

// Options holds configuration for a validation run
type Options struct {
	// MaxConcurrency bounds the number of configurations processed in
	// parallel, and with it the number of live temp directories
	MaxConcurrency int
	// Quick restricts the matrix to quick-tagged configurations and
	// skips the syntax checkers. Placeholder scanning stays on.
	Quick bool
	// KeepOutput retains generated directories for diagnostics
	KeepOutput bool
	// TemplateRoot is the template tree to render
	TemplateRoot string
	// ManifestPath is the required-paths manifest file
	ManifestPath string
	// Defaults is the base substitution context
	Defaults map[string]string
}

// DefaultOptions returns the default harness options
func DefaultOptions() *Options {
	return &Options{
		MaxConcurrency: 4,
		Defaults:       matrix.Defaults(),
	}
}

// Harness drives generation and validation across a configuration matrix
type Harness struct {
	opts     *Options
	gen      *generator.Generator
	checkers []validator.Checker
}

// New creates a Harness using the given renderer and syntax checkers
func New(r renderer.Renderer, checkers []validator.Checker, opts *Options) *Harness {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = 4
	}
	if opts.Defaults == nil {
		opts.Defaults = matrix.Defaults()
	}
	return &Harness{
		opts:     opts,
		gen:      generator.New(r, &generator.Options{Defaults: opts.Defaults}),
		checkers: checkers,
	}
}

// Run executes the matrix and returns the aggregated report. The error
// is non-nil only for harness-internal failures; validation failures are
// expressed in the report itself.
func (h *Harness) Run(ctx context.Context, configs []types.Configuration) (*types.RunReport, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: configuration matrix is empty", ErrInternal)
	}

	manifest, err := validator.LoadManifest(h.opts.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if h.opts.Quick {
		configs = matrix.QuickSubset(configs)
	}

	outputBase, err := os.MkdirTemp("", "ksmai-run-*")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to allocate run directory: %v", ErrInternal, err)
	}
	if !h.opts.KeepOutput {
		defer func() {
			if err := os.RemoveAll(outputBase); err != nil {
				logger.Warn().Str("dir", outputBase).Err(err).Msg("failed to remove run directory")
			}
		}()
	} else {
		logger.Info().Str("dir", outputBase).Msg("keeping generated output for diagnostics")
	}

	runID := uuid.New().String()[:8]
	logger.Info().Str("run", runID).Int("configs", len(configs)).
		Int("concurrency", h.opts.MaxConcurrency).Bool("quick", h.opts.Quick).
		Msg("starting validation run")

	entries := make([]report.Entry, len(configs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < h.opts.MaxConcurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				entries[idx] = h.runOne(ctx, configs[idx], manifest, outputBase)
			}
		}()
	}

	for i := range configs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	rep := report.Aggregate(runID, entries)
	logger.Info().Str("run", runID).Int("passed", rep.Passed).
		Int("failed", rep.Failed).Int("not_run", rep.NotRun).
		Msg("validation run finished")
	return rep, nil
}

// runOne processes a single configuration through generation and the
// validation stages. Each stage's failure is isolated: findings from
// earlier stages never suppress later stages of the same configuration.
func (h *Harness) runOne(ctx context.Context, cfg types.Configuration, manifest *validator.Manifest, outputBase string) report.Entry {
	entry := report.Entry{Config: cfg}

	if ctx.Err() != nil {
		entry.NotRun = true
		return entry
	}

	entry.Result = h.gen.Generate(ctx, cfg, h.opts.TemplateRoot, outputBase)
	if entry.Result.Status != types.RenderSucceeded {
		// A cancelled render is indistinguishable from a broken one at
		// this level; report it as not_run when the run was cancelled
		if ctx.Err() != nil {
			entry.NotRun = true
			entry.Result = types.GenerationResult{Config: cfg}
		}
		return entry
	}
	if !h.opts.KeepOutput {
		defer func() {
			if err := generator.Cleanup(entry.Result); err != nil {
				logger.Warn().Str("config", cfg.Name).Err(err).Msg("cleanup failed")
			}
		}()
	}

	entry.Findings = validator.Structure(entry.Result, manifest)

	if substCtx, err := h.gen.Context(cfg); err == nil {
		entry.Findings = append(entry.Findings, validator.Coherence(entry.Result, substCtx)...)
	}

	if !h.opts.Quick && len(h.checkers) > 0 {
		entry.Findings = append(entry.Findings, validator.Syntax(ctx, entry.Result, h.checkers)...)
	}

	logger.Debug().Str("config", cfg.Name).Int("findings", len(entry.Findings)).Msg("validated configuration")
	return entry
}
