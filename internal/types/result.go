// Package types defines the shared data model for the validation harness:
// configurations, generation results, findings and the final run report.
package types

import "time"

// Configuration is one named parameter combination driving template rendering.
// Configurations are built once at startup and never mutated.
type Configuration struct {
	// Name is the unique human-readable identifier used in reporting
	Name string `json:"name" yaml:"name"`
	// Params is the substitution context handed to the template renderer
	Params map[string]string `json:"params" yaml:"params"`
	// Quick marks this configuration as part of the quick-mode subset
	Quick bool `json:"quick,omitempty" yaml:"quick,omitempty"`
}

// RenderStatus is the outcome of a single generation attempt
type RenderStatus string

const (
	// RenderSucceeded means the template renderer produced an output tree
	RenderSucceeded RenderStatus = "succeeded"
	// RenderFailed means the renderer returned an error for this configuration
	RenderFailed RenderStatus = "failed"
)

// GenerationResult represents one materialization attempt for one configuration
type GenerationResult struct {
	// Config is the source configuration
	Config Configuration `json:"config"`
	// OutputDir is the root of the generated project tree. Owned exclusively
	// by this result until cleanup. Empty when Status is RenderFailed.
	OutputDir string `json:"output_dir,omitempty"`
	// Status is succeeded or failed
	Status RenderStatus `json:"status"`
	// Error holds the captured renderer error text when Status is failed
	Error string `json:"error,omitempty"`
	// Duration is how long rendering took
	Duration time.Duration `json:"duration"`
	// Timestamp is the unix time the attempt started
	Timestamp int64 `json:"timestamp"`
}

// FindingKind classifies a single validation finding
type FindingKind string

const (
	// FindingMissingFile means a required file is absent from the output tree
	FindingMissingFile FindingKind = "missing_file"
	// FindingMissingDir means a required directory is absent
	FindingMissingDir FindingKind = "missing_dir"
	// FindingUnresolvedPlaceholder means a template marker survived rendering
	FindingUnresolvedPlaceholder FindingKind = "unresolved_placeholder"
	// FindingSyntaxError means a generated source file failed to parse
	FindingSyntaxError FindingKind = "syntax_error"
	// FindingGenerationFailed is the synthetic finding recorded when the
	// renderer itself failed and no structural or syntax checks could run
	FindingGenerationFailed FindingKind = "generation_failed"
	// FindingCoherence means generated content contradicts the configuration
	// that produced it (e.g. a deselected dependency still present)
	FindingCoherence FindingKind = "coherence"
)

// Finding is one discrete validation issue attached to a generation result
type Finding struct {
	Kind FindingKind `json:"kind" yaml:"kind"`
	// Path is the offending path, relative to the generated project root
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Line is the 1-based line number for placeholder findings, 0 otherwise
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
	// Message is the human-readable diagnostic. For syntax findings this is
	// the parser output verbatim.
	Message string `json:"message" yaml:"message"`
}

// ConfigStatus is the final per-configuration verdict in a run report
type ConfigStatus string

const (
	// ConfigPass means generation succeeded and no findings were recorded
	ConfigPass ConfigStatus = "pass"
	// ConfigFail means at least one finding was recorded
	ConfigFail ConfigStatus = "fail"
	// ConfigNotRun means the run was cancelled before this configuration
	// was processed
	ConfigNotRun ConfigStatus = "not_run"
)

// ConfigReport is the aggregated outcome for a single configuration
type ConfigReport struct {
	Name     string        `json:"name" yaml:"name"`
	Status   ConfigStatus  `json:"status" yaml:"status"`
	Findings []Finding     `json:"findings,omitempty" yaml:"findings,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// RunReport is the final aggregate across all configurations in one
// harness invocation. Immutable once printed or exported.
type RunReport struct {
	RunID     string         `json:"run_id" yaml:"run_id"`
	Timestamp int64          `json:"timestamp" yaml:"timestamp"`
	Passed    int            `json:"passed" yaml:"passed"`
	Failed    int            `json:"failed" yaml:"failed"`
	NotRun    int            `json:"not_run" yaml:"not_run"`
	Results   []ConfigReport `json:"results" yaml:"results"`
}

// Success reports whether every configuration passed. A not_run entry
// counts as failure so CI gating stays unambiguous.
func (r *RunReport) Success() bool {
	return r.Failed == 0 && r.NotRun == 0 && r.Passed == len(r.Results)
}
