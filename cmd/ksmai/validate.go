package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"helm.sh/helm/v3/pkg/strvals"

	"github.com/kickstartmyai/kickstartmyai/internal/harness"
	"github.com/kickstartmyai/kickstartmyai/internal/logger"
	"github.com/kickstartmyai/kickstartmyai/internal/matrix"
	"github.com/kickstartmyai/kickstartmyai/internal/renderer"
	"github.com/kickstartmyai/kickstartmyai/internal/report"
	"github.com/kickstartmyai/kickstartmyai/internal/types"
	"github.com/kickstartmyai/kickstartmyai/internal/validator"
)

var (
	validateQuick      bool
	validateKeepOutput bool
	validateMatrixFile string
	validateSetValues  []string
	validateReportFile string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the template tree across the configuration matrix",
	Long: `Validate generates a project for every configuration in the matrix and
checks each result: required files and directories exist, no unresolved
template markers survive, generated sources parse, and configuration
toggles actually show up in the generated content.

Examples:
  # Full matrix run against the bundled template
  ksmai validate

  # Fast feedback: quick subset, structural checks only
  ksmai validate --quick

  # Override context values for every configuration
  ksmai validate --set aws_region=eu-central-1,environment=staging

  # Export the report for CI artifact upload
  ksmai validate --report-file report.json -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		configs, err := loadMatrix()
		if err != nil {
			return fmt.Errorf("%w: %v", harness.ErrInternal, err)
		}

		defaults, err := applyOverrides(matrix.Defaults(), validateSetValues)
		if err != nil {
			return fmt.Errorf("%w: %v", harness.ErrInternal, err)
		}

		r, err := renderer.NewRendererFactory(nil).GetRenderer(renderer.RendererTypeTree)
		if err != nil {
			return fmt.Errorf("%w: %v", harness.ErrInternal, err)
		}

		h := harness.New(r, buildCheckers(), &harness.Options{
			MaxConcurrency: cfg.Harness.Concurrency,
			Quick:          validateQuick,
			KeepOutput:     validateKeepOutput || cfg.Harness.KeepOutput,
			TemplateRoot:   cfg.Harness.TemplateRoot,
			ManifestPath:   cfg.Harness.Manifest,
			Defaults:       defaults,
		})

		rep, err := h.Run(ctx, configs)
		if err != nil {
			return err
		}

		formatter, err := report.NewFormatter(report.Type(cfg.Harness.Output))
		if err != nil {
			return fmt.Errorf("%w: %v", harness.ErrInternal, err)
		}
		out, err := formatter.Format(rep)
		if err != nil {
			return fmt.Errorf("%w: %v", harness.ErrInternal, err)
		}
		fmt.Println(out)

		if validateReportFile != "" {
			jsonFormatter := &report.JSON{}
			artifact, err := jsonFormatter.Format(rep)
			if err != nil {
				return fmt.Errorf("%w: %v", harness.ErrInternal, err)
			}
			if err := os.WriteFile(validateReportFile, []byte(artifact), 0644); err != nil {
				return fmt.Errorf("%w: failed to write report file: %v", harness.ErrInternal, err)
			}
		}

		if !rep.Success() {
			return fmt.Errorf("%w: %d of %d configurations failed", harness.ErrValidationFailed, rep.Failed+rep.NotRun, len(rep.Results))
		}
		return nil
	},
}

func init() {
	flags := validateCmd.Flags()
	flags.BoolVar(&validateQuick, "quick", false,
		"run the quick configuration subset and skip syntax parsing")
	flags.BoolVar(&validateKeepOutput, "keep-output", false,
		"retain generated project directories for diagnostics")
	flags.StringVar(&validateMatrixFile, "matrix", "",
		"path to a YAML matrix file replacing the built-in configurations")
	flags.StringSliceVar(&validateSetValues, "set", nil,
		"override context values for all configurations (key=value,...)")
	flags.StringVar(&validateReportFile, "report-file", "",
		"write the JSON run report to this file")
	flags.IntVar(&flagConcurrency, "concurrency", 0,
		"maximum number of concurrent generations (overrides config)")
	flags.StringVarP(&flagOutput, "output", "o", "",
		"report format (table, json, yaml) (overrides config)")
	flags.StringVar(&flagTemplateRoot, "template-root", "",
		"template tree to validate (overrides config)")
	flags.StringVar(&flagManifest, "manifest", "",
		"required-paths manifest file (overrides config)")
}

var (
	flagConcurrency  int
	flagOutput       string
	flagTemplateRoot string
	flagManifest     string
)

// loadMatrix returns the configuration matrix, from the matrix file when
// one was given, applying flag overrides to the loaded config first.
func loadMatrix() ([]types.Configuration, error) {
	if flagConcurrency > 0 {
		cfg.Harness.Concurrency = flagConcurrency
	}
	if flagOutput != "" {
		cfg.Harness.Output = flagOutput
	}
	if flagTemplateRoot != "" {
		cfg.Harness.TemplateRoot = flagTemplateRoot
	}
	if flagManifest != "" {
		cfg.Harness.Manifest = flagManifest
	}

	if validateMatrixFile != "" {
		return matrix.Load(validateMatrixFile)
	}
	return matrix.List()
}

// buildCheckers assembles the syntax checkers for a full run. A missing
// Python interpreter downgrades to YAML-only checking with a warning
// rather than failing the whole run.
func buildCheckers() []validator.Checker {
	checkers := []validator.Checker{&validator.YAMLChecker{}}

	if _, err := exec.LookPath(cfg.Harness.PythonBin); err != nil {
		logger.Warn().Str("bin", cfg.Harness.PythonBin).
			Msg("python interpreter not found, skipping python syntax checks")
		return checkers
	}

	timeout := cfg.Harness.ParseTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return append(checkers, validator.NewPythonChecker(cfg.Harness.PythonBin, timeout))
}

// applyOverrides folds --set key=value pairs into the default context
func applyOverrides(defaults map[string]string, setValues []string) (map[string]string, error) {
	merged := make(map[string]string, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for _, expr := range setValues {
		parsed, err := strvals.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid --set value %q: %w", expr, err)
		}
		for k, v := range parsed {
			merged[k] = fmt.Sprintf("%v", v)
		}
	}
	return merged, nil
}
