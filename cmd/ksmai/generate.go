package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kickstartmyai/kickstartmyai/internal/generator"
	"github.com/kickstartmyai/kickstartmyai/internal/harness"
	"github.com/kickstartmyai/kickstartmyai/internal/matrix"
	"github.com/kickstartmyai/kickstartmyai/internal/renderer"
)

var (
	generateOutputDir string
	generateForce     bool
	generateSetValues []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [project name]",
	Short: "Generate a new FastAPI project from the template",
	Long: `Generate scaffolds a single FastAPI project with AI provider
integrations into the output directory.

Examples:
  # Generate with defaults
  ksmai generate "My AI Project"

  # Pick the database backend and disable redis
  ksmai generate "My AI Project" --set database_type=sqlite,include_redis=n

  # Overwrite an existing project directory
  ksmai generate "My AI Project" --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectName := args[0]
		if err := generator.ValidateProjectName(projectName); err != nil {
			return err
		}

		context, err := applyOverrides(matrix.Defaults(), generateSetValues)
		if err != nil {
			return err
		}
		context["project_name"] = projectName
		if _, ok := context["project_slug"]; !ok {
			context["project_slug"] = generator.SanitizeProjectSlug(projectName)
		}
		if err := generator.ValidateProjectSlug(context["project_slug"]); err != nil {
			return err
		}

		outputDir, err := filepath.Abs(generateOutputDir)
		if err != nil {
			return err
		}
		target := filepath.Join(outputDir, context["project_slug"])
		if _, err := os.Stat(target); err == nil {
			if !generateForce {
				return fmt.Errorf("directory %s already exists, use --force to overwrite", target)
			}
			if err := os.RemoveAll(target); err != nil {
				return fmt.Errorf("failed to remove existing directory: %w", err)
			}
		}

		if flagTemplateRoot != "" {
			cfg.Harness.TemplateRoot = flagTemplateRoot
		}
		r, err := renderer.NewRendererFactory(nil).GetRenderer(renderer.RendererTypeTree)
		if err != nil {
			return fmt.Errorf("%w: %v", harness.ErrInternal, err)
		}
		if err := r.Render(cmd.Context(), cfg.Harness.TemplateRoot, context, outputDir); err != nil {
			return fmt.Errorf("%w: %v", harness.ErrInternal, err)
		}

		fmt.Printf("Generated project at %s\n", target)
		return nil
	},
}

func init() {
	flags := generateCmd.Flags()
	flags.StringVarP(&generateOutputDir, "output-dir", "d", ".",
		"directory to create the project in")
	flags.BoolVar(&generateForce, "force", false,
		"overwrite an existing project directory")
	flags.StringSliceVar(&generateSetValues, "set", nil,
		"override context values (key=value,...)")
	flags.StringVar(&flagTemplateRoot, "template-root", "",
		"template tree to render (overrides config)")
}
