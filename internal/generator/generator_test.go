package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kickstartmyai/kickstartmyai/internal/renderer"
	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// stubRenderer writes a fixed project tree or fails, depending on fail
type stubRenderer struct {
	opts *renderer.Options
	fail bool
}

func (s *stubRenderer) Render(ctx context.Context, templateRoot string, context map[string]string, outputDir string) error {
	if s.fail {
		return fmt.Errorf("%w: map has no entry for key \"undefined_variable\"", renderer.ErrRenderFailed)
	}
	projectDir := filepath.Join(outputDir, context["project_slug"])
	if err := os.MkdirAll(filepath.Join(projectDir, "app"), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectDir, "app", "main.py"), []byte("app = None\n"), 0644)
}

func (s *stubRenderer) Validate(templateRoot string) error { return nil }

func (s *stubRenderer) SetOptions(opts *renderer.Options) error {
	s.opts = opts
	return nil
}

func (s *stubRenderer) GetOptions() *renderer.Options { return s.opts }

func testGenerator(fail bool) *Generator {
	return New(&stubRenderer{fail: fail}, &Options{
		Defaults: map[string]string{
			"project_name": "Default Project",
		},
	})
}

func TestGenerateSuccess(t *testing.T) {
	g := testGenerator(false)
	cfg := types.Configuration{
		Name:   "minimal",
		Params: map[string]string{"project_name": "Minimal Project"},
	}

	result := g.Generate(context.Background(), cfg, "unused", t.TempDir())
	if result.Status != types.RenderSucceeded {
		t.Fatalf("Status = %v, want succeeded (error: %s)", result.Status, result.Error)
	}
	if result.OutputDir == "" {
		t.Fatal("OutputDir is empty on success")
	}
	if filepath.Base(result.OutputDir) != "minimal_project" {
		t.Errorf("project root = %s, want minimal_project", filepath.Base(result.OutputDir))
	}
	if _, err := os.Stat(filepath.Join(result.OutputDir, "app", "main.py")); err != nil {
		t.Errorf("generated file missing: %v", err)
	}
	if result.Timestamp == 0 {
		t.Error("Timestamp not set")
	}
}

func TestGenerateFailureIsCaptured(t *testing.T) {
	g := testGenerator(true)
	cfg := types.Configuration{
		Name:   "broken",
		Params: map[string]string{"project_name": "Broken Project"},
	}

	// Renderer failure must become a failed result, never a panic or error
	result := g.Generate(context.Background(), cfg, "unused", t.TempDir())
	if result.Status != types.RenderFailed {
		t.Fatalf("Status = %v, want failed", result.Status)
	}
	if result.Error == "" {
		t.Error("Error text not captured")
	}
	if result.OutputDir != "" {
		t.Errorf("OutputDir = %s, want empty on failure", result.OutputDir)
	}
}

func TestGenerateInvalidConfiguration(t *testing.T) {
	g := testGenerator(false)
	cfg := types.Configuration{
		Name:   "bad-name",
		Params: map[string]string{"project_name": "bad\nname"},
	}

	result := g.Generate(context.Background(), cfg, "unused", t.TempDir())
	if result.Status != types.RenderFailed {
		t.Fatalf("Status = %v, want failed for invalid project name", result.Status)
	}
}

func TestGenerateUniqueDirectories(t *testing.T) {
	g := testGenerator(false)
	cfg := types.Configuration{
		Name:   "minimal",
		Params: map[string]string{"project_name": "Same Name"},
	}
	base := t.TempDir()

	first := g.Generate(context.Background(), cfg, "unused", base)
	second := g.Generate(context.Background(), cfg, "unused", base)
	if first.Status != types.RenderSucceeded || second.Status != types.RenderSucceeded {
		t.Fatal("expected both generations to succeed")
	}
	if first.OutputDir == second.OutputDir {
		t.Errorf("two generations shared output dir %s", first.OutputDir)
	}
}

func TestContextMergesDefaults(t *testing.T) {
	g := testGenerator(false)
	cfg := types.Configuration{
		Name: "override",
		Params: map[string]string{
			"project_name":  "Override Project",
			"database_type": "mysql",
		},
	}

	ctx, err := g.Context(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if ctx["database_type"] != "mysql" {
		t.Errorf("params should override defaults: got %s", ctx["database_type"])
	}
	if ctx["project_slug"] != "override_project" {
		t.Errorf("project_slug = %s, want override_project", ctx["project_slug"])
	}
}

func TestCleanup(t *testing.T) {
	g := testGenerator(false)
	cfg := types.Configuration{
		Name:   "minimal",
		Params: map[string]string{"project_name": "Cleanup Project"},
	}
	base := t.TempDir()

	result := g.Generate(context.Background(), cfg, "unused", base)
	if result.Status != types.RenderSucceeded {
		t.Fatal("generation failed")
	}
	if err := Cleanup(result); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(result.OutputDir)); !os.IsNotExist(err) {
		t.Error("output directory still present after cleanup")
	}

	// Cleanup of a failed result is a no-op
	if err := Cleanup(types.GenerationResult{Status: types.RenderFailed}); err != nil {
		t.Errorf("Cleanup() of failed result error = %v", err)
	}
}
