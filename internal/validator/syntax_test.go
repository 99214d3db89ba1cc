package validator

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// failChecker flags every file it sees, recording the order of visits
type failChecker struct {
	exts    []string
	visited []string
}

func (c *failChecker) Name() string          { return "fail" }
func (c *failChecker) Extensions() []string  { return c.exts }
func (c *failChecker) Check(ctx context.Context, path string) []types.Finding {
	c.visited = append(c.visited, path)
	return []types.Finding{{Kind: types.FindingSyntaxError, Path: path, Message: "boom"}}
}

func TestSyntaxExhaustive(t *testing.T) {
	root := writeProject(t, map[string]string{
		"app/a.py":  "x = 1\n",
		"app/b.py":  "y = 2\n",
		"README.md": "readme\n",
	})

	checker := &failChecker{exts: []string{".py"}}
	findings := Syntax(context.Background(), resultFor(root), []Checker{checker})

	// Both .py files are flagged; the scan never stops at the first
	// failure and non-matching files are never visited.
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2: %v", len(findings), findings)
	}
	if len(checker.visited) != 2 {
		t.Errorf("checker visited %d files, want 2", len(checker.visited))
	}
	for _, f := range findings {
		if !strings.HasSuffix(f.Path, ".py") {
			t.Errorf("finding path %s should be relative and .py", f.Path)
		}
		if strings.Contains(f.Path, "\\") {
			t.Errorf("finding path %s should use forward slashes", f.Path)
		}
	}
}

func TestSyntaxNoCheckers(t *testing.T) {
	root := writeProject(t, map[string]string{"app/a.py": "x = 1\n"})
	findings := Syntax(context.Background(), resultFor(root), nil)
	if findings == nil || len(findings) != 0 {
		t.Errorf("expected empty findings with no checkers, got %v", findings)
	}
}

func TestSyntaxCancellation(t *testing.T) {
	root := writeProject(t, map[string]string{"app/a.py": "x = 1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := &failChecker{exts: []string{".py"}}
	findings := Syntax(ctx, resultFor(root), []Checker{checker})
	if len(findings) != 0 {
		t.Errorf("cancelled scan should return no findings, got %v", findings)
	}
}

func TestYAMLChecker(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantFail bool
	}{
		{
			name:    "valid yaml",
			content: "services:\n  api:\n    image: test\n",
		},
		{
			name:    "valid multi-document",
			content: "a: 1\n---\nb: 2\n",
		},
		{
			name:     "malformed yaml",
			content:  "services:\n  api: [unclosed\n",
			wantFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeProject(t, map[string]string{"docker-compose.yml": tt.content})
			findings := Syntax(context.Background(), resultFor(root), []Checker{&YAMLChecker{}})
			if tt.wantFail {
				if len(findings) != 1 || findings[0].Kind != types.FindingSyntaxError {
					t.Fatalf("expected one syntax_error finding, got %v", findings)
				}
				if findings[0].Message == "" {
					t.Error("parser diagnostic was not preserved")
				}
			} else if len(findings) != 0 {
				t.Errorf("unexpected findings: %v", findings)
			}
		})
	}
}

func TestPythonChecker(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}

	checker := NewPythonChecker("python3", 30*time.Second)

	t.Run("valid file", func(t *testing.T) {
		root := writeProject(t, map[string]string{"app/main.py": "def main():\n    return 1\n"})
		findings := Syntax(context.Background(), resultFor(root), []Checker{checker})
		if len(findings) != 0 {
			t.Errorf("unexpected findings: %v", findings)
		}
	})

	t.Run("truncated file still scans siblings", func(t *testing.T) {
		root := writeProject(t, map[string]string{
			"app/broken.py": "def main(:\n",
			"app/ok.py":     "x = 1\n",
		})
		findings := Syntax(context.Background(), resultFor(root), []Checker{checker})
		if len(findings) != 1 {
			t.Fatalf("got %d findings, want exactly 1: %v", len(findings), findings)
		}
		f := findings[0]
		if f.Path != "app/broken.py" {
			t.Errorf("finding path = %s, want app/broken.py", f.Path)
		}
		if !strings.Contains(f.Message, "SyntaxError") {
			t.Errorf("expected verbatim interpreter diagnostic, got %q", f.Message)
		}
	})

	t.Run("cancelled run is not a syntax error", func(t *testing.T) {
		root := writeProject(t, map[string]string{"app/main.py": "x = 1\n"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		findings := checker.Check(ctx, root+"/app/main.py")
		if len(findings) != 0 {
			t.Errorf("killed interpreter reported as syntax error: %v", findings)
		}
	})

	t.Run("import side effects never run", func(t *testing.T) {
		marker := t.TempDir() + "/executed"
		root := writeProject(t, map[string]string{
			"app/evil.py": "open(\"" + marker + "\", \"w\").close()\n",
		})
		findings := Syntax(context.Background(), resultFor(root), []Checker{checker})
		if len(findings) != 0 {
			t.Errorf("valid file flagged: %v", findings)
		}
		if _, err := os.Stat(marker); !os.IsNotExist(err) {
			t.Error("top-level code was executed during parse")
		}
	})
}

func TestPythonCheckerDefaults(t *testing.T) {
	c := NewPythonChecker("", 0)
	if c.Bin != "python3" {
		t.Errorf("default Bin = %s, want python3", c.Bin)
	}
	if c.Timeout != 30*time.Second {
		t.Errorf("default Timeout = %v, want 30s", c.Timeout)
	}
}
