package validator

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// pyParseSnippet parses a source file with the interpreter's own ast
// module. Parse only: the file's top-level code is never executed, so a
// mis-rendered template cannot run side effects during validation.
const pyParseSnippet = `import ast, sys
with open(sys.argv[1], "rb") as f:
    src = f.read()
ast.parse(src, sys.argv[1])
`

// PythonChecker validates Python sources out of process with a bounded
// per-file timeout.
type PythonChecker struct {
	// Bin is the interpreter to invoke, e.g. "python3"
	Bin string
	// Timeout bounds a single parse; a hung parser becomes a finding
	// instead of hanging the run
	Timeout time.Duration
}

// NewPythonChecker creates a PythonChecker with defaults filled in
func NewPythonChecker(bin string, timeout time.Duration) *PythonChecker {
	if bin == "" {
		bin = "python3"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PythonChecker{Bin: bin, Timeout: timeout}
}

// Name identifies the checker in diagnostics
func (c *PythonChecker) Name() string { return "python" }

// Extensions lists the file extensions this checker handles
func (c *PythonChecker) Extensions() []string { return []string{".py"} }

// Check parses one Python file and reports syntax errors with the
// interpreter's diagnostic verbatim.
func (c *PythonChecker) Check(ctx context.Context, path string) []types.Finding {
	cctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, c.Bin, "-c", pyParseSnippet, path)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return []types.Finding{{
			Kind:    types.FindingSyntaxError,
			Path:    path,
			Message: fmt.Sprintf("parse timed out after %s", c.Timeout),
		}}
	}
	// A cancelled run kills the interpreter mid-parse; that is not a
	// syntax problem with the file
	if errors.Is(cctx.Err(), context.Canceled) {
		return nil
	}

	msg := strings.TrimSpace(string(output))
	if msg == "" {
		msg = err.Error()
	}
	return []types.Finding{{
		Kind:    types.FindingSyntaxError,
		Path:    path,
		Message: msg,
	}}
}
