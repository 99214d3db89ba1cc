package validator

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// Checker performs a parse-only syntax check on a single file. A check
// must never execute the file's content.
type Checker interface {
	// Name identifies the checker in diagnostics
	Name() string
	// Extensions lists the file extensions this checker handles,
	// including the leading dot
	Extensions() []string
	// Check parses one file and returns findings for parse failures.
	// The diagnostic message is preserved verbatim.
	Check(ctx context.Context, path string) []types.Finding
}

// Syntax runs every applicable checker over the generated tree. The scan
// is exhaustive within a configuration: it continues past failing files
// so one broken file cannot hide problems in the rest. Cancelling the
// context stops the walk and returns the findings collected so far.
func Syntax(ctx context.Context, result types.GenerationResult, checkers []Checker) []types.Finding {
	byExt := make(map[string]Checker)
	for _, c := range checkers {
		for _, ext := range c.Extensions() {
			byExt[ext] = c
		}
	}

	findings := []types.Finding{}
	_ = filepath.WalkDir(result.OutputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if d.IsDir() {
			return nil
		}
		checker, ok := byExt[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}

		for _, f := range checker.Check(ctx, path) {
			if rel, relErr := filepath.Rel(result.OutputDir, path); relErr == nil {
				f.Path = filepath.ToSlash(rel)
			}
			findings = append(findings, f)
		}
		return nil
	})
	return findings
}
