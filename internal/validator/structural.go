// Package validator inspects generated project trees: structural checks
// against a required-paths manifest, a scan for unresolved template
// markers, parse-only syntax checks and configuration coherence checks.
package validator

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// Manifest is the static list of relative paths every generated project
// must contain, independent of configuration.
type Manifest struct {
	Files []string `yaml:"files"`
	Dirs  []string `yaml:"dirs"`
}

// LoadManifest reads a required-paths manifest. A missing or malformed
// manifest is a harness-internal error, not a validation finding.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read required-paths manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse required-paths manifest %s: %w", path, err)
	}
	if len(m.Files) == 0 && len(m.Dirs) == 0 {
		return nil, fmt.Errorf("required-paths manifest %s lists no paths", path)
	}
	return &m, nil
}

// placeholderPattern matches template markers that should never survive
// a correct render. "<no value>" is what a lenient text/template render
// leaves behind for an undefined key.
var placeholderPattern = regexp.MustCompile(`\{\{[^{}]*\}\}|<no value>`)

// Structure verifies a succeeded generation result against the manifest
// and scans every text file for unresolved template markers. Read-only;
// an empty slice signals a clean pass.
func Structure(result types.GenerationResult, manifest *Manifest) []types.Finding {
	findings := []types.Finding{}

	for _, rel := range manifest.Files {
		path := filepath.Join(result.OutputDir, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			findings = append(findings, types.Finding{
				Kind:    types.FindingMissingFile,
				Path:    rel,
				Message: fmt.Sprintf("required file %s is missing", rel),
			})
		}
	}

	for _, rel := range manifest.Dirs {
		path := filepath.Join(result.OutputDir, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			findings = append(findings, types.Finding{
				Kind:    types.FindingMissingDir,
				Path:    rel,
				Message: fmt.Sprintf("required directory %s is missing", rel),
			})
		}
	}

	findings = append(findings, scanPlaceholders(result.OutputDir)...)
	return findings
}

// scanPlaceholders walks the output tree looking for leftover template
// markers. This is the primary signal that the render context was
// incomplete for a configuration.
func scanPlaceholders(root string) []types.Finding {
	findings := []types.Finding{}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if isBinary(data) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		// bufio.Reader instead of Scanner: a Scanner gives up on lines
		// longer than its buffer, silently truncating the scan
		reader := bufio.NewReader(bytes.NewReader(data))
		line := 0
		for {
			text, readErr := reader.ReadString('\n')
			if text != "" {
				line++
				if m := placeholderPattern.FindString(text); m != "" {
					findings = append(findings, types.Finding{
						Kind:    types.FindingUnresolvedPlaceholder,
						Path:    rel,
						Line:    line,
						Message: fmt.Sprintf("unresolved template marker %q", strings.TrimSpace(m)),
					})
				}
			}
			if readErr != nil {
				return nil
			}
		}
	})

	return findings
}

func isBinary(data []byte) bool {
	n := len(data)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(data[:n], 0) != -1
}
