package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TreeRenderer implements Renderer for templated directory trees. Both
// file contents and path segments go through text/template with the
// sprig function map, so templates can use the same helpers a Helm chart
// would.
type TreeRenderer struct {
	opts *Options
}

// NewTreeRenderer creates a new TreeRenderer
func NewTreeRenderer(opts *Options) *TreeRenderer {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TreeRenderer{opts: opts}
}

// SetOptions configures the renderer with the provided options
func (r *TreeRenderer) SetOptions(opts *Options) error {
	if opts == nil {
		return fmt.Errorf("%w: nil options", ErrInvalidInput)
	}
	o := *opts
	r.opts = &o
	return nil
}

// GetOptions returns a copy of the current renderer options
func (r *TreeRenderer) GetOptions() *Options {
	o := *r.opts
	return &o
}

// Validate checks that templateRoot is an existing directory
func (r *TreeRenderer) Validate(templateRoot string) error {
	info, err := os.Stat(templateRoot)
	if err != nil {
		return fmt.Errorf("%w: template root %s: %v", ErrInvalidInput, templateRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: template root %s is not a directory", ErrInvalidInput, templateRoot)
	}
	return nil
}

// Render materializes templateRoot into outputDir with the given context
func (r *TreeRenderer) Render(ctx context.Context, templateRoot string, context map[string]string, outputDir string) error {
	if err := r.Validate(templateRoot); err != nil {
		return err
	}
	if context == nil {
		return fmt.Errorf("%w: nil context", ErrInvalidInput)
	}

	return filepath.WalkDir(templateRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(templateRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		target, skip, err := r.renderPath(rel, context)
		if err != nil {
			return fmt.Errorf("%w: path %s: %v", ErrRenderFailed, rel, err)
		}
		if skip {
			// A path segment rendered to "" excludes the whole subtree
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		dest := filepath.Join(outputDir, target)
		if d.IsDir() {
			return os.MkdirAll(dest, 0755)
		}
		return r.renderFile(path, rel, dest, context)
	})
}

// renderPath substitutes context variables in every segment of a
// relative path. A segment rendering to the empty string marks the
// entry as skipped.
func (r *TreeRenderer) renderPath(rel string, context map[string]string) (string, bool, error) {
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for i, seg := range segments {
		if !strings.Contains(seg, "{{") {
			continue
		}
		rendered, err := r.renderString("path", seg, context)
		if err != nil {
			return "", false, err
		}
		if strings.TrimSpace(rendered) == "" {
			return "", true, nil
		}
		segments[i] = rendered
	}
	return filepath.Join(segments...), false, nil
}

// renderFile renders a single template file to dest, preserving the
// source file mode. Binary files are copied verbatim.
func (r *TreeRenderer) renderFile(src, rel, dest string, context map[string]string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read template file %s: %w", rel, err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat template file %s: %w", rel, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	if isBinary(data) {
		return os.WriteFile(dest, data, info.Mode().Perm())
	}

	rendered, err := r.renderString(rel, string(data), context)
	if err != nil {
		return fmt.Errorf("%w: file %s: %v", ErrRenderFailed, rel, err)
	}
	return os.WriteFile(dest, []byte(rendered), info.Mode().Perm())
}

func (r *TreeRenderer) renderString(name, text string, context map[string]string) (string, error) {
	missingKey := "error"
	if !r.opts.Strict {
		missingKey = "default"
	}

	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=" + missingKey).
		Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// isBinary reports whether data looks like binary content. Mirrors the
// usual NUL-byte sniff over the leading block.
func isBinary(data []byte) bool {
	n := len(data)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(data[:n], 0) != -1
}
