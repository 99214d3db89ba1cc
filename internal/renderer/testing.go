package renderer

import (
	"os"
	"path/filepath"
	"testing"
)

// testHelper provides utilities for testing renderers
type testHelper struct {
	t *testing.T
}

// newTestHelper creates a new testHelper instance
func newTestHelper(t *testing.T) *testHelper {
	return &testHelper{t: t}
}

// writeTree writes a template tree under root. Keys are slash-separated
// relative paths; a trailing slash denotes an empty directory.
func (h *testHelper) writeTree(root string, files map[string]string) {
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if len(rel) > 0 && rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(path, 0755); err != nil {
				h.t.Fatalf("failed to create dir %s: %v", rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			h.t.Fatalf("failed to create parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			h.t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// readOutput reads a rendered file and fails the test on error
func (h *testHelper) readOutput(root, rel string) string {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		h.t.Fatalf("failed to read output %s: %v", rel, err)
	}
	return string(data)
}
