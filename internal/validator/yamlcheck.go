package validator

import (
	"context"
	"os"

	"sigs.k8s.io/kustomize/kyaml/kio"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// YAMLChecker validates generated YAML files (docker-compose, CI
// workflows) in process. Parsing only; documents are discarded.
type YAMLChecker struct{}

// Name identifies the checker in diagnostics
func (c *YAMLChecker) Name() string { return "yaml" }

// Extensions lists the file extensions this checker handles
func (c *YAMLChecker) Extensions() []string { return []string{".yml", ".yaml"} }

// Check parses one YAML file and reports parse errors verbatim
func (c *YAMLChecker) Check(ctx context.Context, path string) []types.Finding {
	data, err := os.ReadFile(path)
	if err != nil {
		return []types.Finding{{
			Kind:    types.FindingSyntaxError,
			Path:    path,
			Message: err.Error(),
		}}
	}

	if _, err := kio.FromBytes(data); err != nil {
		return []types.Finding{{
			Kind:    types.FindingSyntaxError,
			Path:    path,
			Message: err.Error(),
		}}
	}
	return nil
}
