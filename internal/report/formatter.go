package report

import (
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// Formatter defines the interface for formatting run reports
type Formatter interface {
	Format(report *types.RunReport) (string, error)
}

// Type represents the type of formatter
type Type string

const (
	// TypeJSON formats the report as JSON
	TypeJSON Type = "json"
	// TypeYAML formats the report as YAML
	TypeYAML Type = "yaml"
	// TypeTable formats the report as console tables
	TypeTable Type = "table"
)

// NewFormatter returns the formatter for the given type
func NewFormatter(t Type) (Formatter, error) {
	switch t {
	case TypeJSON:
		return &JSON{}, nil
	case TypeYAML:
		return &YAML{}, nil
	case TypeTable:
		return &Table{}, nil
	default:
		return nil, fmt.Errorf("unknown report format: %s", t)
	}
}

// JSON implements JSON formatting
type JSON struct{}

// YAML implements YAML formatting
type YAML struct{}

// Table implements table formatting
type Table struct{}

// Format formats the report as JSON
func (j *JSON) Format(report *types.RunReport) (string, error) {
	bytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting as JSON: %w", err)
	}
	return string(bytes), nil
}

// Format formats the report as YAML
func (y *YAML) Format(report *types.RunReport) (string, error) {
	bytes, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("error formatting as YAML: %w", err)
	}
	return string(bytes), nil
}

// Format formats the report as console tables
func (t *Table) Format(report *types.RunReport) (string, error) {
	return buildTables(report)
}
