// Package matrix supplies the list of configurations exercised by a
// validation run, either the built-in scenario set or one loaded from a
// matrix file.
package matrix

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// Error types for the matrix package
var (
	ErrEmptyMatrix    = fmt.Errorf("configuration matrix is empty")
	ErrDuplicateNames = fmt.Errorf("configuration matrix contains duplicate names")
)

// Defaults returns the base substitution context. Every configuration's
// params are layered on top of these, so a template conditional never
// hits an undefined key for the standard parameter set.
func Defaults() map[string]string {
	return map[string]string{
		"project_name":         "My AI Project",
		"author_name":          "Your Name",
		"author_email":         "your.email@example.com",
		"description":          "A FastAPI project with AI capabilities",
		"version":              "0.1.0",
		"database_type":        "postgresql",
		"include_redis":        "y",
		"include_openai":       "y",
		"include_anthropic":    "y",
		"include_gemini":       "n",
		"include_monitoring":   "n",
		"include_load_testing": "n",
		"use_https":            "n",
		"domain_name":          "localhost",
		"aws_region":           "us-east-1",
		"environment":          "development",
		"log_level":            "INFO",
	}
}

// List returns the built-in configuration matrix. The list covers the
// supported database backends, AI provider combinations, regional and
// HTTPS variants, plus the minimal and full-featured extremes.
func List() ([]types.Configuration, error) {
	configs := []types.Configuration{
		{
			Name:  "minimal",
			Quick: true,
			Params: map[string]string{
				"project_name":      "Minimal Project",
				"database_type":     "sqlite",
				"include_redis":     "n",
				"include_openai":    "n",
				"include_anthropic": "n",
				"include_gemini":    "n",
			},
		},
		{
			Name:  "full",
			Quick: true,
			Params: map[string]string{
				"project_name":         "Full Featured Project",
				"database_type":        "postgresql",
				"include_redis":        "y",
				"include_openai":       "y",
				"include_anthropic":    "y",
				"include_gemini":       "y",
				"include_monitoring":   "y",
				"include_load_testing": "y",
				"use_https":            "y",
				"domain_name":          "api.mycompany.com",
				"aws_region":           "us-west-2",
				"environment":          "production",
			},
		},
		{
			Name: "postgresql",
			Params: map[string]string{
				"project_name":       "PostgreSQL Project",
				"database_type":      "postgresql",
				"include_redis":      "y",
				"include_monitoring": "y",
			},
		},
		{
			Name: "mysql",
			Params: map[string]string{
				"project_name":  "MySQL Project",
				"database_type": "mysql",
				"include_redis": "n",
				"environment":   "production",
			},
		},
		{
			Name: "sqlite",
			Params: map[string]string{
				"project_name":  "SQLite Project",
				"database_type": "sqlite",
				"include_redis": "n",
			},
		},
		{
			Name: "openai-only",
			Params: map[string]string{
				"project_name":      "OpenAI Only Project",
				"include_openai":    "y",
				"include_anthropic": "n",
				"include_gemini":    "n",
			},
		},
		{
			Name: "anthropic-only",
			Params: map[string]string{
				"project_name":      "Anthropic Only Project",
				"include_openai":    "n",
				"include_anthropic": "y",
				"include_gemini":    "n",
			},
		},
		{
			Name: "gemini-only",
			Params: map[string]string{
				"project_name":      "Gemini Only Project",
				"include_openai":    "n",
				"include_anthropic": "n",
				"include_gemini":    "y",
			},
		},
		{
			Name: "no-ai-providers",
			Params: map[string]string{
				"project_name":      "No AI Project",
				"include_openai":    "n",
				"include_anthropic": "n",
				"include_gemini":    "n",
			},
		},
		{
			Name: "eu-west-staging",
			Params: map[string]string{
				"project_name": "EU Staging Project",
				"aws_region":   "eu-west-1",
				"environment":  "staging",
				"log_level":    "DEBUG",
			},
		},
		{
			Name: "https-production",
			Params: map[string]string{
				"project_name": "HTTPS Project",
				"use_https":    "y",
				"domain_name":  "myapi.example.com",
				"environment":  "production",
			},
		},
	}
	if err := validate(configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// Load reads a configuration matrix from a YAML file, replacing the
// built-in list. The file is a sequence of configurations:
//
//	- name: custom
//	  quick: true
//	  params:
//	    database_type: postgresql
func Load(path string) ([]types.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix file: %w", err)
	}

	var configs []types.Configuration
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("failed to parse matrix file %s: %w", path, err)
	}

	if err := validate(configs); err != nil {
		return nil, fmt.Errorf("invalid matrix file %s: %w", path, err)
	}
	return configs, nil
}

// QuickSubset filters a matrix down to the quick-mode configurations.
// Falls back to the full list if nothing is tagged, so quick mode never
// silently validates zero configurations.
func QuickSubset(configs []types.Configuration) []types.Configuration {
	var quick []types.Configuration
	for _, c := range configs {
		if c.Quick {
			quick = append(quick, c)
		}
	}
	if len(quick) == 0 {
		return configs
	}
	return quick
}

func validate(configs []types.Configuration) error {
	if len(configs) == 0 {
		return ErrEmptyMatrix
	}
	seen := make(map[string]bool, len(configs))
	for _, c := range configs {
		if c.Name == "" {
			return fmt.Errorf("configuration with empty name: %w", ErrDuplicateNames)
		}
		if seen[c.Name] {
			return fmt.Errorf("configuration %q: %w", c.Name, ErrDuplicateNames)
		}
		seen[c.Name] = true
	}
	return nil
}
