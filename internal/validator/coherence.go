package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// requirementMarkers maps a context toggle to the requirements.txt lines
// that must be present exactly when the toggle is "y".
var requirementMarkers = map[string][]string{
	"include_redis":     {"redis=="},
	"include_openai":    {"openai=="},
	"include_anthropic": {"anthropic=="},
	"include_gemini":    {"google-generativeai=="},
}

// databaseDrivers maps a database_type to the driver lines its
// requirements file must carry.
var databaseDrivers = map[string][]string{
	"postgresql": {"asyncpg", "psycopg2-binary"},
	"mysql":      {"aiomysql", "PyMySQL"},
	"sqlite":     {"aiosqlite"},
}

// Coherence verifies that configuration-dependent content actually
// matches the substitution context that produced it: selected features
// leave their dependency and service stanzas behind, deselected ones
// leave nothing. Files absent from the tree are skipped here; their
// absence is the structural validator's finding.
func Coherence(result types.GenerationResult, context map[string]string) []types.Finding {
	findings := []types.Finding{}
	findings = append(findings, checkRequirements(result.OutputDir, context)...)
	findings = append(findings, checkCompose(result.OutputDir, context)...)
	return findings
}

func checkRequirements(root string, context map[string]string) []types.Finding {
	const rel = "requirements.txt"
	content, ok := readText(root, rel)
	if !ok {
		return nil
	}

	findings := []types.Finding{}
	dbType := context["database_type"]
	for _, driver := range databaseDrivers[dbType] {
		if !strings.Contains(content, driver) {
			findings = append(findings, types.Finding{
				Kind:    types.FindingCoherence,
				Path:    rel,
				Message: fmt.Sprintf("%s selected but %s dependency missing", dbType, driver),
			})
		}
	}

	for key, markers := range requirementMarkers {
		enabled := context[key] == "y"
		for _, marker := range markers {
			present := strings.Contains(content, marker)
			if enabled && !present {
				findings = append(findings, types.Finding{
					Kind:    types.FindingCoherence,
					Path:    rel,
					Message: fmt.Sprintf("%s enabled but %s dependency missing", key, strings.TrimSuffix(marker, "==")),
				})
			} else if !enabled && present {
				findings = append(findings, types.Finding{
					Kind:    types.FindingCoherence,
					Path:    rel,
					Message: fmt.Sprintf("%s disabled but %s dependency present", key, strings.TrimSuffix(marker, "==")),
				})
			}
		}
	}
	return findings
}

func checkCompose(root string, context map[string]string) []types.Finding {
	const rel = "docker-compose.yml"
	content, ok := readText(root, rel)
	if !ok {
		return nil
	}

	findings := []types.Finding{}
	redisEnabled := context["include_redis"] == "y"
	redisPresent := strings.Contains(content, "redis:")
	if redisEnabled && !redisPresent {
		findings = append(findings, types.Finding{
			Kind:    types.FindingCoherence,
			Path:    rel,
			Message: "redis enabled but no redis service in docker-compose.yml",
		})
	} else if !redisEnabled && redisPresent {
		findings = append(findings, types.Finding{
			Kind:    types.FindingCoherence,
			Path:    rel,
			Message: "redis disabled but redis service present in docker-compose.yml",
		})
	}

	switch context["database_type"] {
	case "postgresql":
		if !strings.Contains(content, "postgres:") {
			findings = append(findings, types.Finding{
				Kind:    types.FindingCoherence,
				Path:    rel,
				Message: "postgresql selected but no postgres service in docker-compose.yml",
			})
		}
	case "mysql":
		if !strings.Contains(content, "mysql:") {
			findings = append(findings, types.Finding{
				Kind:    types.FindingCoherence,
				Path:    rel,
				Message: "mysql selected but no mysql service in docker-compose.yml",
			})
		}
	}
	return findings
}

func readText(root, rel string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", false
	}
	return string(data), true
}
