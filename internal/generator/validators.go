package generator

import (
	"fmt"
	"regexp"
	"strings"
)

// slugPattern matches a valid project slug: lowercase letters, digits,
// hyphens and underscores, starting with a letter, no leading/trailing
// or doubled separators.
var slugPattern = regexp.MustCompile(`^[a-z][a-z0-9]*([_-][a-z0-9]+)*$`)

// ValidateProjectName checks a human-readable project name.
// Rules: non-empty, at most 100 characters, no newlines or tabs.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("project name cannot be longer than 100 characters")
	}
	if strings.ContainsAny(name, "\n\t") {
		return fmt.Errorf("project name cannot contain newlines or tabs")
	}
	return nil
}

// ValidateProjectSlug checks a project slug against the slug rules.
func ValidateProjectSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("project slug cannot be empty")
	}
	if len(slug) < 2 || len(slug) > 50 {
		return fmt.Errorf("project slug must be between 2 and 50 characters: %q", slug)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("invalid project slug: %q", slug)
	}
	return nil
}

// SanitizeProjectSlug derives a slug from a project name: lowercased,
// spaces and hyphens collapsed to underscores, other characters dropped.
func SanitizeProjectSlug(name string) string {
	var b strings.Builder
	lastSep := true // swallow leading separators
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSep = false
		case r == ' ' || r == '-' || r == '_':
			if !lastSep {
				b.WriteRune('_')
				lastSep = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}
