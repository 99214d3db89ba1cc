package generator

import "testing"

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "My AI Project", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", string(make([]byte, 101)), true},
		{"newline", "bad\nname", true},
		{"tab", "bad\tname", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjectName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProjectSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid slug", "my_project", false},
		{"valid with hyphen", "my-project", false},
		{"valid with digits", "project2", false},
		{"empty", "", true},
		{"too short", "a", true},
		{"starts with digit", "2project", true},
		{"leading underscore", "_project", true},
		{"trailing hyphen", "project-", true},
		{"consecutive separators", "my__project", true},
		{"uppercase", "MyProject", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectSlug(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjectSlug(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeProjectSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My AI Project", "my_ai_project"},
		{"PostgreSQL Project", "postgresql_project"},
		{"  padded  ", "padded"},
		{"Hyphen-Name", "hyphen_name"},
		{"Weird!!Chars##", "weirdchars"},
		{"multi   spaces", "multi_spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeProjectSlug(tt.input); got != tt.want {
				t.Errorf("SanitizeProjectSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
