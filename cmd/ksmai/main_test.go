package main

import "testing"

func TestMainExecute(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	main()
}

func TestApplyOverrides(t *testing.T) {
	defaults := map[string]string{"database_type": "postgresql", "include_redis": "y"}
	merged, err := applyOverrides(defaults, []string{"database_type=sqlite,include_redis=n"})
	if err != nil {
		t.Fatal(err)
	}
	if merged["database_type"] != "sqlite" || merged["include_redis"] != "n" {
		t.Fatalf("overrides not applied: %v", merged)
	}
	if defaults["database_type"] != "postgresql" {
		t.Fatalf("defaults map was mutated")
	}
}

func TestApplyOverridesRejectsMalformedValue(t *testing.T) {
	if _, err := applyOverrides(map[string]string{}, []string{"noequals"}); err == nil {
		t.Fatal("expected error for --set value without '='")
	}
}
