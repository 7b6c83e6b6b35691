package version

import "testing"

func TestVersionHasDefaultValue(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersionOverridable(t *testing.T) {
	orig := Version
	Version = "1.2.3"
	if Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", Version, "1.2.3")
	}
	Version = orig
}

func TestOptionalFieldsCanBeEmpty(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	GitCommit, BuildDate = "", ""
	if GitCommit != "" || BuildDate != "" {
		t.Error("GitCommit and BuildDate should be empty")
	}
	GitCommit, BuildDate = origCommit, origDate
}
