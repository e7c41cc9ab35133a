package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	origCommit := Commit
	t.Cleanup(func() { Commit = origCommit })

	Commit = "unknown"
	if Info() != Version {
		t.Errorf("Info() = %q, want %q when commit is unknown", Info(), Version)
	}

	Commit = "abcdef1234567890"
	got := Info()
	if !strings.Contains(got, "abcdef1") {
		t.Errorf("Info() = %q, expected short commit hash", got)
	}
	if strings.Contains(got, "abcdef12") {
		t.Errorf("Info() = %q, commit should be truncated to 7 chars", got)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.Contains(full, Version) {
		t.Errorf("Full() should contain version, got %q", full)
	}
	if !strings.Contains(full, "Commit:") {
		t.Errorf("Full() should contain commit line, got %q", full)
	}
	if !strings.Contains(full, "Built:") {
		t.Errorf("Full() should contain build date line, got %q", full)
	}
}
