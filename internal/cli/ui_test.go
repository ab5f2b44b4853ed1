package cli

import (
	"bytes"
	"strings"
	"testing"
)

// captureOutput redirects user-facing output to a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name    string
		leaves  int
		seed    uint64
		cached  bool
		want    []string
		notWant []string
	}{
		{"fresh", 42, 7, false, []string{"42 regions", "seed 7", "fresh"}, []string{"cached"}},
		{"cached", 3, 1, true, []string{"3 regions", "seed 1", "cached"}, []string{"fresh"}},
		{"unknown leaves", 0, 9, false, []string{"seed 9"}, []string{"regions"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			printStats(tt.leaves, tt.seed, tt.cached)
			got := out.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("printStats() = %q, missing %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("printStats() = %q, should not contain %q", got, w)
				}
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	out := captureOutput(t)
	printSuccess("wrote %d files", 2)
	printError("boom")
	printInfo("hello")
	printFile("art.png")
	printNextStep("Preview", "mondrian show art.png")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}
	for i, want := range []string{"✓ wrote 2 files", "✗ boom", "› hello", "→ art.png", "mondrian show art.png"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}
}
