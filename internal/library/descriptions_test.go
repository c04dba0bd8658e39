package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/barisgit/KiLM/internal/kicadcfg"
)

func TestDescribeReadsSidecar(t *testing.T) {
	root := t.TempDir()
	sidecar := "symbols:\n" +
		"  MyParts: \"Curated in-house symbols\"\n" +
		"footprints:\n" +
		"  MyParts: \"Curated in-house footprints\"\n"
	if err := os.WriteFile(filepath.Join(root, DescriptionsFile), []byte(sidecar), 0o644); err != nil {
		t.Fatalf("failed to write sidecar: %v", err)
	}

	if got := Describe(kicadcfg.KindSymbols, "MyParts", root); got != "Curated in-house symbols" {
		t.Errorf("Describe(symbols) = %q", got)
	}
	if got := Describe(kicadcfg.KindFootprints, "MyParts", root); got != "Curated in-house footprints" {
		t.Errorf("Describe(footprints) = %q", got)
	}
}

func TestDescribeDefaults(t *testing.T) {
	tests := []struct {
		name string
		kind string
		want string
	}{
		{"symbols", kicadcfg.KindSymbols, "MyParts symbol library"},
		{"footprints", kicadcfg.KindFootprints, "MyParts footprint library"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.kind, "MyParts", t.TempDir()); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeFallsBackOnBadSidecar(t *testing.T) {
	tests := []struct {
		name    string
		sidecar string
	}{
		{"invalid YAML", ":\n  - ["},
		{"name not listed", "symbols:\n  Other: \"something\"\n"},
		{"empty description", "symbols:\n  MyParts: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if err := os.WriteFile(filepath.Join(root, DescriptionsFile), []byte(tt.sidecar), 0o644); err != nil {
				t.Fatalf("failed to write sidecar: %v", err)
			}
			if got := Describe(kicadcfg.KindSymbols, "MyParts", root); got != "MyParts symbol library" {
				t.Errorf("Describe() = %q, want default", got)
			}
		})
	}
}
