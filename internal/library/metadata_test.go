package library

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMetadataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	meta := &Metadata{
		Name:        "parts",
		Description: "Team parts library",
		Type:        "github",
		Version:     "1.0.0",
		Capabilities: &Capabilities{
			Symbols:    true,
			Footprints: true,
		},
		CreatedWith: "kilm",
		UpdatedWith: "kilm",
	}

	if err := WriteMetadata(dir, meta); err != nil {
		t.Fatalf("WriteMetadata() error = %v", err)
	}
	got, err := ReadMetadata(dir)
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if got == nil {
		t.Fatal("ReadMetadata() = nil after write")
	}
	if got.Name != meta.Name || got.Type != meta.Type || got.Version != meta.Version {
		t.Errorf("ReadMetadata() = %+v, want %+v", got, meta)
	}
	if got.Capabilities == nil || !got.Capabilities.Symbols || !got.Capabilities.Footprints || got.Capabilities.Templates {
		t.Errorf("capabilities = %+v", got.Capabilities)
	}
}

func TestReadMetadataMissing(t *testing.T) {
	meta, err := ReadMetadata(t.TempDir())
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if meta != nil {
		t.Errorf("ReadMetadata() = %+v, want nil for missing sidecar", meta)
	}
}

func TestReadMetadataInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, MetadataFile), []byte(":\n  - ["), 0o644); err != nil {
		t.Fatalf("failed to write sidecar: %v", err)
	}
	if _, err := ReadMetadata(dir); err == nil {
		t.Error("ReadMetadata() on invalid YAML succeeded, want error")
	}
}

func TestCloudMetadataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	meta := &Metadata{
		Name:        "models",
		Description: "Shared 3D models",
		Type:        "cloud",
		Version:     "1.0.0",
		ModelCount:  42,
		CreatedWith: "kilm",
		UpdatedWith: "kilm",
	}

	if err := WriteCloudMetadata(dir, meta); err != nil {
		t.Fatalf("WriteCloudMetadata() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, CloudMetadataFile))
	if err != nil {
		t.Fatalf("failed to read sidecar: %v", err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("cloud metadata file does not end with a newline")
	}

	got, err := ReadCloudMetadata(dir)
	if err != nil {
		t.Fatalf("ReadCloudMetadata() error = %v", err)
	}
	if got == nil || got.Name != "models" || got.ModelCount != 42 {
		t.Errorf("ReadCloudMetadata() = %+v", got)
	}
}

func TestDefaultMetadataDetectsCapabilities(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "team-lib")
	for _, sub := range []string{SymbolsDir, TemplatesDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", sub, err)
		}
	}

	meta := DefaultMetadata(dir)
	if meta.Name != "team-lib" {
		t.Errorf("Name = %q, want team-lib", meta.Name)
	}
	if meta.Type != "github" {
		t.Errorf("Type = %q, want github", meta.Type)
	}
	caps := meta.Capabilities
	if caps == nil || !caps.Symbols || caps.Footprints || !caps.Templates {
		t.Errorf("capabilities = %+v, want symbols and templates only", caps)
	}
}

func TestDefaultCloudMetadataCountsModels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	for _, name := range []string{"a.step", "b.wrl"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("m"), 0o644); err != nil {
			t.Fatalf("failed to write model: %v", err)
		}
	}

	meta := DefaultCloudMetadata(dir)
	if meta.Type != "cloud" {
		t.Errorf("Type = %q, want cloud", meta.Type)
	}
	if meta.ModelCount != 2 {
		t.Errorf("ModelCount = %d, want 2", meta.ModelCount)
	}
}
