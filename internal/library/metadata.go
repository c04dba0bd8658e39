package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Metadata sidecar file names.
const (
	// MetadataFile marks a GitHub-hosted symbol/footprint collection.
	MetadataFile = "kilm.yaml"
	// CloudMetadataFile marks a cloud-synced 3D model directory.
	CloudMetadataFile = ".kilm_metadata"
)

// Capabilities records which library folders a collection provides.
type Capabilities struct {
	Symbols    bool `yaml:"symbols" json:"symbols"`
	Footprints bool `yaml:"footprints" json:"footprints"`
	Templates  bool `yaml:"templates" json:"templates"`
}

// Metadata describes a library collection. GitHub collections persist it
// as kilm.yaml; cloud 3D directories persist it as .kilm_metadata JSON
// with a model count instead of capabilities.
type Metadata struct {
	Name         string        `yaml:"name" json:"name"`
	Description  string        `yaml:"description" json:"description"`
	Type         string        `yaml:"type" json:"type"`
	Version      string        `yaml:"version" json:"version"`
	Capabilities *Capabilities `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
	ModelCount   int           `yaml:"model_count,omitempty" json:"model_count,omitempty"`
	CreatedWith  string        `yaml:"created_with" json:"created_with"`
	UpdatedWith  string        `yaml:"updated_with" json:"updated_with"`
}

// ReadMetadata reads the kilm.yaml sidecar from a collection directory.
// Returns nil without error when the sidecar does not exist.
func ReadMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read library metadata: %w", err)
	}
	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse library metadata: %w", err)
	}
	return &meta, nil
}

// WriteMetadata writes the kilm.yaml sidecar to a collection directory.
func WriteMetadata(dir string, meta *Metadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode library metadata: %w", err)
	}
	path := filepath.Join(dir, MetadataFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write library metadata: %w", err)
	}
	return nil
}

// ReadCloudMetadata reads the .kilm_metadata JSON sidecar from a 3D model
// directory. Returns nil without error when the sidecar does not exist.
func ReadCloudMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, CloudMetadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read 3D model metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse 3D model metadata: %w", err)
	}
	return &meta, nil
}

// WriteCloudMetadata writes the .kilm_metadata JSON sidecar to a 3D model
// directory.
func WriteCloudMetadata(dir string, meta *Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode 3D model metadata: %w", err)
	}
	path := filepath.Join(dir, CloudMetadataFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write 3D model metadata: %w", err)
	}
	return nil
}

// DefaultMetadata generates metadata for a GitHub collection from the
// directory name and the folders present.
func DefaultMetadata(dir string) *Metadata {
	name := filepath.Base(dir)
	return &Metadata{
		Name:        name,
		Description: "KiCad library " + name,
		Type:        "github",
		Version:     "1.0.0",
		Capabilities: &Capabilities{
			Symbols:    dirExists(filepath.Join(dir, SymbolsDir)),
			Footprints: dirExists(filepath.Join(dir, FootprintsDir)),
			Templates:  dirExists(filepath.Join(dir, TemplatesDir)),
		},
		CreatedWith: "kilm",
		UpdatedWith: "kilm",
	}
}

// DefaultCloudMetadata generates metadata for a cloud 3D model directory.
func DefaultCloudMetadata(dir string) *Metadata {
	name := filepath.Base(dir)
	return &Metadata{
		Name:        name,
		Description: "KiCad 3D model library " + name,
		Type:        "cloud",
		Version:     "1.0.0",
		ModelCount:  CountModels(dir),
		CreatedWith: "kilm",
		UpdatedWith: "kilm",
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
