package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/barisgit/KiLM/internal/config"
	"github.com/barisgit/KiLM/internal/library"
	"github.com/barisgit/KiLM/internal/ui"
)

// Init and add-3d command flags
var (
	initName         string
	initDescription  string
	initSetCurrent   bool
	initForce        bool
	add3DName        string
	add3DDescription string
	add3DDirectory   string
	add3DForce       bool
)

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Name for this library collection (automatic if not provided)")
	initCmd.Flags().StringVar(&initDescription, "description", "", "Description for this library collection")
	initCmd.Flags().BoolVar(&initSetCurrent, "set-current", true, "Set this as the current active library")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing metadata file if present")

	add3DCmd.Flags().StringVar(&add3DName, "name", "", "Name for this 3D models collection (automatic if not provided)")
	add3DCmd.Flags().StringVar(&add3DDescription, "description", "", "Description for this 3D models collection")
	add3DCmd.Flags().StringVar(&add3DDirectory, "directory", "", "Directory containing 3D models (default: current directory)")
	add3DCmd.Flags().BoolVar(&add3DForce, "force", false, "Overwrite existing metadata file if present")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(add3DCmd)
}

// initCmd initializes the current directory as a library collection
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a KiCad library collection",
	Long: `Initialize the current directory as a KiCad library collection.

Creates the symbols/, footprints/, and templates/ folders when missing,
writes a kilm.yaml metadata sidecar, and registers the collection in
kilm's configuration. Intended for version-controlled collections of
symbols and footprints, not for 3D model directories.`,
	Example: `  # Initialize the current directory
  kilm init

  # Initialize with an explicit name
  kilm init --name company-parts --description "Company part libraries"`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine current directory: %w", err)
	}
	ui.Info("Initializing KiCad library at: %s", dir)

	meta, err := resolveMetadata(dir, initName, initDescription, initForce,
		library.ReadMetadata, library.DefaultMetadata)
	if err != nil {
		return err
	}

	var created, existing []string
	for _, folder := range []string{library.SymbolsDir, library.FootprintsDir, library.TemplatesDir} {
		folderPath := filepath.Join(dir, folder)
		if info, err := os.Stat(folderPath); err == nil && info.IsDir() {
			existing = append(existing, folder)
			continue
		}
		if err := os.MkdirAll(folderPath, 0o755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", folder, err)
		}
		created = append(created, folder)
	}
	if len(existing) > 0 {
		ui.Info("Found existing folders: %v", existing)
	}
	if len(created) > 0 {
		ui.Info("Created new folders: %v", created)
	}

	meta.Capabilities = &library.Capabilities{Symbols: true, Footprints: true, Templates: true}
	if err := library.WriteMetadata(dir, meta); err != nil {
		return err
	}

	registry, err := config.Load()
	if err != nil {
		return err
	}
	registry.AddLibrary(meta.Name, dir, config.TypeGitHub)
	if initSetCurrent {
		registry.SetCurrent(dir)
	}
	if err := registry.Save(); err != nil {
		return err
	}

	ui.Success("Library '%s' initialized successfully!", meta.Name)
	ui.KeyValue("Type", "GitHub library (symbols, footprints, templates)")
	ui.KeyValue("Path", dir)
	if initSetCurrent {
		ui.Info("This is now your current active library.")
	}
	ui.Muted("\nTo add a 3D models directory (typically stored in the cloud), use:")
	ui.Muted("  kilm add-3d --name my-3d-models --directory /path/to/3d/models")

	return nil
}

// add3DCmd registers a cloud-synced 3D model directory
var add3DCmd = &cobra.Command{
	Use:   "add-3d",
	Short: "Add a cloud-based 3D models directory",
	Long: `Register a directory containing 3D models with kilm.

Intended for model collections synced through cloud storage (Dropbox,
Google Drive, ...) rather than version control. Writes a .kilm_metadata
sidecar and records the directory in kilm's configuration so it can be
used with 'kilm setup --kicad-3d-dir'.`,
	Example: `  # Register the current directory
  kilm add-3d

  # Register an explicit directory with a name
  kilm add-3d --name cloud-models --directory ~/Dropbox/kicad-3d`,
	RunE: runAdd3D,
}

func runAdd3D(cmd *cobra.Command, args []string) error {
	dir := add3DDirectory
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}
		dir = cwd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("3D models directory not found: %s", dir)
	}
	ui.Info("Adding cloud-based 3D models directory: %s", dir)

	meta, err := resolveMetadata(dir, add3DName, add3DDescription, add3DForce,
		library.ReadCloudMetadata, library.DefaultCloudMetadata)
	if err != nil {
		return err
	}

	modelCount := library.CountModels(dir)
	if modelCount == 0 {
		ui.Warning("No 3D model files found in this directory.")
		if !ui.Confirm("Continue anyway?", true) {
			ui.Info("Operation cancelled.")
			return nil
		}
	}
	meta.ModelCount = modelCount
	if err := library.WriteCloudMetadata(dir, meta); err != nil {
		return err
	}

	registry, err := config.Load()
	if err != nil {
		return err
	}
	registry.AddLibrary(meta.Name, dir, config.TypeCloud)
	if err := registry.Save(); err != nil {
		return err
	}

	ui.Success("3D models directory '%s' added successfully!", meta.Name)
	ui.KeyValue("Path", dir)
	if modelCount > 0 {
		ui.Info("Found %d 3D model files.", modelCount)
	}
	ui.Muted("\nYou can use this directory with:")
	ui.Muted("  kilm setup --kicad-3d-dir '%s'", dir)

	return nil
}

// resolveMetadata merges an existing metadata sidecar with command-line
// overrides, generating defaults when no sidecar exists or force is set.
func resolveMetadata(dir, name, description string, force bool,
	read func(string) (*library.Metadata, error),
	defaults func(string) *library.Metadata) (*library.Metadata, error) {

	meta, err := read(dir)
	if err != nil {
		return nil, err
	}

	if meta == nil || force {
		meta = defaults(dir)
	} else {
		ui.Info("Found existing metadata file; using existing name: %s", meta.Name)
		meta.UpdatedWith = "kilm"
	}
	if name != "" {
		meta.Name = name
	}
	if description != "" {
		meta.Description = description
	}
	return meta, nil
}
