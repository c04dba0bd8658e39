package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barisgit/KiLM/internal/config"
	"github.com/barisgit/KiLM/internal/kicadcfg"
	"github.com/barisgit/KiLM/internal/library"
	"github.com/barisgit/KiLM/internal/shellenv"
	"github.com/barisgit/KiLM/internal/ui"
)

// List command flags
var listLibDir string

func init() {
	listCmd.Flags().StringVar(&listLibDir, "kicad-lib-dir", "", "KiCad library directory (uses KICAD_USER_LIB if not specified)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// statusCmd shows the current KiCad configuration
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current KiCad configuration status",
	Long: `Show the current KiCad configuration status.

Displays the active KiCad configuration directory, the environment
variables and pinned libraries recorded in kicad_common.json, and the
libraries registered in the symbol and footprint tables.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	configDir, err := kicadcfg.FindConfigDir()
	if err != nil {
		return fmt.Errorf("failed to find KiCad configuration: %w", err)
	}
	ui.Info("KiCad configuration directory: %s", configDir)

	vars, keys, err := kicadcfg.ReadEnvVars(configDir)
	ui.Header("Environment Variables in KiCad")
	if err != nil {
		ui.Error("Error reading KiCad common configuration: %v", err)
	} else if len(keys) == 0 {
		ui.Muted("  No environment variables set")
	} else {
		for _, key := range keys {
			ui.KeyValue(key, vars[key])
		}
	}

	pinnedSymbols, pinnedFootprints, err := kicadcfg.PinnedLibraries(configDir)
	ui.Header("Pinned Libraries in KiCad")
	if err != nil {
		ui.Error("Error reading pinned libraries: %v", err)
	} else if len(pinnedSymbols) == 0 && len(pinnedFootprints) == 0 {
		ui.Muted("  No pinned libraries found")
	} else {
		for _, name := range pinnedSymbols {
			ui.Item("%s (symbols)", name)
		}
		for _, name := range pinnedFootprints {
			ui.Item("%s (footprints)", name)
		}
	}

	symbols, footprints, err := kicadcfg.ConfiguredLibraries(configDir)
	if err != nil {
		return fmt.Errorf("failed to list configured libraries: %w", err)
	}

	ui.Header("Configured Symbol Libraries")
	if len(symbols) == 0 {
		ui.Muted("  No symbol libraries configured")
	} else {
		for _, entry := range symbols {
			ui.Item("%s: %s", entry.Name, entry.URI)
		}
	}

	ui.Header("Configured Footprint Libraries")
	if len(footprints) == 0 {
		ui.Muted("  No footprint libraries configured")
	} else {
		for _, entry := range footprints {
			ui.Item("%s: %s", entry.Name, entry.URI)
		}
	}

	return nil
}

// listCmd lists the libraries found in a library directory
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available KiCad libraries",
	Long: `List the symbol and footprint libraries found in a library directory.

The directory is scanned for symbols/*.kicad_sym files and
footprints/*.pretty directories.`,
	Example: `  # List libraries under KICAD_USER_LIB
  kilm list

  # List libraries in an explicit directory
  kilm list --kicad-lib-dir ~/kicad-libs`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	libDir := listLibDir
	if libDir == "" {
		libDir = shellenv.Find(libDirEnvVar)
		if libDir == "" {
			return fmt.Errorf("%s not set and --kicad-lib-dir not provided", libDirEnvVar)
		}
	}
	libDir, err := resolveLibraryBase(shellenv.ExpandUser(libDir))
	if err != nil {
		return err
	}

	symbols, footprints, err := library.ListLibraries(libDir)
	if err != nil {
		return err
	}

	ui.Info("Libraries in %s:", libDir)

	ui.Header("Symbol Libraries")
	if len(symbols) == 0 {
		ui.Muted("  No symbol libraries found")
	} else {
		for _, name := range symbols {
			ui.Item("%s", name)
		}
	}

	ui.Header("Footprint Libraries")
	if len(footprints) == 0 {
		ui.Muted("  No footprint libraries found")
	} else {
		for _, name := range footprints {
			ui.Item("%s", name)
		}
	}

	return nil
}

// configCmd shows kilm's own registered library collections
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show registered library collections",
	Long: `Show the library collections registered with kilm.

Collections are registered with 'kilm init' (GitHub-hosted symbol and
footprint collections) and 'kilm add-3d' (cloud-synced 3D model
directories).`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	registry, err := config.Load()
	if err != nil {
		return err
	}

	if len(registry.Libraries) == 0 {
		ui.Info("No library collections registered. Use 'kilm init' to register one.")
		return nil
	}

	ui.Header("Registered Library Collections")
	for _, lib := range registry.Libraries {
		marker := " "
		if lib.Path == registry.CurrentPath {
			marker = "*"
		}
		ui.Info("%s %s (%s)", marker, lib.Name, lib.Type)
		ui.Muted("    %s", lib.Path)
	}
	ui.Muted("\n* current library")
	ui.Info("\nBackup retention: %d backups per file", registry.MaxBackups())

	return nil
}
