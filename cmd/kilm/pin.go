package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/barisgit/KiLM/internal/backup"
	"github.com/barisgit/KiLM/internal/kicadcfg"
	"github.com/barisgit/KiLM/internal/logging"
	"github.com/barisgit/KiLM/internal/ui"
)

// Pin/unpin command flags
var (
	pinSymbols      []string
	pinFootprints   []string
	pinMaxBackups   int
	pinDryRun       bool
	unpinSymbols    []string
	unpinFootprints []string
	unpinAll        bool
	unpinMaxBackups int
	unpinDryRun     bool
)

func init() {
	pinCmd.Flags().StringSliceVarP(&pinSymbols, "symbols", "s", nil, "Symbol library names to pin")
	pinCmd.Flags().StringSliceVarP(&pinFootprints, "footprints", "f", nil, "Footprint library names to pin")
	pinCmd.Flags().IntVar(&pinMaxBackups, "max-backups", backup.DefaultMaxBackups, "Maximum number of backups to keep per file")
	pinCmd.Flags().BoolVar(&pinDryRun, "dry-run", false, "Show what would be done without making changes")

	unpinCmd.Flags().StringSliceVarP(&unpinSymbols, "symbols", "s", nil, "Symbol library names to unpin")
	unpinCmd.Flags().StringSliceVarP(&unpinFootprints, "footprints", "f", nil, "Footprint library names to unpin")
	unpinCmd.Flags().BoolVar(&unpinAll, "all", false, "Unpin every library")
	unpinCmd.Flags().IntVar(&unpinMaxBackups, "max-backups", backup.DefaultMaxBackups, "Maximum number of backups to keep per file")
	unpinCmd.Flags().BoolVar(&unpinDryRun, "dry-run", false, "Show what would be done without making changes")

	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
}

// pinCmd pins libraries in KiCad for quick access
var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Pin favorite libraries in KiCad",
	Long: `Pin libraries in KiCad for quick access.

Pinned libraries appear at the top of KiCad's library pickers. Pinning is
idempotent: names already pinned are left alone and no backup is created
when nothing changes.`,
	Example: `  # Pin two symbol libraries and one footprint library
  kilm pin -s MyParts -s Connectors -f MyParts

  # Preview without changing anything
  kilm pin -s MyParts --dry-run`,
	RunE: runPin,
}

func runPin(cmd *cobra.Command, args []string) error {
	if len(pinSymbols) == 0 && len(pinFootprints) == 0 {
		return fmt.Errorf("nothing to pin: use --symbols and/or --footprints")
	}

	configDir, err := kicadcfg.FindConfigDir()
	if err != nil {
		return fmt.Errorf("failed to find KiCad configuration: %w", err)
	}

	changed, err := mergePins(configDir, pinSymbols, pinFootprints, pinDryRun, pinMaxBackups)
	if err != nil {
		return err
	}

	switch {
	case !changed:
		ui.Info("All requested libraries are already pinned")
	case pinDryRun:
		ui.Info("Would pin %d symbol and %d footprint libraries", len(pinSymbols), len(pinFootprints))
		ui.Info("Dry run: no changes were made")
	default:
		ui.Success("Pinned libraries in KiCad. Restart KiCad for changes to take effect.")
	}
	return nil
}

// unpinCmd removes libraries from KiCad's pinned lists
var unpinCmd = &cobra.Command{
	Use:   "unpin",
	Short: "Unpin libraries in KiCad",
	Long: `Remove libraries from KiCad's pinned-library lists.

Reports the number of libraries actually removed, which may be fewer than
requested when some names were not pinned. With --all both lists are
cleared entirely.`,
	Example: `  # Unpin one library from both lists
  kilm unpin -s MyParts -f MyParts

  # Clear all pinned libraries
  kilm unpin --all`,
	RunE: runUnpin,
}

func runUnpin(cmd *cobra.Command, args []string) error {
	if !unpinAll && len(unpinSymbols) == 0 && len(unpinFootprints) == 0 {
		return fmt.Errorf("nothing to unpin: use --symbols, --footprints, or --all")
	}

	configDir, err := kicadcfg.FindConfigDir()
	if err != nil {
		return fmt.Errorf("failed to find KiCad configuration: %w", err)
	}

	// Decision pass first so the backup captures pre-change content and is
	// only taken when something is actually removed.
	removed, changed, err := kicadcfg.UnpinLibraries(configDir, unpinSymbols, unpinFootprints, unpinAll, true)
	if err != nil {
		return err
	}
	commonPath := filepath.Join(configDir, kicadcfg.CommonSettingsFile)
	if changed && unpinDryRun {
		logging.LogDryRun(commonPath, "unpin libraries")
	}
	if changed && !unpinDryRun {
		if _, err := backup.Create(commonPath, unpinMaxBackups); err != nil {
			return err
		}
		if removed, changed, err = kicadcfg.UnpinLibraries(configDir, unpinSymbols, unpinFootprints, unpinAll, false); err != nil {
			return err
		}
		logging.LogFileWrite(commonPath, "unpin libraries")
	}

	switch {
	case !changed:
		ui.Info("No pinned libraries matched; nothing to unpin")
	case unpinDryRun:
		ui.Info("Would unpin %d libraries", removed)
		ui.Info("Dry run: no changes were made")
	default:
		ui.Success("Unpinned %d libraries. Restart KiCad for changes to take effect.", removed)
	}
	return nil
}
