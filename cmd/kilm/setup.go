package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/barisgit/KiLM/internal/backup"
	"github.com/barisgit/KiLM/internal/kicadcfg"
	"github.com/barisgit/KiLM/internal/library"
	"github.com/barisgit/KiLM/internal/logging"
	"github.com/barisgit/KiLM/internal/shellenv"
	"github.com/barisgit/KiLM/internal/ui"
)

// Environment variables that locate the user's library directories.
const (
	libDirEnvVar   = "KICAD_USER_LIB"
	modelDirEnvVar = "KICAD_3D_LIB"
)

// Setup command flags
var (
	setupLibDir     string
	setup3DDir      string
	setupMaxBackups int
	setupDryRun     bool
	setupPin        bool
)

func init() {
	setupCmd.Flags().StringVar(&setupLibDir, "kicad-lib-dir", "", "KiCad library directory (uses KICAD_USER_LIB if not specified)")
	setupCmd.Flags().StringVar(&setup3DDir, "kicad-3d-dir", "", "KiCad 3D models directory (uses KICAD_3D_LIB if not specified)")
	setupCmd.Flags().IntVar(&setupMaxBackups, "max-backups", backup.DefaultMaxBackups, "Maximum number of backups to keep per file")
	setupCmd.Flags().BoolVar(&setupDryRun, "dry-run", false, "Show what would be done without making changes")
	setupCmd.Flags().BoolVar(&setupPin, "pin-libraries", true, "Pin libraries in KiCad for quick access")

	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure KiCad to use your libraries",
	Long: `Configure KiCad to use the libraries in the specified directory.

Setup performs three independent updates against the active KiCad
configuration: it merges the library environment variables into
kicad_common.json, registers any unregistered symbol and footprint
libraries in the library tables, and pins the libraries for quick access.
Each file is backed up before it is modified: a failure in one update does
not prevent the others from being attempted.`,
	Example: `  # Configure using KICAD_USER_LIB and KICAD_3D_LIB
  kilm setup

  # Preview the changes without touching any file
  kilm setup --dry-run

  # Explicit directories, keep more backups
  kilm setup --kicad-lib-dir ~/kicad-libs --max-backups 10`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	libDir := setupLibDir
	if libDir == "" {
		libDir = shellenv.Find(libDirEnvVar)
		if libDir == "" {
			return fmt.Errorf("%s not set and --kicad-lib-dir not provided", libDirEnvVar)
		}
	}
	modelDir := setup3DDir
	if modelDir == "" {
		modelDir = shellenv.Find(modelDirEnvVar)
		if modelDir == "" {
			ui.Warning("%s not set, 3D models might not work correctly", modelDirEnvVar)
		}
	}

	libDir, err := resolveLibraryBase(shellenv.ExpandUser(libDir))
	if err != nil {
		return err
	}
	if info, err := os.Stat(libDir); err != nil || !info.IsDir() {
		return fmt.Errorf("KiCad library directory not found: %s", libDir)
	}
	if modelDir != "" {
		modelDir = shellenv.ExpandUser(modelDir)
		if info, err := os.Stat(modelDir); err != nil || !info.IsDir() {
			ui.Warning("3D models directory not found: %s (skipping)", modelDir)
			modelDir = ""
		}
	}

	ui.Info("Using KiCad library directory: %s", libDir)
	if modelDir != "" {
		ui.Info("Using KiCad 3D models directory: %s", modelDir)
	}

	configDir, err := kicadcfg.FindConfigDir()
	if err != nil {
		return fmt.Errorf("failed to find KiCad configuration: %w", err)
	}
	ui.Info("Found KiCad configuration at: %s", configDir)

	// The three updates below are independent: collect failures and keep
	// going so one bad file does not block the others.
	var errs []error

	envVars := map[string]string{libDirEnvVar: libDir}
	if modelDir != "" {
		envVars[modelDirEnvVar] = modelDir
	}
	envChanged, err := mergeEnvVars(configDir, envVars, setupDryRun, setupMaxBackups)
	if err != nil {
		ui.Error("Failed to update environment variables: %v", err)
		errs = append(errs, err)
	} else if envChanged {
		if setupDryRun {
			ui.Info("Would update environment variables in KiCad configuration")
		} else {
			ui.Success("Updated environment variables in KiCad configuration")
		}
	} else {
		ui.Info("Environment variables already up to date in KiCad configuration")
	}

	symbols, footprints, err := library.ListLibraries(libDir)
	if err != nil {
		return err
	}
	if len(symbols) == 0 && len(footprints) == 0 {
		return fmt.Errorf("no libraries found in %s", libDir)
	}

	tablesChanged, addedCount, err := syncTables(configDir, libDir, symbols, footprints, setupDryRun, setupMaxBackups)
	if err != nil {
		ui.Error("Failed to update library tables: %v", err)
		errs = append(errs, err)
	} else if addedCount > 0 {
		if setupDryRun {
			ui.Info("Would add %d libraries to KiCad configuration", addedCount)
		} else {
			ui.Success("Added %d libraries to KiCad configuration", addedCount)
		}
	} else {
		ui.Info("No new libraries to add")
	}

	pinsChanged := false
	if setupPin {
		pinsChanged, err = mergePins(configDir, symbols, footprints, setupDryRun, setupMaxBackups)
		if err != nil {
			ui.Error("Failed to pin libraries: %v", err)
			errs = append(errs, err)
		} else if pinsChanged {
			if setupDryRun {
				ui.Info("Would pin %d symbol and %d footprint libraries in KiCad", len(symbols), len(footprints))
			} else {
				ui.Success("Pinned %d symbol and %d footprint libraries in KiCad", len(symbols), len(footprints))
			}
		} else {
			ui.Info("All libraries already pinned in KiCad")
		}
	}

	if !envChanged && !tablesChanged && !pinsChanged {
		ui.Info("No changes needed, configuration is up to date")
	} else if setupDryRun {
		ui.Info("Dry run: no changes were made")
	} else {
		ui.Success("Setup complete! Restart KiCad for changes to take effect.")
	}

	return errors.Join(errs...)
}

// resolveLibraryBase expands an environment-variable-style base (a bare
// variable name or a ${VAR} reference) to its value; absolute paths pass
// through untouched.
func resolveLibraryBase(base string) (string, error) {
	name := base
	if len(base) > 3 && base[:2] == "${" && base[len(base)-1] == '}' {
		name = base[2 : len(base)-1]
	}
	if filepath.IsAbs(name) || (len(name) > 2 && name[1] == ':') {
		return name, nil
	}
	if value := shellenv.Find(name); value != "" {
		return shellenv.ExpandUser(value), nil
	}
	return "", fmt.Errorf("environment variable %s not found", name)
}

// mergeEnvVars merges environment variable bindings into kicad_common.json,
// backing the file up before the actual write. The decision pass runs
// first, without mutating, so the backup captures the pre-change content
// and is only taken when a change is really needed.
func mergeEnvVars(configDir string, vars map[string]string, dryRun bool, maxBackups int) (bool, error) {
	changed, err := kicadcfg.UpdateEnvVars(configDir, vars, true)
	if err != nil || !changed {
		return changed, err
	}

	commonPath := filepath.Join(configDir, kicadcfg.CommonSettingsFile)
	if dryRun {
		logging.LogDryRun(commonPath, "merge environment variables")
		return changed, nil
	}
	if _, err := backup.Create(commonPath, maxBackups); err != nil {
		return false, err
	}
	changed, err = kicadcfg.UpdateEnvVars(configDir, vars, false)
	if err == nil && changed {
		logging.LogFileWrite(commonPath, "merge environment variables")
	}
	return changed, err
}

// syncTables registers missing libraries in the symbol and footprint
// tables. Existing tables are backed up before the mutating run.
func syncTables(configDir, libDir string, symbols, footprints []string, dryRun bool, maxBackups int) (bool, int, error) {
	req := kicadcfg.SyncRequest{
		LibraryRoot: libDir,
		ConfigDir:   configDir,
		Symbols:     symbols,
		Footprints:  footprints,
		Describe: func(kind, name, _ string) string {
			return library.Describe(kind, name, libDir)
		},
		DryRun: true,
	}
	preview, err := kicadcfg.Sync(req)
	if err != nil {
		return false, 0, err
	}
	if !preview.Changed {
		return false, 0, nil
	}
	if dryRun {
		logging.LogDryRun(filepath.Join(configDir, kicadcfg.SymbolTableFile), "register libraries")
		return preview.Changed, len(preview.Added), nil
	}

	for _, table := range []string{kicadcfg.SymbolTableFile, kicadcfg.FootprintTableFile} {
		tablePath := filepath.Join(configDir, table)
		if _, err := os.Stat(tablePath); err != nil {
			continue
		}
		if _, err := backup.Create(tablePath, maxBackups); err != nil {
			return false, 0, err
		}
	}

	req.DryRun = false
	result, err := kicadcfg.Sync(req)
	if err != nil {
		return false, 0, err
	}
	if result.Changed {
		logging.LogFileWrite(filepath.Join(configDir, kicadcfg.SymbolTableFile), "register libraries")
	}
	return result.Changed, len(result.Added), nil
}

// mergePins pins libraries in kicad_common.json, backing the file up
// before the actual write.
func mergePins(configDir string, symbols, footprints []string, dryRun bool, maxBackups int) (bool, error) {
	changed, err := kicadcfg.PinLibraries(configDir, symbols, footprints, true)
	if err != nil || !changed {
		return changed, err
	}

	commonPath := filepath.Join(configDir, kicadcfg.CommonSettingsFile)
	if dryRun {
		logging.LogDryRun(commonPath, "pin libraries")
		return changed, nil
	}
	if _, err := backup.Create(commonPath, maxBackups); err != nil {
		return false, err
	}
	changed, err = kicadcfg.PinLibraries(configDir, symbols, footprints, false)
	if err == nil && changed {
		logging.LogFileWrite(commonPath, "pin libraries")
	}
	return changed, err
}
