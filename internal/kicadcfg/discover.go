package kicadcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Well-known file names inside a KiCad configuration directory.
const (
	SymbolTableFile    = "sym-lib-table"
	FootprintTableFile = "fp-lib-table"
	CommonSettingsFile = "kicad_common.json"
)

// FindConfigDir locates the KiCad configuration directory for the current
// platform and returns the newest version directory inside it.
//
// Platform conventions:
//   - macOS: $HOME/Library/Preferences/kicad
//   - Linux: $HOME/.config/kicad
//   - Windows: %APPDATA%\kicad
//
// KiCad stores per-version configuration in subdirectories (e.g. "7.0",
// "8.0"); the highest-sorting directory containing a digit is selected.
// The directory must contain at least one library table, which KiCad
// creates on first run.
func FindConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, "Library", "Preferences", "kicad")

	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", NewNotFoundError("APPDATA environment variable not set", "")
		}
		baseDir = filepath.Join(appData, "kicad")

	default:
		// Linux and other Unix-like systems
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", "kicad")
	}

	return findVersionDir(baseDir)
}

// findVersionDir selects the newest KiCad version directory under baseDir
// and verifies it contains at least one library table.
func findVersionDir(baseDir string) (string, error) {
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return "", NewNotFoundError(
			"KiCad configuration directory not found; run KiCad at least once before using this tool", baseDir)
	}

	dirEntries, err := os.ReadDir(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to read KiCad configuration directory: %w", err)
	}

	var versionDirs []string
	for _, entry := range dirEntries {
		if !entry.IsDir() {
			continue
		}
		if strings.ContainsAny(entry.Name(), "0123456789") {
			versionDirs = append(versionDirs, entry.Name())
		}
	}
	if len(versionDirs) == 0 {
		return "", NewNotFoundError(
			"no KiCad version directories found; run KiCad at least once before using this tool", baseDir)
	}

	sort.Strings(versionDirs)
	latest := filepath.Join(baseDir, versionDirs[len(versionDirs)-1])

	symTable := filepath.Join(latest, SymbolTableFile)
	fpTable := filepath.Join(latest, FootprintTableFile)
	if !fileExists(symTable) && !fileExists(fpTable) {
		return "", NewNotFoundError(
			"KiCad library tables not found; run KiCad at least once before using this tool", latest)
	}

	return latest, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
