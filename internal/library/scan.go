package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Conventional folder names inside a library root.
const (
	SymbolsDir    = "symbols"
	FootprintsDir = "footprints"
	TemplatesDir  = "templates"
)

// File extensions KiCad uses for libraries.
const (
	symbolExt    = ".kicad_sym"
	footprintExt = ".pretty"
)

// modelExtensions are the 3D model file types counted in cloud directories.
var modelExtensions = []string{".step", ".stp", ".wrl", ".wings"}

// ListLibraries scans a library root and returns the symbol and footprint
// library names found, each sorted. Symbol libraries are symbols/*.kicad_sym
// files; footprint libraries are footprints/*.pretty directories.
func ListLibraries(root string) (symbols, footprints []string, err error) {
	info, statErr := os.Stat(root)
	if statErr != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("library directory not found: %s", root)
	}

	symbols, err = scanDir(filepath.Join(root, SymbolsDir), symbolExt, false)
	if err != nil {
		return nil, nil, err
	}
	footprints, err = scanDir(filepath.Join(root, FootprintsDir), footprintExt, true)
	if err != nil {
		return nil, nil, err
	}
	return symbols, footprints, nil
}

// scanDir lists entries in dir with the given extension, stripped of that
// extension. A missing dir scans as empty: a root may carry only one kind.
func scanDir(dir, ext string, wantDir bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() != wantDir {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	sort.Strings(names)
	return names, nil
}

// CountModels walks a directory tree counting 3D model files.
func CountModels(root string) int {
	count := 0
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, modelExt := range modelExtensions {
			if ext == modelExt {
				count++
				break
			}
		}
		return nil
	})
	return count
}

// HasModels reports whether a directory tree contains any 3D model files.
func HasModels(root string) bool {
	return CountModels(root) > 0
}
