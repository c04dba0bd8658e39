package kicadcfg

import (
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/barisgit/KiLM/internal/libtable"
)

// ReadEnvVars returns the environment variable bindings currently recorded
// in the settings document, with the keys in document order.
func ReadEnvVars(configDir string) (map[string]string, []string, error) {
	path, doc, err := readSettings(configDir)
	if err != nil {
		return nil, nil, err
	}
	return readEnvVars(path, doc)
}

func readEnvVars(path, doc string) (map[string]string, []string, error) {
	value := gjson.Get(doc, envVarsPath)
	if !value.Exists() {
		return nil, nil, nil
	}
	if !value.IsObject() {
		return nil, nil, NewFormatError("environment.vars is not a JSON object", path, nil)
	}

	vars := make(map[string]string)
	var keys []string
	value.ForEach(func(key, val gjson.Result) bool {
		vars[key.String()] = val.String()
		keys = append(keys, key.String())
		return true
	})
	return vars, keys, nil
}

// PinnedLibraries returns the pinned symbol and footprint library names
// currently recorded in the settings document.
func PinnedLibraries(configDir string) (symbols, footprints []string, err error) {
	path, doc, err := readSettings(configDir)
	if err != nil {
		return nil, nil, err
	}
	symbols, err = pinnedList(path, doc, pinnedSymbolsPath)
	if err != nil {
		return nil, nil, err
	}
	footprints, err = pinnedList(path, doc, pinnedFpPath)
	if err != nil {
		return nil, nil, err
	}
	return symbols, footprints, nil
}

// ConfiguredLibraries returns the entries registered in the symbol and
// footprint tables of a KiCad configuration directory.
func ConfiguredLibraries(configDir string) (symbols, footprints []libtable.Entry, err error) {
	symbols, err = libtable.Parse(filepath.Join(configDir, SymbolTableFile))
	if err != nil {
		return nil, nil, err
	}
	footprints, err = libtable.Parse(filepath.Join(configDir, FootprintTableFile))
	if err != nil {
		return nil, nil, err
	}
	return symbols, footprints, nil
}
