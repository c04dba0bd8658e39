package kicadcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSON paths inside kicad_common.json. The rest of the document belongs to
// KiCad; merges patch these keys in place and leave every other byte of the
// file untouched.
const (
	envVarsPath       = "environment.vars"
	pinnedSymbolsPath = "session.pinned_symbol_libs"
	pinnedFpPath      = "session.pinned_fp_libs"
)

// readSettings loads and structurally validates the settings document.
// The document is created by KiCad itself; its absence is a hard error,
// never an invitation to create one.
func readSettings(configDir string) (string, string, error) {
	path := filepath.Join(configDir, CommonSettingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", NewNotFoundError(
				"KiCad common settings not found; run KiCad at least once before using this tool", path)
		}
		return "", "", fmt.Errorf("failed to read KiCad common settings: %w", err)
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return "", "", NewFormatError("KiCad common settings is not a JSON object", path, nil)
	}
	return path, string(data), nil
}

// writeSettings persists a modified settings document.
func writeSettings(path, doc string) error {
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write KiCad common settings: %w", err)
	}
	return nil
}

// UpdateEnvVars merges environment variable bindings into the settings
// document under environment.vars. A key is merged when it is absent or
// bound to a different value; existing equal bindings are left alone. The
// merge is idempotent and the file is rewritten only when at least one
// change was applied. Returns whether any change was (or would be) needed.
func UpdateEnvVars(configDir string, vars map[string]string, dryRun bool) (bool, error) {
	path, doc, err := readSettings(configDir)
	if err != nil {
		return false, err
	}

	current := gjson.Get(doc, envVarsPath)
	if current.Exists() && !current.IsObject() {
		return false, NewFormatError("environment.vars is not a JSON object", path, nil)
	}

	// Deterministic merge order keeps repeated runs byte-identical.
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	changed := false
	for _, key := range keys {
		existing := gjson.Get(doc, envVarsPath+"."+key)
		if existing.Exists() && existing.String() == vars[key] {
			continue
		}
		doc, err = sjson.Set(doc, envVarsPath+"."+key, vars[key])
		if err != nil {
			return false, fmt.Errorf("failed to merge environment variable %s: %w", key, err)
		}
		changed = true
	}

	if changed && !dryRun {
		if err := writeSettings(path, doc); err != nil {
			return false, err
		}
	}
	return changed, nil
}

// PinLibraries adds library names to KiCad's pinned-library lists for quick
// access. Membership is de-duplicated by exact string; names already pinned
// are a no-op and the order of first insertion is preserved. Returns whether
// any change was (or would be) needed.
func PinLibraries(configDir string, symbols, footprints []string, dryRun bool) (bool, error) {
	path, doc, err := readSettings(configDir)
	if err != nil {
		return false, err
	}

	changed := false
	for _, pin := range []struct {
		jsonPath string
		names    []string
	}{
		{pinnedSymbolsPath, symbols},
		{pinnedFpPath, footprints},
	} {
		list, err := pinnedList(path, doc, pin.jsonPath)
		if err != nil {
			return false, err
		}
		merged, listChanged := appendMissing(list, pin.names)
		if !listChanged {
			continue
		}
		doc, err = sjson.Set(doc, pin.jsonPath, merged)
		if err != nil {
			return false, fmt.Errorf("failed to update %s: %w", pin.jsonPath, err)
		}
		changed = true
	}

	if changed && !dryRun {
		if err := writeSettings(path, doc); err != nil {
			return false, err
		}
	}
	return changed, nil
}

// UnpinLibraries removes library names from the pinned lists, or clears
// both lists entirely when all is set. It reports the count actually
// removed, not the count requested; under dry-run the count is computed
// against the pre-change lists without mutating anything.
func UnpinLibraries(configDir string, symbols, footprints []string, all, dryRun bool) (int, bool, error) {
	path, doc, err := readSettings(configDir)
	if err != nil {
		return 0, false, err
	}

	removed := 0
	changed := false
	for _, unpin := range []struct {
		jsonPath string
		names    []string
	}{
		{pinnedSymbolsPath, symbols},
		{pinnedFpPath, footprints},
	} {
		list, err := pinnedList(path, doc, unpin.jsonPath)
		if err != nil {
			return 0, false, err
		}

		var kept []string
		if all {
			removed += len(list)
			kept = []string{}
		} else {
			requested := make(map[string]struct{}, len(unpin.names))
			for _, name := range unpin.names {
				requested[name] = struct{}{}
			}
			kept = make([]string, 0, len(list))
			for _, name := range list {
				if _, ok := requested[name]; ok {
					removed++
					continue
				}
				kept = append(kept, name)
			}
		}

		if len(kept) == len(list) {
			continue
		}
		doc, err = sjson.Set(doc, unpin.jsonPath, kept)
		if err != nil {
			return 0, false, fmt.Errorf("failed to update %s: %w", unpin.jsonPath, err)
		}
		changed = true
	}

	if changed && !dryRun {
		if err := writeSettings(path, doc); err != nil {
			return 0, false, err
		}
	}
	return removed, changed, nil
}

// pinnedList reads a pinned-library list from the document. A missing
// subtree reads as empty; a present subtree of the wrong type is a
// structural error.
func pinnedList(path, doc, jsonPath string) ([]string, error) {
	value := gjson.Get(doc, jsonPath)
	if !value.Exists() {
		return nil, nil
	}
	if !value.IsArray() {
		return nil, NewFormatError(jsonPath+" is not a JSON array", path, nil)
	}
	var list []string
	for _, item := range value.Array() {
		list = append(list, item.String())
	}
	return list, nil
}

// appendMissing appends names not already present, preserving first
// insertion order and de-duplicating within the request itself.
func appendMissing(list, names []string) ([]string, bool) {
	present := make(map[string]struct{}, len(list))
	for _, name := range list {
		present[name] = struct{}{}
	}
	merged := append([]string{}, list...)
	changed := false
	for _, name := range names {
		if _, ok := present[name]; ok {
			continue
		}
		present[name] = struct{}{}
		merged = append(merged, name)
		changed = true
	}
	return merged, changed
}
