package kicadcfg

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func newConfigDir(t *testing.T, symTable, fpTable string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SymbolTableFile), []byte(symTable), 0o644); err != nil {
		t.Fatalf("failed to write symbol table: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FootprintTableFile), []byte(fpTable), 0o644); err != nil {
		t.Fatalf("failed to write footprint table: %v", err)
	}
	return dir
}

const emptySymTable = "(sym_lib_table\n)\n"
const emptyFpTable = "(fp_lib_table\n)\n"

func TestSyncAppendsMissingLibraries(t *testing.T) {
	configDir := newConfigDir(t, emptySymTable, emptyFpTable)

	result, err := Sync(SyncRequest{
		LibraryRoot: "/lib",
		ConfigDir:   configDir,
		Symbols:     []string{"Beta", "Alpha"},
		Footprints:  []string{"Alpha"},
	})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if !result.Changed {
		t.Error("Sync().Changed = false, want true")
	}
	if !reflect.DeepEqual(result.SymbolsAdded, []string{"Alpha", "Beta"}) {
		t.Errorf("SymbolsAdded = %v, want sorted [Alpha Beta]", result.SymbolsAdded)
	}
	if !reflect.DeepEqual(result.FootprintsAdded, []string{"Alpha"}) {
		t.Errorf("FootprintsAdded = %v", result.FootprintsAdded)
	}
	if len(result.Added) != 2 {
		t.Errorf("Added union has %d names, want 2", len(result.Added))
	}

	symbols, _, err := ConfiguredLibraries(configDir)
	if err != nil {
		t.Fatalf("ConfiguredLibraries() error = %v", err)
	}
	if len(symbols) != 2 {
		t.Fatalf("symbol table has %d entries, want 2", len(symbols))
	}
	if symbols[0].URI != "/lib/symbols/Alpha.kicad_sym" {
		t.Errorf("first appended URI = %q", symbols[0].URI)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	configDir := newConfigDir(t, emptySymTable, emptyFpTable)
	req := SyncRequest{
		LibraryRoot: "/lib",
		ConfigDir:   configDir,
		Symbols:     []string{"A"},
		Footprints:  []string{"B"},
	}

	if _, err := Sync(req); err != nil {
		t.Fatalf("first Sync() error = %v", err)
	}
	afterFirst := readFile(t, filepath.Join(configDir, SymbolTableFile))

	result, err := Sync(req)
	if err != nil {
		t.Fatalf("second Sync() error = %v", err)
	}
	if result.Changed {
		t.Error("second Sync().Changed = true, want false")
	}
	if len(result.Added) != 0 {
		t.Errorf("second Sync() added %v, want nothing", result.Added)
	}
	if got := readFile(t, filepath.Join(configDir, SymbolTableFile)); got != afterFirst {
		t.Error("second Sync() modified the symbol table")
	}
}

func TestSyncNeverTouchesExistingEntries(t *testing.T) {
	// The registered URI deliberately disagrees with what a fresh resolve
	// would produce; sync must leave it alone.
	symTable := "(sym_lib_table\n" +
		`  (lib (name "Kept")(type "KiCad")(uri "/stale/symbols/Kept.kicad_sym")(options "")(descr "old"))` + "\n" +
		")\n"
	configDir := newConfigDir(t, symTable, emptyFpTable)

	result, err := Sync(SyncRequest{
		LibraryRoot: "/fresh",
		ConfigDir:   configDir,
		Symbols:     []string{"Kept", "New"},
	})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if _, ok := result.Added["Kept"]; ok {
		t.Error("Sync() re-added an already registered library")
	}

	symbols, _, err := ConfiguredLibraries(configDir)
	if err != nil {
		t.Fatalf("ConfiguredLibraries() error = %v", err)
	}
	if symbols[0].URI != "/stale/symbols/Kept.kicad_sym" {
		t.Errorf("existing entry URI rewritten to %q", symbols[0].URI)
	}
	if symbols[1].Name != "New" || symbols[1].URI != "/fresh/symbols/New.kicad_sym" {
		t.Errorf("appended entry = %+v", symbols[1])
	}
}

func TestSyncDryRunMatchesRealRun(t *testing.T) {
	symTable := emptySymTable
	fpTable := emptyFpTable
	dryDir := newConfigDir(t, symTable, fpTable)
	realDir := newConfigDir(t, symTable, fpTable)

	req := SyncRequest{
		LibraryRoot: "${KICAD_USER_LIB}",
		Symbols:     []string{"S1", "S2"},
		Footprints:  []string{"F1"},
	}

	dryReq := req
	dryReq.ConfigDir = dryDir
	dryReq.DryRun = true
	dryResult, err := Sync(dryReq)
	if err != nil {
		t.Fatalf("dry-run Sync() error = %v", err)
	}

	realReq := req
	realReq.ConfigDir = realDir
	realResult, err := Sync(realReq)
	if err != nil {
		t.Fatalf("real Sync() error = %v", err)
	}

	if !reflect.DeepEqual(added(dryResult), added(realResult)) {
		t.Errorf("dry-run added %v, real run added %v", added(dryResult), added(realResult))
	}
	if dryResult.Changed != realResult.Changed {
		t.Errorf("dry-run Changed = %v, real Changed = %v", dryResult.Changed, realResult.Changed)
	}

	// Dry run must leave both files byte-identical
	if got := readFile(t, filepath.Join(dryDir, SymbolTableFile)); got != symTable {
		t.Errorf("dry run modified symbol table: %q", got)
	}
	if got := readFile(t, filepath.Join(dryDir, FootprintTableFile)); got != fpTable {
		t.Errorf("dry run modified footprint table: %q", got)
	}
}

func TestSyncRepairsCorruptTables(t *testing.T) {
	configDir := newConfigDir(t, "garbage content", emptyFpTable)

	result, err := Sync(SyncRequest{
		LibraryRoot: "/lib",
		ConfigDir:   configDir,
		Symbols:     []string{"A"},
	})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if !result.Changed {
		t.Error("Sync().Changed = false, want true")
	}

	symbols, _, err := ConfiguredLibraries(configDir)
	if err != nil {
		t.Fatalf("ConfiguredLibraries() error = %v", err)
	}
	if len(symbols) != 1 || symbols[0].Name != "A" {
		t.Errorf("repaired table entries = %+v, want one entry A", symbols)
	}
}

func TestSyncDryRunLeavesCorruptTableAlone(t *testing.T) {
	configDir := newConfigDir(t, "garbage content", emptyFpTable)

	if _, err := Sync(SyncRequest{
		LibraryRoot: "/lib",
		ConfigDir:   configDir,
		Symbols:     []string{"A"},
		DryRun:      true,
	}); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if got := readFile(t, filepath.Join(configDir, SymbolTableFile)); got != "garbage content" {
		t.Errorf("dry run repaired a corrupt table: %q", got)
	}
}

func TestSyncUsesDescribeFunc(t *testing.T) {
	configDir := newConfigDir(t, emptySymTable, emptyFpTable)

	_, err := Sync(SyncRequest{
		LibraryRoot: "/lib",
		ConfigDir:   configDir,
		Symbols:     []string{"A"},
		Describe: func(kind, name, root string) string {
			return "custom " + kind + " " + name
		},
	})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	content := readFile(t, filepath.Join(configDir, SymbolTableFile))
	if want := `(descr "custom symbols A")`; !strings.Contains(content, want) {
		t.Errorf("table %q does not contain %q", content, want)
	}
}

func TestSyncValidatesInput(t *testing.T) {
	if _, err := Sync(SyncRequest{ConfigDir: "/tmp"}); !IsValidationError(err) {
		t.Errorf("Sync() without library root error = %v, want validation error", err)
	}
	if _, err := Sync(SyncRequest{LibraryRoot: "/lib"}); !IsValidationError(err) {
		t.Errorf("Sync() without config dir error = %v, want validation error", err)
	}
}

func added(result *SyncResult) []string {
	var names []string
	for name := range result.Added {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
