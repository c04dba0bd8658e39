package kicadcfg

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/barisgit/KiLM/internal/libtable"
)

// DescribeFunc looks up a human-readable description for a library of the
// given kind under the library root.
type DescribeFunc func(kind, name, libraryRoot string) string

// SyncRequest describes one table synchronization run.
type SyncRequest struct {
	// LibraryRoot is the base reference used to build entry URIs: an
	// absolute path, an environment variable name, or either wrapped in
	// ${...} reference syntax.
	LibraryRoot string

	// ConfigDir is the KiCad configuration directory holding the tables.
	ConfigDir string

	// Symbols and Footprints are the candidate library names discovered
	// on disk, per kind.
	Symbols    []string
	Footprints []string

	// Describe resolves entry descriptions. When nil a default
	// "<name> <kind> library" description is used.
	Describe DescribeFunc

	// DryRun computes the same decisions as a real run without writing.
	DryRun bool
}

// SyncResult reports what a synchronization run did (or, under dry-run,
// would have done).
type SyncResult struct {
	// Added is the union of library names appended to either table.
	Added map[string]struct{}

	// SymbolsAdded and FootprintsAdded list the appended names per kind,
	// sorted.
	SymbolsAdded    []string
	FootprintsAdded []string

	// Changed reports whether either table changed (or would change).
	Changed bool
}

// Sync diffs the candidate libraries against the entries already registered
// in the symbol and footprint tables and appends only the missing ones.
//
// Existing entries are never rewritten or removed, even when their stored
// URI differs from a freshly computed one; the de-duplication key is the
// entry name alone. Both tables are validated (and, outside dry-run,
// repaired) before diffing so a subsequent append never fails on a corrupt
// file. Under dry-run the returned result is identical but no file is
// opened for writing.
func Sync(req SyncRequest) (*SyncResult, error) {
	if req.LibraryRoot == "" {
		return nil, NewValidationError("library root cannot be empty", req.LibraryRoot)
	}
	if req.ConfigDir == "" {
		return nil, NewValidationError("KiCad configuration directory cannot be empty", req.ConfigDir)
	}

	symTable := filepath.Join(req.ConfigDir, SymbolTableFile)
	fpTable := filepath.Join(req.ConfigDir, FootprintTableFile)

	// Repair up front so the append below operates on known-good files.
	// Dry-run shares the decision logic but must not write, so corruption
	// is only detected, not fixed.
	applyFix := !req.DryRun
	if _, err := libtable.ValidateOrRepair(symTable, applyFix); err != nil {
		return nil, fmt.Errorf("symbol table validation failed: %w", err)
	}
	if _, err := libtable.ValidateOrRepair(fpTable, applyFix); err != nil {
		return nil, fmt.Errorf("footprint table validation failed: %w", err)
	}

	registeredSymbols, err := registeredNames(symTable)
	if err != nil {
		return nil, err
	}
	registeredFootprints, err := registeredNames(fpTable)
	if err != nil {
		return nil, err
	}

	describe := req.Describe
	if describe == nil {
		describe = defaultDescription
	}

	newSymbols, err := buildEntries(req.Symbols, registeredSymbols, KindSymbols, req.LibraryRoot, describe)
	if err != nil {
		return nil, err
	}
	newFootprints, err := buildEntries(req.Footprints, registeredFootprints, KindFootprints, req.LibraryRoot, describe)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{
		Added:   make(map[string]struct{}),
		Changed: len(newSymbols) > 0 || len(newFootprints) > 0,
	}
	for _, entry := range newSymbols {
		result.Added[entry.Name] = struct{}{}
		result.SymbolsAdded = append(result.SymbolsAdded, entry.Name)
	}
	for _, entry := range newFootprints {
		result.Added[entry.Name] = struct{}{}
		result.FootprintsAdded = append(result.FootprintsAdded, entry.Name)
	}

	if !req.DryRun {
		if len(newSymbols) > 0 {
			if err := libtable.AppendEntries(symTable, newSymbols); err != nil {
				return nil, fmt.Errorf("failed to update symbol table: %w", err)
			}
		}
		if len(newFootprints) > 0 {
			if err := libtable.AppendEntries(fpTable, newFootprints); err != nil {
				return nil, fmt.Errorf("failed to update footprint table: %w", err)
			}
		}
	}

	return result, nil
}

// registeredNames reads the entry names already present in a table.
func registeredNames(path string) (map[string]struct{}, error) {
	entries, err := libtable.Parse(path)
	if err != nil {
		return nil, err
	}
	names := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		names[entry.Name] = struct{}{}
	}
	return names, nil
}

// buildEntries resolves URIs and descriptions for the candidates not yet
// registered, in sorted name order.
func buildEntries(candidates []string, registered map[string]struct{}, kind, libraryRoot string, describe DescribeFunc) ([]libtable.Entry, error) {
	var missing []string
	for _, name := range candidates {
		if _, ok := registered[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	entries := make([]libtable.Entry, 0, len(missing))
	for _, name := range missing {
		uri, err := ResolveURI(libraryRoot, name, kind)
		if err != nil {
			return nil, err
		}
		entries = append(entries, libtable.Entry{
			Name:        name,
			URI:         uri,
			Options:     "",
			Description: describe(kind, name, libraryRoot),
		})
	}
	return entries, nil
}

func defaultDescription(kind, name, _ string) string {
	if kind == KindSymbols {
		return name + " symbol library"
	}
	return name + " footprint library"
}
