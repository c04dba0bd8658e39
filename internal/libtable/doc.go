// Package libtable reads and rewrites KiCad library table files.
//
// KiCad registers symbol and footprint libraries in structured-text tables
// (sym-lib-table, fp-lib-table): a single top-level s-expression list whose
// entries are (lib ...) records, terminated by a lone ")" line. This package
// provides the codec for those files: parsing registered entries, validating
// or repairing a malformed table, and appending new entries.
//
// # Byte Fidelity
//
// KiCad writes entries this tool does not fully understand (nicknames with
// options, plugin types, disabled flags). AppendEntries therefore never
// rewrites existing lines: it locates the closing delimiter and splices new
// records immediately before it, preserving every other line byte-for-byte.
//
// # Repair Policy
//
// ValidateOrRepair is the only function that repairs a corrupt table, and
// only by resetting it to a minimal valid empty table. AppendEntries never
// guesses at the intent of a partially written table; a missing closing
// delimiter is a fatal *FormatError.
package libtable
