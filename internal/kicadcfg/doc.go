// Package kicadcfg synchronizes library registrations with KiCad's on-disk
// configuration.
//
// The package covers four concerns:
//   - locating the active KiCad configuration directory (FindConfigDir)
//   - computing canonical library reference URIs (ResolveURI)
//   - diffing discovered libraries against the registered library tables
//     and appending only the missing entries (Sync)
//   - idempotent merges into kicad_common.json for environment variable
//     bindings and pinned-library lists (UpdateEnvVars, PinLibraries,
//     UnpinLibraries)
//
// # Dry Run Contract
//
// Every mutating operation takes a dry-run flag. Dry-run shares the exact
// decision logic of the real run (the same diff and merge computation) but
// never opens a file for writing. Callers use the returned change reports
// to decide whether to take backups and what to summarize for the user.
//
// # Idempotence
//
// All operations are append-only and keyed by exact name or value:
// re-running a sync or merge that already applied is a no-op that reports
// no change. Existing table entries are never rewritten, even when their
// stored URI differs from a freshly computed one.
//
// # Error Handling
//
// Failures are classified by ConfigError: ErrTypeNotFound for an absent
// required file, ErrTypeFormat for a structurally invalid one, and
// ErrTypeValidation for bad caller input. Nothing here retries; errors
// carry the file path or offending value for user-facing reports. Table
// synchronization and settings merging are independent: a failure in one
// must not prevent the caller from attempting the other.
package kicadcfg
