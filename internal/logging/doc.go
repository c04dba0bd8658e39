// Package logging provides structured logging for kilm.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the tool. CLI commands stay silent by default;
// verbose structured output is opt-in via the KILM_LOG_LEVEL environment
// variable.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: detailed internals (table parsing, merge decisions, paths probed)
//   - Info: normal operations (files written, backups created)
//   - Warn: non-fatal issues (missing optional sidecars, skipped directories)
//   - Error: fatal issues (unreadable configuration, write failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Library table updated",
//	    zap.String("path", tablePath),
//	    zap.Int("entries_added", len(entries)),
//	)
//
// # Configuration
//
// Initialize logging at command startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
