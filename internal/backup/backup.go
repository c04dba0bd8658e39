// Package backup creates rotating, timestamped copies of configuration
// files before they are mutated.
//
// Backups are siblings of the original, named <file>.<timestamp>.bak with a
// numeric suffix when two backups land in the same second. The timestamp
// format keeps lexicographic order equal to age order, so retention can
// trim oldest-first by sorted name. Backups exist only to protect an actual
// mutation: callers must not invoke this package under dry-run or when a
// merge determined no change was needed.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultMaxBackups is the retention cap applied when a caller does not
// configure one.
const DefaultMaxBackups = 5

// timestampFormat sorts lexicographically in age order.
const timestampFormat = "20060102_150405"

// Create copies path to a timestamped sibling backup and deletes the oldest
// backups of that file beyond maxBackups. It returns the path of the backup
// it created. A maxBackups of zero or less falls back to DefaultMaxBackups.
func Create(path string, maxBackups int) (string, error) {
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}

	backupPath, err := nextBackupPath(path, time.Now())
	if err != nil {
		return "", err
	}
	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup of %s: %w", path, err)
	}

	if err := trimBackups(path, maxBackups); err != nil {
		return "", err
	}
	return backupPath, nil
}

// nextBackupPath picks a backup name that does not collide with an existing
// one; repeated backups within the same second get a _N suffix.
func nextBackupPath(path string, now time.Time) (string, error) {
	base := fmt.Sprintf("%s.%s", path, now.Format(timestampFormat))
	candidate := base + ".bak"
	for seq := 1; ; seq++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("failed to probe backup path: %w", err)
		}
		candidate = fmt.Sprintf("%s_%d.bak", base, seq)
	}
}

// List returns the existing backups for path, oldest first.
func List(path string) ([]string, error) {
	matches, err := filepath.Glob(path + ".*.bak")
	if err != nil {
		return nil, fmt.Errorf("failed to list backups of %s: %w", path, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// trimBackups deletes the oldest backups of path beyond max.
func trimBackups(path string, max int) error {
	backups, err := List(path)
	if err != nil {
		return err
	}
	for len(backups) > max {
		oldest := backups[0]
		if err := os.Remove(oldest); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", oldest, err)
		}
		backups = backups[1:]
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
