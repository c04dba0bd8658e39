package libtable

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Entry is one registered library record within a table.
//
// Name is the unique key within its table; symbol and footprint tables are
// independent namespaces. Options is an opaque string, empty in practice.
type Entry struct {
	Name        string
	URI         string
	Options     string
	Description string
}

// FormatError indicates a table file exists but violates the expected
// structure. It is fatal; the codec never repairs a table mid-append.
type FormatError struct {
	Path    string
	Message string
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("library table format error: %s (path: %s)", e.Message, e.Path)
}

// closingDelimiter is the lone line that terminates a well-formed table.
const closingDelimiter = ")"

// entryPattern matches the name and uri fields of a (lib ...) record.
// Values may be quoted or bare tokens; KiCad emits both forms.
var (
	namePattern = regexp.MustCompile(`\(\s*name\s+(?:"([^"]*)"|([^)\s]+))\s*\)`)
	uriPattern  = regexp.MustCompile(`\(\s*uri\s+(?:"([^"]*)"|([^)\s]+))\s*\)`)
)

// headerFor returns the top-level list token for a table file, derived from
// its conventional file name.
func headerFor(path string) string {
	if strings.HasPrefix(filepath.Base(path), "fp") {
		return "fp_lib_table"
	}
	return "sym_lib_table"
}

// emptyTable returns the minimal valid content for the table at path.
func emptyTable(path string) string {
	return "(" + headerFor(path) + "\n)\n"
}

// ValidateOrRepair checks whether the table at path is well formed and
// returns true if it was already valid. A table is valid when the file
// exists and contains a lone ")" closing line.
//
// When the table is invalid and applyFix is true, the file is rewritten to
// a minimal valid empty table (unreadable content is not preserved) and
// false is returned. When applyFix is false no write occurs, supporting
// dry-run previews.
func ValidateOrRepair(path string, applyFix bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err == nil && hasClosingDelimiter(string(data)) {
		return true, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read library table: %w", err)
	}

	if applyFix {
		if err := os.WriteFile(path, []byte(emptyTable(path)), 0o644); err != nil {
			return false, fmt.Errorf("failed to repair library table: %w", err)
		}
	}
	return false, nil
}

// hasClosingDelimiter reports whether content contains a line that is
// exactly the closing delimiter after trimming whitespace.
func hasClosingDelimiter(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == closingDelimiter {
			return true
		}
	}
	return false
}

// Parse reads the table at path and returns its entries. A missing file
// parses as an empty table; registration against a file KiCad has not yet
// created is handled by ValidateOrRepair before any append.
func Parse(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read library table: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "(lib") {
			continue
		}
		nameMatch := namePattern.FindStringSubmatch(trimmed)
		if nameMatch == nil {
			continue
		}
		entry := Entry{Name: firstGroup(nameMatch)}
		if uriMatch := uriPattern.FindStringSubmatch(trimmed); uriMatch != nil {
			entry.URI = firstGroup(uriMatch)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func firstGroup(match []string) string {
	if match[1] != "" {
		return match[1]
	}
	return match[2]
}

// AppendEntries inserts one serialized record per entry immediately before
// the table's closing delimiter line, preserving every other line
// byte-for-byte. It fails with a *FormatError when no closing delimiter
// line exists; whole-file corruption is only ever repaired by
// ValidateOrRepair.
func AppendEntries(path string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read library table: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	closingIndex := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == closingDelimiter {
			closingIndex = i
			break
		}
	}
	if closingIndex == -1 {
		return &FormatError{Path: path, Message: "no closing delimiter line found"}
	}

	var sb strings.Builder
	for i, line := range lines {
		if i == closingIndex {
			for _, entry := range entries {
				sb.WriteString(serializeEntry(entry))
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write library table: %w", err)
	}
	return nil
}

// serializeEntry renders one entry as a fixed-field table record.
func serializeEntry(entry Entry) string {
	return fmt.Sprintf(`  (lib (name "%s")(type "KiCad")(uri "%s")(options "%s")(descr "%s"))`,
		entry.Name, repairURI(entry.URI), entry.Options, entry.Description)
}

// repairURI unwraps a reference value that begins with a malformed "${/"
// or "${\" pattern: an environment-variable wrapper mistakenly applied to
// an absolute path by older URI producers. The wrapper is stripped and the
// bare path kept.
func repairURI(uri string) string {
	if !strings.HasPrefix(uri, "${/") && !strings.HasPrefix(uri, `${\`) {
		return uri
	}
	end := strings.IndexByte(uri, '}')
	if end < 0 {
		return uri
	}
	return uri[2:end] + uri[end+1:]
}
