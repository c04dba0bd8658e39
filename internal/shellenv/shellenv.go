// Package shellenv resolves environment variables the way users actually
// set them: from the process environment, fish universal variables, and
// common shell startup files.
//
// CLI tools are often launched from desktop environments or editors that do
// not source the user's shell configuration, so a variable exported in
// ~/.zshrc may not be present in the process environment. Find falls back
// to scanning those files so setup works regardless of how kilm was
// launched.
package shellenv

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// rcFiles are the shell startup files scanned, in order, relative to the
// user's home directory.
var rcFiles = []string{
	".bashrc",
	".bash_profile",
	".profile",
	".zshrc",
}

// Find looks up an environment variable by name, first in the process
// environment, then as a fish universal variable, then in common shell
// startup files. Returns an empty string when the variable is not set
// anywhere.
func Find(name string) string {
	if value, ok := os.LookupEnv(name); ok {
		return value
	}

	if value := findFishVariable(name); value != "" {
		return value
	}

	return findInRCFiles(name)
}

// findFishVariable queries fish for a universal variable. Fish stores
// universal variables in its own database rather than in rc files.
func findFishVariable(name string) string {
	fishPath, err := exec.LookPath("fish")
	if err != nil {
		return ""
	}
	out, err := exec.Command(fishPath, "-c", "echo $"+name).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// findInRCFiles scans shell startup files for an assignment of name.
func findInRCFiles(name string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	pattern := regexp.MustCompile(`^(?:export\s+)?` + regexp.QuoteMeta(name) + `=['"]?(.*?)['"]?$`)

	for _, rcFile := range rcFiles {
		value, found := scanFile(filepath.Join(homeDir, rcFile), pattern)
		if found {
			return value
		}
	}
	return ""
}

func scanFile(path string, pattern *regexp.Regexp) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if match := pattern.FindStringSubmatch(strings.TrimSpace(scanner.Text())); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// ExpandUser expands a leading ~ to the user's home directory. Paths
// without a ~ prefix are returned unchanged.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return homeDir
	}
	return filepath.Join(homeDir, path[2:])
}
