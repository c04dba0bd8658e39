package kicadcfg

import (
	"fmt"
	"strings"
)

// Library kinds recognized by the URI resolver and table synchronizer.
const (
	KindSymbols    = "symbols"
	KindFootprints = "footprints"
)

// extensionFor maps a library kind to the file extension KiCad expects.
func extensionFor(kind string) string {
	if kind == KindSymbols {
		return "kicad_sym"
	}
	return "pretty"
}

// isAbsolutePath reports whether s looks like an absolute filesystem path:
// a leading forward slash, a Windows drive-letter prefix ("C:..."), or a
// UNC-style double-backslash prefix. The drive-letter check is deliberately
// len>2 with ':' in the second position, matching how KiCad itself
// classifies such paths.
func isAbsolutePath(s string) bool {
	if strings.HasPrefix(s, "/") {
		return true
	}
	if len(s) > 2 && s[1] == ':' {
		return true
	}
	if strings.HasPrefix(s, "\\") && len(s) > 1 {
		return true
	}
	return false
}

// ResolveURI converts a base path plus a library name and kind into the
// canonical reference string a KiCad library table expects.
//
// The base may be a bare absolute path, a bare environment variable name,
// or either of those already wrapped in ${...} reference syntax. The
// resolved form is always either a literal absolute path or a ${VAR}
// wrapped name, never a bare variable name, and always uses forward
// slashes regardless of the host path separator.
//
// An empty library name is accepted and yields a reference ending in a
// bare extension; only an empty base or an unrecognized kind is rejected.
func ResolveURI(base, libraryName, kind string) (string, error) {
	if base == "" {
		return "", NewValidationError("base path cannot be empty", base)
	}
	if kind != KindSymbols && kind != KindFootprints {
		return "", NewValidationError(
			fmt.Sprintf("invalid library kind: must be %q or %q", KindSymbols, KindFootprints), kind)
	}

	suffix := fmt.Sprintf("/%s/%s.%s", kind, libraryName, extensionFor(kind))

	var uri string
	if strings.HasPrefix(base, "${") {
		if !strings.HasSuffix(base, "}") {
			return "", NewValidationError("unclosed environment variable reference", base)
		}
		inner := base[2 : len(base)-1]
		if isAbsolutePath(inner) {
			// An absolute path mistakenly wrapped in reference syntax:
			// unwrap and use it literally.
			uri = inner + suffix
		} else {
			uri = "${" + inner + "}" + suffix
		}
	} else if isAbsolutePath(base) {
		uri = base + suffix
	} else {
		// A bare environment variable name gets the ${NAME} wrapper.
		uri = "${" + base + "}" + suffix
	}

	// The table format requires forward slashes even on hosts whose path
	// separator is a backslash.
	return strings.ReplaceAll(uri, "\\", "/"), nil
}
