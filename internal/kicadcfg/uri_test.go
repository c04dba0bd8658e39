package kicadcfg

import (
	"strings"
	"testing"
)

func TestResolveURIAbsolutePath(t *testing.T) {
	tests := []struct {
		name string
		base string
		lib  string
		kind string
		want string
	}{
		{"unix symbols", "/path/to/lib", "test_lib", KindSymbols, "/path/to/lib/symbols/test_lib.kicad_sym"},
		{"unix footprints", "/path/to/lib", "test_lib", KindFootprints, "/path/to/lib/footprints/test_lib.pretty"},
		{"windows drive symbols", `C:\path\to\lib`, "test_lib", KindSymbols, "C:/path/to/lib/symbols/test_lib.kicad_sym"},
		{"windows drive footprints", `C:\path\to\lib`, "test_lib", KindFootprints, "C:/path/to/lib/footprints/test_lib.pretty"},
		{"mixed slashes", `C:/path\to/lib`, "test_lib", KindSymbols, "C:/path/to/lib/symbols/test_lib.kicad_sym"},
		{"plain absolute base", "/lib", "Foo", KindSymbols, "/lib/symbols/Foo.kicad_sym"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURI(tt.base, tt.lib, tt.kind)
			if err != nil {
				t.Fatalf("ResolveURI(%q, %q, %q) error = %v", tt.base, tt.lib, tt.kind, err)
			}
			if got != tt.want {
				t.Errorf("ResolveURI(%q, %q, %q) = %q, want %q", tt.base, tt.lib, tt.kind, got, tt.want)
			}
		})
	}
}

func TestResolveURIEnvVarName(t *testing.T) {
	got, err := ResolveURI("KICAD_LIB", "Foo", KindFootprints)
	if err != nil {
		t.Fatalf("ResolveURI() error = %v", err)
	}
	if got != "${KICAD_LIB}/footprints/Foo.pretty" {
		t.Errorf("ResolveURI() = %q, want %q", got, "${KICAD_LIB}/footprints/Foo.pretty")
	}
}

func TestResolveURIWrappedReference(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"wrapped env var", "${KICAD_LIB}", "${KICAD_LIB}/symbols/test_lib.kicad_sym"},
		{"wrapped unix path", "${/path/to/lib}", "/path/to/lib/symbols/test_lib.kicad_sym"},
		{"wrapped windows path", `${C:\path\to\lib}`, "C:/path/to/lib/symbols/test_lib.kicad_sym"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURI(tt.base, "test_lib", KindSymbols)
			if err != nil {
				t.Fatalf("ResolveURI(%q) error = %v", tt.base, err)
			}
			if got != tt.want {
				t.Errorf("ResolveURI(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestResolveURIWrapIdempotence(t *testing.T) {
	// Resolving a bare variable name and its wrapped form must agree
	wrapped, err := ResolveURI("${VAR}", "n", KindSymbols)
	if err != nil {
		t.Fatalf("ResolveURI(${VAR}) error = %v", err)
	}
	bare, err := ResolveURI("VAR", "n", KindSymbols)
	if err != nil {
		t.Fatalf("ResolveURI(VAR) error = %v", err)
	}
	if wrapped != bare {
		t.Errorf("wrapped = %q, bare = %q; want equal", wrapped, bare)
	}
}

func TestResolveURIForwardSlashesOnly(t *testing.T) {
	bases := []string{`C:\deep\nested\lib`, `\\server\share`, `${C:\lib}`, "/plain/lib", "ENV_VAR"}
	for _, base := range bases {
		got, err := ResolveURI(base, "lib", KindFootprints)
		if err != nil {
			t.Fatalf("ResolveURI(%q) error = %v", base, err)
		}
		if strings.Contains(got, `\`) {
			t.Errorf("ResolveURI(%q) = %q, contains backslash", base, got)
		}
	}
}

func TestResolveURIEmptyLibraryName(t *testing.T) {
	got, err := ResolveURI("/path/to/lib", "", KindSymbols)
	if err != nil {
		t.Fatalf("ResolveURI() error = %v", err)
	}
	if got != "/path/to/lib/symbols/.kicad_sym" {
		t.Errorf("ResolveURI() = %q, want %q", got, "/path/to/lib/symbols/.kicad_sym")
	}
}

func TestResolveURIInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		base string
		kind string
	}{
		{"empty base", "", KindSymbols},
		{"unknown kind", "/path/to/lib", "bogus"},
		{"unclosed reference", "${unclosed", KindSymbols},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveURI(tt.base, "test_lib", tt.kind)
			if err == nil {
				t.Fatalf("ResolveURI(%q, %q) expected error, got nil", tt.base, tt.kind)
			}
			if !IsValidationError(err) {
				t.Errorf("ResolveURI(%q, %q) error = %v, want validation error", tt.base, tt.kind, err)
			}
		})
	}
}
