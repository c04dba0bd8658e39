package library

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/barisgit/KiLM/internal/kicadcfg"
)

// DescriptionsFile is the optional sidecar mapping library names to
// descriptive text, keyed by kind:
//
//	symbols:
//	  MyParts: "Curated in-house symbols"
//	footprints:
//	  MyParts: "Curated in-house footprints"
const DescriptionsFile = "library_descriptions.yaml"

// Describe returns the description for a library, read from the
// library_descriptions.yaml sidecar under the library root when present,
// or a generated default otherwise. Unreadable sidecars fall back to the
// default; descriptions are cosmetic and never block a sync.
func Describe(kind, name, root string) string {
	if desc, ok := lookupDescription(kind, name, root); ok {
		return desc
	}
	if kind == kicadcfg.KindSymbols {
		return name + " symbol library"
	}
	return name + " footprint library"
}

func lookupDescription(kind, name, root string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(root, DescriptionsFile))
	if err != nil {
		return "", false
	}

	var byKind map[string]map[string]string
	if err := yaml.Unmarshal(data, &byKind); err != nil {
		return "", false
	}
	desc, ok := byKind[kind][name]
	return desc, ok && desc != ""
}
