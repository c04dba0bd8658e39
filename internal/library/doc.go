// Package library discovers KiCad libraries on disk and manages their
// cosmetic metadata.
//
// A library root is a directory with a symbols/ folder of .kicad_sym files
// and a footprints/ folder of .pretty directories, optionally accompanied
// by a library_descriptions.yaml file mapping library names to descriptive
// text and a kilm.yaml metadata sidecar describing the collection itself.
// Cloud-hosted 3D model directories carry a .kilm_metadata JSON sidecar
// instead.
//
// Descriptions and metadata are cosmetic: reading a missing or unreadable
// sidecar falls back to generated defaults rather than failing, because
// nothing KiCad consumes depends on them.
package library
