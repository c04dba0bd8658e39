package config

// Library collection types recognized by the registry.
const (
	// TypeGitHub is a version-controlled collection of symbol and
	// footprint libraries.
	TypeGitHub = "github"
	// TypeCloud is a cloud-synced directory of 3D models.
	TypeCloud = "cloud"
)

// Registry represents kilm's entire configuration file: the library
// collections the user has registered plus application preferences.
type Registry struct {
	Version     int          `yaml:"version"`
	Libraries   []Library    `yaml:"libraries,omitempty"`
	CurrentPath string       `yaml:"current_library,omitempty"` // Path of the active collection
	Preferences *Preferences `yaml:"preferences,omitempty"`
}

// Library represents one registered library collection.
type Library struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Type string `yaml:"type"` // TypeGitHub or TypeCloud
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	MaxBackups int `yaml:"max_backups"` // Retention cap for configuration backups
}

// DefaultMaxBackups is the backup retention cap used when the registry has
// no preference recorded.
const DefaultMaxBackups = 5

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Preferences: &Preferences{
			MaxBackups: DefaultMaxBackups,
		},
	}
}

// MaxBackups returns the configured backup retention cap, falling back to
// the default when unset.
func (r *Registry) MaxBackups() int {
	if r.Preferences == nil || r.Preferences.MaxBackups <= 0 {
		return DefaultMaxBackups
	}
	return r.Preferences.MaxBackups
}

// AddLibrary registers a library collection, updating the existing entry
// when one with the same path is already registered.
func (r *Registry) AddLibrary(name, path, libType string) {
	for i := range r.Libraries {
		if r.Libraries[i].Path == path {
			r.Libraries[i].Name = name
			r.Libraries[i].Type = libType
			return
		}
	}
	r.Libraries = append(r.Libraries, Library{Name: name, Path: path, Type: libType})
}

// LibrariesOfType returns the registered collections of one type.
func (r *Registry) LibrariesOfType(libType string) []Library {
	var matched []Library
	for _, lib := range r.Libraries {
		if lib.Type == libType {
			matched = append(matched, lib)
		}
	}
	return matched
}

// SetCurrent marks a collection path as the active library.
func (r *Registry) SetCurrent(path string) {
	r.CurrentPath = path
}

// Current returns the active library collection, or nil when none is set.
func (r *Registry) Current() *Library {
	for i := range r.Libraries {
		if r.Libraries[i].Path == r.CurrentPath {
			return &r.Libraries[i]
		}
	}
	return nil
}
