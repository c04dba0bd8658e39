// Package config provides kilm's own configuration registry.
//
// This is separate from the KiCad configuration kilm manages: the registry
// records the library collections the user has registered (GitHub-hosted
// symbol/footprint collections and cloud-synced 3D model directories),
// which collection is current, and application preferences such as the
// backup retention cap.
//
// # Configuration File Location
//
// The registry is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/kilm/config.yaml or $HOME/.config/kilm/config.yaml
//   - macOS: $HOME/.config/kilm/config.yaml
//   - Windows: %LOCALAPPDATA%\kilm\config.yaml
//
// # Explicit Values
//
// The registry is an explicitly constructed value: callers Load it, pass it
// where needed, and Save it. There is no process-wide lazily initialized
// instance, so repeated CLI invocations and tests see no hidden shared
// state.
package config
