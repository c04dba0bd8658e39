// Kilm is a command-line manager for KiCad libraries.
//
// It reconciles a user's collections of symbol libraries, footprint
// libraries, and 3D model directories with KiCad's on-disk configuration:
// registering libraries in the sym-lib-table and fp-lib-table files,
// merging environment variables and pinned-library lists into
// kicad_common.json, and protecting every mutation with rotating backups.
//
// Usage:
//
//	kilm [command] [flags]
//
// See 'kilm --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barisgit/KiLM/internal/logging"
	"github.com/barisgit/KiLM/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kilm",
	Short: "KiCad Library Manager",
	Long: `KiCad Library Manager - manage KiCad libraries across projects and workstations.

Kilm configures KiCad to use your library collections: it registers symbol
and footprint libraries in KiCad's library tables, sets the environment
variables your library URIs rely on, and pins libraries for quick access.

Common commands:
  kilm status     Show the current KiCad configuration
  kilm setup      Configure KiCad to use your libraries
  kilm list       List libraries found in a library directory
  kilm pin        Pin favorite libraries`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kilm %s\n", version.Full())
	},
}
