package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"implex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "implex",
	Short: "Implementor index browser for generated documentation",
	Long:  `implex reads the per-module implementor indexes emitted by a documentation pipeline and displays which concrete types satisfy each interface contract`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off, overrides implex.toml)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show load timing information")
	rootCmd.PersistentFlags().Int("jobs", 0, "decode parallelism (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the on-disk fragment cache")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
