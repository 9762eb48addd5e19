package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"restyle/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "restyle",
	Short:         "Style checker and auto-fixer for component markup",
	Long:          "restyle finds style violations in .tsx sources and rewrites them with minimal byte-range edits.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errIssuesFound signals a non-zero exit after diagnostics were already
// printed.
var errIssuesFound = errors.New("issues found")

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().String("config", "", "path to restyle.toml (default: nearest manifest)")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
