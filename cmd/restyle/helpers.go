package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"restyle/internal/config"
	"restyle/internal/diagfmt"
	"restyle/internal/driver"
	"restyle/internal/rules"
)

func resolveColor(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func readPathMode(value string) (diagfmt.PathMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return diagfmt.PathModeAuto, nil
	case "absolute":
		return diagfmt.PathModeAbsolute, nil
	case "relative":
		return diagfmt.PathModeRelative, nil
	case "basename":
		return diagfmt.PathModeBasename, nil
	default:
		return 0, fmt.Errorf("invalid --paths value %q (expected auto|absolute|relative|basename)", value)
	}
}

// loadSettings resolves rule settings: an explicit --config path wins,
// otherwise the nearest restyle.toml above the target directory.
func loadSettings(cmd *cobra.Command, target string) (rules.Settings, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return rules.Settings{}, err
	}
	if explicit != "" {
		return config.Load(explicit)
	}

	startDir := target
	if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	s, _, err := config.LoadOrDefault(startDir)
	return s, err
}

func driverOptions(cmd *cobra.Command, settings rules.Settings) (driver.Options, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Settings:       settings,
	}, nil
}

func quietFlag(cmd *cobra.Command) (bool, error) {
	return cmd.Root().PersistentFlags().GetBool("quiet")
}
