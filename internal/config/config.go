// Package config loads restyle.toml and maps it onto the rule settings.
// Every field is optional; unset sections keep the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"restyle/internal/rules"
)

// ManifestName is the configuration file looked up from the working
// directory toward the filesystem root.
const ManifestName = "restyle.toml"

type fileConfig struct {
	Rules struct {
		Disabled     []string          `toml:"disabled"`
		DefaultProps map[string]string `toml:"default-props"`
	} `toml:"rules"`
	ClassHelper struct {
		Name   string `toml:"name"`
		Source string `toml:"source"`
	} `toml:"class-helper"`
	Spacing struct {
		Indent string `toml:"indent"`
	} `toml:"spacing"`
}

// Load parses the manifest at path and merges it over the defaults.
func Load(path string) (rules.Settings, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return rules.Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	s := rules.DefaultSettings()
	if meta.IsDefined("rules", "disabled") {
		s.Disabled = cfg.Rules.Disabled
	}
	// configured entries extend the built-in catalog and override same-name
	// defaults; they never drop catalog entries
	for k, v := range cfg.Rules.DefaultProps {
		s.DefaultProps[k] = v
	}
	if meta.IsDefined("class-helper", "name") {
		s.ClassHelper = cfg.ClassHelper.Name
	}
	if meta.IsDefined("class-helper", "source") {
		s.ClassHelperSource = cfg.ClassHelper.Source
	}
	if meta.IsDefined("spacing", "indent") {
		s.SpacingIndent = cfg.Spacing.Indent
	}

	known := make(map[string]bool)
	for _, r := range rules.Names() {
		known[r.Name] = true
	}
	for _, name := range s.Disabled {
		if !known[name] {
			return rules.Settings{}, fmt.Errorf("%s: unknown rule %q in rules.disabled", path, name)
		}
	}
	return s, nil
}

// Find walks from startDir toward the root looking for the manifest.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadOrDefault finds and loads the nearest manifest. Without one it returns
// the defaults and an empty path.
func LoadOrDefault(startDir string) (rules.Settings, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return rules.Settings{}, "", err
	}
	if !ok {
		return rules.DefaultSettings(), "", nil
	}
	s, err := Load(path)
	if err != nil {
		return rules.Settings{}, path, err
	}
	return s, path, nil
}
