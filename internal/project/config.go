// Package project reads the implex.toml browser manifest that sits at
// the root of a generated documentation tree.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up at the docs root.
const ManifestName = "implex.toml"

var (
	// ErrBadColorMode indicates a [browser].color value outside auto|on|off.
	ErrBadColorMode = errors.New("invalid color mode")
	// ErrAbsDocsRoot indicates a [docs].root that escapes the manifest directory.
	ErrAbsDocsRoot = errors.New("docs root must be relative to the manifest")
)

// Config is the resolved browser configuration. Zero value plus
// Defaults() is what a tree without a manifest gets.
type Config struct {
	Docs    DocsConfig    `toml:"docs"`
	Browser BrowserConfig `toml:"browser"`
}

// DocsConfig locates the fragment files.
type DocsConfig struct {
	Root    string `toml:"root"`
	Pattern string `toml:"pattern"`
}

// BrowserConfig tunes presentation.
type BrowserConfig struct {
	ShowSynthetic bool   `toml:"show_synthetic"`
	Color         string `toml:"color"`
}

// Defaults returns the configuration used when no manifest exists.
func Defaults() Config {
	return Config{
		Docs:    DocsConfig{Root: ".", Pattern: "*.implementors.json"},
		Browser: BrowserConfig{ShowSynthetic: true, Color: "auto"},
	}
}

// Load reads the manifest under dir. A missing file yields Defaults();
// a present but malformed file is an error, never a silent fallback.
func Load(dir string) (Config, error) {
	cfg := Defaults()
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Browser.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("%w: %q (expected auto|on|off)", ErrBadColorMode, c.Browser.Color)
	}
	if filepath.IsAbs(c.Docs.Root) {
		return fmt.Errorf("%w: %q", ErrAbsDocsRoot, c.Docs.Root)
	}
	return nil
}
