// Package config loads and saves the CLI/TUI shell's user preferences.
// None of this is read by the core (internal/gitio, internal/history,
// internal/content, internal/linemap, internal/task, internal/appstate);
// it exists only so the external shell described in spec §6 has somewhere
// durable to keep UI defaults between runs.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Theme names a palette variant in the preferences file. "dark" is the
// only defined value; internal/ui/styles has one fixed palette and does
// not read this setting.
type Theme string

const (
	ThemeDark Theme = "dark"
)

// Preferences is the on-disk shape of the shell's settings. The core has
// no notion of these values. The explore command loads them and hands them
// to the TUI model, which stores them but reads none of the fields.
type Preferences struct {
	// Radius is the neighbour-search radius setting. Commit switches in
	// internal/appstate always pass a radius of 5 to
	// linemap.Mapping.LocateWithFallbacks and do not read this field.
	Radius int `toml:"radius"`
	// Theme names the palette; the TUI does not read it.
	Theme Theme `toml:"theme"`
	// NoColor is set from the file or the --no-color flag. The TUI does not
	// read it; styling is disabled only by the NO_COLOR and
	// GIT_LINEAGE_NO_COLOR environment variables.
	NoColor bool `toml:"no_color"`
}

// Defaults returns the preferences used when no config file exists yet.
func Defaults() Preferences {
	return Preferences{Radius: 5, Theme: ThemeDark, NoColor: false}
}

// Path returns the on-disk location of the preferences file: a repo-local
// ".git-lineage.toml" if one exists, otherwise
// "~/.config/git-lineage/config.toml".
func Path(repoRoot string) string {
	if repoRoot != "" {
		local := filepath.Join(repoRoot, ".git-lineage.toml")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "git-lineage", "config.toml")
}

// Load reads preferences from path, returning Defaults() (not an error) if
// the file does not exist yet.
func Load(path string) (Preferences, error) {
	prefs := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, err
	}
	if _, err := toml.Decode(string(data), &prefs); err != nil {
		return Defaults(), err
	}
	return prefs, nil
}

// Save writes prefs to path, creating parent directories as needed.
func Save(path string, prefs Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(prefs)
}
