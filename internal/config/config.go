// Package config loads the optional user configuration file
// ~/.promptcraft/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/fsmiamoto/promptcraft/internal/resolver"
)

// FileName is the config file inside the user's .promptcraft directory.
const FileName = "config.toml"

// Config holds user preferences. Command-line flags override every field.
type Config struct {
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

type OutputConfig struct {
	Stdout bool `toml:"stdout"` // print instead of copying to the clipboard
	Render bool `toml:"render"` // render markdown when stdout is a terminal
	OSC52  bool `toml:"osc52"`  // allow the OSC52 clipboard fallback
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Output: OutputConfig{OSC52: true},
		Log:    LogConfig{Level: "warn"},
	}
}

// Dir returns the user's promptcraft directory under home.
func Dir(home string) string {
	return filepath.Join(home, resolver.DirName)
}

// Path returns the config file path under home.
func Path(home string) string {
	return filepath.Join(Dir(home), FileName)
}

// Load reads the config at path on top of Default. A missing file is not an
// error. The second return value lists keys present in the file that do not
// map to any setting.
func Load(path string) (Config, []string, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil, nil
		}
		return Default(), nil, errors.Wrapf(err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), nil, errors.Wrapf(err, "parse config %s", path)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return cfg, unknown, nil
}
