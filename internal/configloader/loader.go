// Package configloader reads the optional .rex.yaml configuration file.
// Command-line flags always take precedence over file values.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = ".rex.yaml"

// Config holds the file-configurable defaults.
type Config struct {
	// Color is the default --color mode: auto, always or never.
	Color string `yaml:"color"`

	// LineNumbers enables line-number prefixes by default.
	LineNumbers bool `yaml:"line_numbers"`

	// LogLevel is the default logger level.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{Color: "auto", LogLevel: "info"}
}

// Load reads the config file at path, or DefaultFileName in the working
// directory when path is empty. A missing default file is not an error;
// a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
