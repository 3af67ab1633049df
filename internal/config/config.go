// Package config loads golox's optional YAML configuration file.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultMaxCallDepth bounds Function.Call nesting when no config file or
// flag overrides it.
const DefaultMaxCallDepth = 255

// Config holds the values recognized in .golox.yaml.
type Config struct {
	MaxCallDepth int  `yaml:"maxCallDepth"`
	TraceCalls   bool `yaml:"traceCalls"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{MaxCallDepth: DefaultMaxCallDepth, TraceCalls: false}
}

// Load reads and parses the YAML file at path. A missing file is not an
// error — Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.MaxCallDepth <= 0 {
		cfg.MaxCallDepth = DefaultMaxCallDepth
	}
	return cfg, nil
}
