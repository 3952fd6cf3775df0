// Package config loads optional per-user compiler settings from a TOML
// file, following the default-then-override pattern common across the
// example tooling this project borrows from: build a struct of sane
// defaults, then let a file on disk override whichever fields it names.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every setting the CLI exposes beyond its flags.
type Config struct {
	// Optimizer controls which optimizer passes run by default.
	Optimizer struct {
		ConstantFolding     bool `toml:"constant_folding"`
		DeadCodeElimination bool `toml:"dead_code_elimination"`
		StrengthReduction   bool `toml:"strength_reduction"`
	} `toml:"optimizer"`

	// Codegen controls code-generation behavior.
	Codegen struct {
		Debug bool `toml:"debug"`
	} `toml:"codegen"`
}

// Default returns a Config with every optimizer pass enabled and debug
// output off, matching the compiler package's own zero-config defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Optimizer.ConstantFolding = true
	cfg.Optimizer.DeadCodeElimination = true
	cfg.Optimizer.StrengthReduction = true
	cfg.Codegen.Debug = false
	return cfg
}

// Load reads and decodes the TOML file at path, starting from Default()
// so a file that only sets one field leaves the rest at their defaults.
// A missing file is not an error: Default() is returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
