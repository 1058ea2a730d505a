// Package runconfig loads configuration for the batch runner (cmd
// bvinvert batch): worker count, default output path, and progress
// verbosity. It layers an optional YAML file over built-in defaults.
package runconfig

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the batch runner's tunables.
type Config struct {
	Workers   int    `koanf:"workers"`
	Output    string `koanf:"output"`
	Verbose   bool   `koanf:"verbose"`
	StepLimit int    `koanf:"step_limit"`
}

// defaults mirrors Config's built-in values when no file overrides them.
var defaults = map[string]interface{}{
	"workers":    0, // 0 means runtime.NumCPU, resolved by pkg/batch
	"output":     "bvinvert-results.json",
	"verbose":    false,
	"step_limit": 1_000_000,
}

// Load builds a Config by layering path (if non-empty and present) over
// defaults. A missing path is not an error; an unreadable or malformed one
// is.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, fmt.Errorf("runconfig: load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("runconfig: load %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("runconfig: stat %s: %w", path, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("runconfig: unmarshal: %w", err)
	}
	return cfg, nil
}
