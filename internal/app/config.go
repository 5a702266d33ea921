package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime wiring options for building the executor.
type Config struct {
	Home     string `envconfig:"SIGIL_HOME"`                      // data directory, default $HOME/.sigil
	LogLevel string `envconfig:"SIGIL_LOG_LEVEL" default:"info"`  // logrus level name
	Backend  string `envconfig:"SIGIL_BACKEND" default:"badger"`  // "badger" or "memory"
}

// Load reads Config from the environment and fills in the home default.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("processing config: %w", err)
	}
	if cfg.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Home = filepath.Join(dir, ".sigil")
	}
	return cfg, nil
}
