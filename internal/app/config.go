package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backends accepted in Config.Backend.
const (
	BackendDisk   = "disk"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendDisk, BackendSQLite, BackendMemory}

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string `env:"SECURELOCAL_HOME"`                      // storage root, e.g. $HOME/.securelocal
	Backend  string `env:"SECURELOCAL_BACKEND" envDefault:"disk"` // disk, sqlite or memory
	Section  string `env:"SECURELOCAL_SECTION"`                   // empty selects the default section
	LogLevel string `env:"SECURELOCAL_LOG_LEVEL" envDefault:"warn"`
	Strict   bool   `env:"SECURELOCAL_STRICT"` // surface parse errors instead of reading as empty
}

// LoadConfig reads Config from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate normalises cfg and fills the default home directory.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendDisk
	}
	switch c.Backend {
	case BackendDisk, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q: must be one of %v", c.Backend, Backends)
	}

	if c.Home == "" && c.Backend != BackendMemory {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Home = filepath.Join(dir, ".securelocal")
	}
	return nil
}
