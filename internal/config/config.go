package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"profile-registry/internal/logging"
)

// Config mirrors config/registry.yaml.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	// Modules names the built-in attribute modules to register, in order.
	// Empty registers all of them.
	Modules []string `yaml:"modules"`
}

type DatabaseConfig struct {
	Path          string `yaml:"path"`
	SchemaVersion int    `yaml:"schema_version"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

const (
	DefaultDBPath        = "./registry.sqlite"
	DefaultSchemaVersion = 1
)

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadYAML reads path, applies defaults and validates the result.
func LoadYAML(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Parse decodes YAML bytes, applies defaults and validates the result.
func Parse(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Database.Path) == "" {
		c.Database.Path = DefaultDBPath
	}
	if c.Database.SchemaVersion == 0 {
		c.Database.SchemaVersion = DefaultSchemaVersion
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Validate checks values that defaults cannot fix.
func (c Config) Validate() error {
	if c.Database.SchemaVersion < 1 {
		return fmt.Errorf("database.schema_version must be >= 1, got %d", c.Database.SchemaVersion)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	for _, m := range c.Modules {
		if strings.TrimSpace(m) == "" {
			return errors.New("modules must not contain empty names")
		}
	}
	return nil
}
