package tasks

import (
	"context"
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"profile-registry/internal/config"
	"profile-registry/internal/logging"
	"profile-registry/pkg/registrydb"
)

// Options defines overrides for the YAML configuration.
// Mirrors the CLI flags of cmd/registryctl.
type Options struct {
	ConfigPath string
	DBPath     string
	Version    int
	Verbose    bool
}

// LoadConfig loads the YAML config (defaults when the file is absent and
// no path was explicitly requested) and applies overrides.
func LoadConfig(opts Options, explicit bool) (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.LoadYAML(opts.ConfigPath)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return config.Config{}, err
		}
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}
	if opts.Version > 0 {
		cfg.Database.SchemaVersion = opts.Version
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format, "profile-registry")
}

// OpenRegistry opens the registry described by cfg, creating or upgrading
// it to the configured schema version.
func OpenRegistry(ctx context.Context, cfg config.Config, log *zap.Logger) (*registrydb.Client, error) {
	return registrydb.Open(ctx, registrydb.Options{
		Path:    cfg.Database.Path,
		Version: cfg.Database.SchemaVersion,
		Modules: cfg.Modules,
		Logger:  log,
	})
}
