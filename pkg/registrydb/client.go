package registrydb

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"profile-registry/internal/attribute"
	dbpkg "profile-registry/internal/db"
	"profile-registry/internal/registry"
)

// Options controls how Open prepares the registry.
type Options struct {
	// Path of the SQLite database file.
	Path string
	// Version is the schema version the application expects. Zero means 1.
	Version int
	// Modules selects built-in attribute modules by name; empty means all.
	Modules []string
	// Contributors overrides Modules when set.
	Contributors []registry.Contributor
	Logger       *zap.Logger
}

// Client exposes a stable API for third-party packages to access the registry.
type Client struct {
	db  *dbpkg.DB
	rec *registry.Reconciler
	log *zap.Logger
}

// Open opens the database and brings the registry to opts.Version: a fresh
// database gets the table and its initial rows, an older one is reconciled.
func Open(ctx context.Context, opts Options) (*Client, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Version == 0 {
		opts.Version = 1
	}
	contributors := opts.Contributors
	if contributors == nil {
		var err error
		if contributors, err = attribute.Select(opts.Modules); err != nil {
			return nil, err
		}
	}

	d, err := dbpkg.Open(opts.Path)
	if err != nil {
		return nil, err
	}
	c := &Client{
		db:  d,
		rec: registry.NewReconciler(registry.DBTransactor(d), contributors, log),
		log: log,
	}
	if err := c.prepare(ctx, opts.Version); err != nil {
		_ = d.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying DB.
func (c *Client) Close() error { return c.db.Close() }

func (c *Client) prepare(ctx context.Context, version int) error {
	exists, err := c.db.TableExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		c.log.Info("creating registry table", zap.Int("version", version))
		// Candidates do not depend on the version, so the rows written by
		// CreateTable are already final for any version.
		if err := c.CreateTable(ctx); err != nil {
			return err
		}
		return c.db.SetUserVersion(ctx, version)
	}
	return c.Upgrade(ctx, version)
}

// CreateTable creates the registry table and fills it from the registered
// modules.
func (c *Client) CreateTable(ctx context.Context) error {
	if err := c.db.CreateTable(ctx); err != nil {
		return err
	}
	_, err := c.OnUpgrade(ctx, 0, 1)
	return err
}

// Version returns the schema version stored in the database.
func (c *Client) Version(ctx context.Context) (int, error) {
	return c.db.UserVersion(ctx)
}

// Upgrade reconciles from the stored version to newVersion and records it.
// Downgrades are refused.
func (c *Client) Upgrade(ctx context.Context, newVersion int) error {
	old, err := c.db.UserVersion(ctx)
	if err != nil {
		return err
	}
	if newVersion < old {
		return fmt.Errorf("cannot downgrade registry from version %d to %d", old, newVersion)
	}
	if newVersion == old {
		return nil
	}
	if _, err := c.OnUpgrade(ctx, old, newVersion); err != nil {
		return err
	}
	return c.db.SetUserVersion(ctx, newVersion)
}

// OnUpgrade runs one reconciliation pass without touching the stored
// version. It does nothing unless newVersion > oldVersion.
func (c *Client) OnUpgrade(ctx context.Context, oldVersion, newVersion int) (registry.Result, error) {
	return c.rec.Upgrade(ctx, oldVersion, newVersion)
}
