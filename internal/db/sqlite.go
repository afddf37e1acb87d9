package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"profile-registry/internal/model"
)

// ErrNoEntry is wrapped by lookups that match no row.
var ErrNoEntry = gorm.ErrRecordNotFound

// Repo runs registry queries against a connection or a transaction.
type Repo struct {
	db *gorm.DB
}

// DB wraps the sqlite connection and its GORM session.
type DB struct {
	SQL *sql.DB
	orm *gorm.DB
	*Repo
}

// Open opens the SQLite database at path. The schema is not touched; see
// CreateTable and EnsureOrderColumn.
func Open(path string) (*DB, error) {
	sqlDB, err := openSQL(path)
	if err != nil {
		return nil, err
	}
	d, err := New(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// New wraps an already opened *sql.DB.
func New(sqlDB *sql.DB) (*DB, error) {
	orm, err := openORM(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("open orm: %w", err)
	}
	return &DB{SQL: sqlDB, orm: orm, Repo: &Repo{db: orm}}, nil
}

func (d *DB) Close() error { return closeORM(d.orm) }

// InTx runs fn against a transaction-bound Repo. The transaction commits
// when fn returns nil and rolls back otherwise.
func (d *DB) InTx(ctx context.Context, fn func(*Repo) error) (err error) {
	tx := d.orm.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin tx: %w", tx.Error)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()
	if err = fn(&Repo{db: tx}); err != nil {
		return err
	}
	if err = tx.Commit().Error; err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// UserVersion returns the schema version recorded in the database header.
func (d *DB) UserVersion(ctx context.Context) (int, error) {
	var v int
	if err := d.orm.WithContext(ctx).Raw(`PRAGMA user_version`).Row().Scan(&v); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return v, nil
}

// SetUserVersion records the schema version in the database header.
func (d *DB) SetUserVersion(ctx context.Context, v int) error {
	if v < 0 {
		return fmt.Errorf("invalid user_version %d", v)
	}
	// PRAGMA does not accept bound parameters.
	if err := d.orm.WithContext(ctx).Exec(fmt.Sprintf(`PRAGMA user_version = %d`, v)).Error; err != nil {
		return fmt.Errorf("write user_version: %w", err)
	}
	return nil
}

// TableExists reports whether the registry table has been created.
func (r *Repo) TableExists(ctx context.Context) (bool, error) {
	var n int
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, model.TableRegistry).
		Row().Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check registry table: %w", err)
	}
	return n > 0, nil
}

// CreateTable creates the registry table.
func (r *Repo) CreateTable(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec(createRegistryTable).Error; err != nil {
		return fmt.Errorf("create registry table: %w", err)
	}
	return nil
}

// EnsureOrderColumn adds the order column to tables created before it
// existed. It reports whether the column had to be added.
func (r *Repo) EnsureOrderColumn(ctx context.Context) (bool, error) {
	var n int
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM pragma_table_info('registry') WHERE name = ?`, model.ColumnOrder).
		Row().Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect registry columns: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := r.db.WithContext(ctx).
		Exec(`ALTER TABLE registry ADD COLUMN "order" INTEGER NOT NULL DEFAULT 0`).Error; err != nil {
		return false, fmt.Errorf("add order column: %w", err)
	}
	return true, nil
}

// ListEntries returns every registry row in display order.
func (r *Repo) ListEntries(ctx context.Context) ([]model.Descriptor, error) {
	out := make([]model.Descriptor, 0)
	if err := r.db.WithContext(ctx).Order(defaultSortOrder).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list registry: %w", err)
	}
	return out, nil
}

// ListActive returns active rows sorted by type.
func (r *Repo) ListActive(ctx context.Context) ([]model.Descriptor, error) {
	out := make([]model.Descriptor, 0)
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("type").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list active registry: %w", err)
	}
	return out, nil
}

// GetByID returns the row with the given id. A miss wraps ErrNoEntry.
func (r *Repo) GetByID(ctx context.Context, id int64) (*model.Descriptor, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByName returns the row with the given name. A miss wraps ErrNoEntry.
func (r *Repo) GetByName(ctx context.Context, name string) (*model.Descriptor, error) {
	return r.getOne(ctx, "name = ?", name)
}

// GetByType returns the row with the given type. A miss wraps ErrNoEntry.
func (r *Repo) GetByType(ctx context.Context, typ int) (*model.Descriptor, error) {
	return r.getOne(ctx, "type = ?", typ)
}

func (r *Repo) getOne(ctx context.Context, cond string, v any) (*model.Descriptor, error) {
	var d model.Descriptor
	if err := r.db.WithContext(ctx).Where(cond, v).Order(defaultSortOrder).Take(&d).Error; err != nil {
		return nil, fmt.Errorf("get registry where %s %v: %w", cond, v, err)
	}
	return &d, nil
}

// AddRegistryEntry inserts an active row and returns its id.
func (r *Repo) AddRegistryEntry(ctx context.Context, name string, typ int, implClass, param string, order int) (int64, error) {
	return insertEntry(ctx, r.db, model.Candidate{
		Name:                name,
		Type:                typ,
		ImplementationClass: implClass,
		Param:               param,
		Order:               model.IntPtr(order),
	})
}

// InsertCandidate inserts a candidate as a new row and returns its id.
func (r *Repo) InsertCandidate(ctx context.Context, c model.Candidate) (int64, error) {
	return insertEntry(ctx, r.db, c)
}

// UpdateEntry writes the given columns of row id and returns the number of
// rows affected.
func (r *Repo) UpdateEntry(ctx context.Context, id int64, ch model.Changes) (int64, error) {
	return updateEntry(ctx, r.db, id, ch)
}

// SetActive toggles whether an attribute is in use.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (int64, error) {
	return updateEntry(ctx, r.db, id, model.Changes{model.ColumnActive: active})
}

// SetOrder changes the display rank of an attribute.
func (r *Repo) SetOrder(ctx context.Context, id int64, order int) (int64, error) {
	return updateEntry(ctx, r.db, id, model.Changes{model.ColumnOrder: order})
}
