package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"profile-registry/internal/model"
)

const createRegistryTable = `CREATE TABLE ` + model.TableRegistry + ` (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	type INTEGER NOT NULL DEFAULT 0 UNIQUE,
	active INTEGER NOT NULL DEFAULT 1,
	implementationClass TEXT NOT NULL,
	param TEXT NOT NULL,
	"order" INTEGER NOT NULL DEFAULT 0
)`

// defaultSortOrder is used by every listing except the active filter,
// which sorts by type.
const defaultSortOrder = `"order", type`

// updatable lists the columns updateEntry may write.
var updatable = map[string]bool{
	model.ColumnName:                true,
	model.ColumnType:                true,
	model.ColumnActive:              true,
	model.ColumnImplementationClass: true,
	model.ColumnParam:               true,
	model.ColumnOrder:               true,
}

// Lookup misses surface as gorm.ErrRecordNotFound, which the reconciler
// reports itself.
var ormLogger = logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
	SlowThreshold:             200 * time.Millisecond,
	LogLevel:                  logger.Warn,
	IgnoreRecordNotFoundError: true,
})

// openSQL opens a SQLite connection through the pure-Go driver.
// A single connection keeps transactions and PRAGMAs on the same handle.
func openSQL(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return sqlDB, nil
}

// openORM layers GORM over an already opened connection. InTx owns
// transactions, so GORM's implicit per-write transaction is skipped.
func openORM(conn gorm.ConnPool) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger:                 ormLogger,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
}

// closeORM closes the underlying SQL DB associated with the GORM connection.
func closeORM(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// insertEntry persists a new registry row and returns its id.
func insertEntry(ctx context.Context, db *gorm.DB, c model.Candidate) (int64, error) {
	if strings.TrimSpace(c.Name) == "" {
		return 0, fmt.Errorf("insert registry type %d: name is required", c.Type)
	}
	d := model.Descriptor{
		Name:                c.Name,
		Type:                c.Type,
		Active:              true,
		ImplementationClass: c.ImplementationClass,
		Param:               c.Param,
	}
	if c.Active != nil {
		d.Active = *c.Active
	}
	if c.Order != nil {
		d.Order = *c.Order
	}
	if err := db.WithContext(ctx).Create(&d).Error; err != nil {
		return 0, fmt.Errorf("insert registry type %d: %w", c.Type, err)
	}
	return d.ID, nil
}

// updateEntry writes only the given columns of the row keyed by id.
func updateEntry(ctx context.Context, db *gorm.DB, id int64, ch model.Changes) (int64, error) {
	if len(ch) == 0 {
		return 0, nil
	}
	for _, col := range ch.Columns() {
		if !updatable[col] {
			return 0, fmt.Errorf("update registry id %d: unknown column %q", id, col)
		}
	}
	res := db.WithContext(ctx).Model(&model.Descriptor{}).Where("id = ?", id).Updates(map[string]any(ch))
	if res.Error != nil {
		return 0, fmt.Errorf("update registry id %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
