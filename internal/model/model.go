package model

import "sort"

// Table and column names of the attribute registry.
const (
	TableRegistry = "registry"

	ColumnID                  = "id"
	ColumnName                = "name"
	ColumnType                = "type"
	ColumnActive              = "active"
	ColumnImplementationClass = "implementationClass"
	ColumnParam               = "param"
	ColumnOrder               = "order"
)

// Descriptor is a registry row: one controllable device attribute and the
// code that handles it. ID is always set for rows read from storage.
type Descriptor struct {
	ID                  int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name                string `gorm:"column:name"`
	Type                int    `gorm:"column:type"`
	Active              bool   `gorm:"column:active"`
	ImplementationClass string `gorm:"column:implementationClass"`
	Param               string `gorm:"column:param"`
	Order               int    `gorm:"column:order"`
}

// TableName binds Descriptor to the registry table.
func (Descriptor) TableName() string { return TableRegistry }

// Candidate is a descriptor computed by an attribute module during an
// upgrade pass. It has no ID. Order and Active are nil unless the module
// redefines them; nil never overwrites what the user stored.
type Candidate struct {
	Name                string
	Type                int
	ImplementationClass string
	Param               string
	Order               *int
	Active              *bool
}

// Changes maps column names to new values for a partial row update.
type Changes map[string]any

// Columns returns the changed column names in a stable order.
func (c Changes) Columns() []string {
	cols := make([]string, 0, len(c))
	for k := range c {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// IntPtr and BoolPtr help building candidates that redefine order or active.
func IntPtr(v int) *int { return &v }

func BoolPtr(v bool) *bool { return &v }
