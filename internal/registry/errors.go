package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every NotFoundError via errors.Is.
var ErrNotFound = errors.New("attribute not found")

// LookupKind says which key a failed lookup used.
type LookupKind int

const (
	ByName LookupKind = iota + 1
	ByType
	ByID
)

func (k LookupKind) String() string {
	switch k {
	case ByName:
		return "name"
	case ByType:
		return "type"
	case ByID:
		return "id"
	default:
		return "unknown"
	}
}

// NotFoundError is returned when a registry lookup does not resolve.
// Only the field matching By is meaningful.
type NotFoundError struct {
	By   LookupKind
	Name string
	Type int
	ID   int64
}

func (e *NotFoundError) Error() string {
	switch e.By {
	case ByName:
		return fmt.Sprintf("attribute name '%s' is not known", e.Name)
	case ByType:
		return fmt.Sprintf("attribute type '%d' is not known", e.Type)
	case ByID:
		return fmt.Sprintf("attribute id '%d' is not known", e.ID)
	default:
		return ErrNotFound.Error()
	}
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func UnknownName(name string) error { return &NotFoundError{By: ByName, Name: name} }

func UnknownType(typ int) error { return &NotFoundError{By: ByType, Type: typ} }

func UnknownID(id int64) error { return &NotFoundError{By: ByID, ID: id} }
