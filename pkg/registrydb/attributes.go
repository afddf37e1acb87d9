package registrydb

import (
	"context"
	"errors"

	dbpkg "profile-registry/internal/db"
	"profile-registry/internal/model"
	"profile-registry/internal/registry"
)

// ErrNotFound matches every failed lookup via errors.Is.
var ErrNotFound = registry.ErrNotFound

// NotFoundError carries the key of a failed lookup; use errors.As.
type NotFoundError = registry.NotFoundError

// --------------------
// Attribute DTOs and converters
// --------------------

type Attribute struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Type                int    `json:"type"`
	Active              bool   `json:"active"`
	ImplementationClass string `json:"implementation_class"`
	Param               string `json:"param"`
	Order               int    `json:"order"`
}

func fromModel(d *model.Descriptor) *Attribute {
	if d == nil {
		return nil
	}
	return &Attribute{
		ID:                  d.ID,
		Name:                d.Name,
		Type:                d.Type,
		Active:              d.Active,
		ImplementationClass: d.ImplementationClass,
		Param:               d.Param,
		Order:               d.Order,
	}
}

func fromModelList(ds []model.Descriptor) []Attribute {
	out := make([]Attribute, 0, len(ds))
	for i := range ds {
		out = append(out, *fromModel(&ds[i]))
	}
	return out
}

// --------------------
// Lookups
// --------------------

// List returns every attribute sorted by order, then type.
func (c *Client) List(ctx context.Context) ([]Attribute, error) {
	ds, err := c.db.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return fromModelList(ds), nil
}

// Active returns active attributes sorted by type.
func (c *Client) Active(ctx context.Context) ([]Attribute, error) {
	ds, err := c.db.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return fromModelList(ds), nil
}

func (c *Client) ByID(ctx context.Context, id int64) (*Attribute, error) {
	d, err := c.db.GetByID(ctx, id)
	if errors.Is(err, dbpkg.ErrNoEntry) {
		return nil, registry.UnknownID(id)
	}
	if err != nil {
		return nil, err
	}
	return fromModel(d), nil
}

func (c *Client) ByName(ctx context.Context, name string) (*Attribute, error) {
	d, err := c.db.GetByName(ctx, name)
	if errors.Is(err, dbpkg.ErrNoEntry) {
		return nil, registry.UnknownName(name)
	}
	if err != nil {
		return nil, err
	}
	return fromModel(d), nil
}

func (c *Client) ByType(ctx context.Context, typ int) (*Attribute, error) {
	d, err := c.db.GetByType(ctx, typ)
	if errors.Is(err, dbpkg.ErrNoEntry) {
		return nil, registry.UnknownType(typ)
	}
	if err != nil {
		return nil, err
	}
	return fromModel(d), nil
}

// --------------------
// Edits
// --------------------

// AddRegistryEntry inserts an active attribute and returns its id.
func (c *Client) AddRegistryEntry(ctx context.Context, name string, typ int, implClass, param string, order int) (int64, error) {
	return c.db.AddRegistryEntry(ctx, name, typ, implClass, param, order)
}

// SetActive enables or disables an attribute.
func (c *Client) SetActive(ctx context.Context, id int64, active bool) error {
	n, err := c.db.SetActive(ctx, id, active)
	if err != nil {
		return err
	}
	if n == 0 {
		return registry.UnknownID(id)
	}
	return nil
}

// SetOrder changes an attribute's display rank.
func (c *Client) SetOrder(ctx context.Context, id int64, order int) error {
	n, err := c.db.SetOrder(ctx, id, order)
	if err != nil {
		return err
	}
	if n == 0 {
		return registry.UnknownID(id)
	}
	return nil
}
