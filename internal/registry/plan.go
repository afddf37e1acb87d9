package registry

import (
	"slices"

	"profile-registry/internal/model"
)

// Update is one targeted row update produced by a reconciliation plan.
type Update struct {
	ID      int64
	Type    int
	Changes model.Changes
}

// Plan is the set of mutations that aligns persisted rows with candidates.
type Plan struct {
	Updates []Update
	Inserts []model.Candidate
	// Unchanged rows matched a candidate with nothing to write.
	Unchanged []model.Descriptor
	// Retained rows matched no candidate and are left as they are.
	Retained []model.Descriptor
}

// Empty reports whether applying the plan would mutate nothing.
func (p Plan) Empty() bool { return len(p.Updates) == 0 && len(p.Inserts) == 0 }

// BuildPlan matches each persisted row with the first candidate of the same
// type. Matched candidates are consumed; whatever is left is inserted.
// Candidates must not repeat a type.
func BuildPlan(persisted []model.Descriptor, candidates []model.Candidate) Plan {
	remaining := slices.Clone(candidates)
	var p Plan
	for _, d := range persisted {
		idx := slices.IndexFunc(remaining, func(c model.Candidate) bool { return c.Type == d.Type })
		if idx < 0 {
			p.Retained = append(p.Retained, d)
			continue
		}
		ch := UpdateValues(d, remaining[idx])
		if len(ch) > 0 {
			p.Updates = append(p.Updates, Update{ID: d.ID, Type: d.Type, Changes: ch})
		} else {
			p.Unchanged = append(p.Unchanged, d)
		}
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	p.Inserts = remaining
	return p
}

// UpdateValues returns the candidate-owned fields that differ from the
// persisted row. Empty strings and nil pointers mean the candidate leaves
// the field alone.
func UpdateValues(d model.Descriptor, c model.Candidate) model.Changes {
	ch := model.Changes{}
	if c.Name != "" && c.Name != d.Name {
		ch[model.ColumnName] = c.Name
	}
	if c.ImplementationClass != "" && c.ImplementationClass != d.ImplementationClass {
		ch[model.ColumnImplementationClass] = c.ImplementationClass
	}
	if c.Param != "" && c.Param != d.Param {
		ch[model.ColumnParam] = c.Param
	}
	if c.Order != nil && *c.Order != d.Order {
		ch[model.ColumnOrder] = *c.Order
	}
	if c.Active != nil && *c.Active != d.Active {
		ch[model.ColumnActive] = *c.Active
	}
	return ch
}
