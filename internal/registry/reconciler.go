package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dbpkg "profile-registry/internal/db"
	"profile-registry/internal/model"
)

// Contributor is an attribute module that supplies candidate descriptors.
type Contributor interface {
	Name() string
	Candidates() []model.Candidate
}

// Store is the storage surface a reconciliation pass needs.
type Store interface {
	EnsureOrderColumn(ctx context.Context) (bool, error)
	ListEntries(ctx context.Context) ([]model.Descriptor, error)
	UpdateEntry(ctx context.Context, id int64, ch model.Changes) (int64, error)
	InsertCandidate(ctx context.Context, c model.Candidate) (int64, error)
}

// Transactor runs fn inside a single storage transaction, committing when
// fn returns nil.
type Transactor func(ctx context.Context, fn func(Store) error) error

// DBTransactor adapts the sqlite binding to a Transactor.
func DBTransactor(d *dbpkg.DB) Transactor {
	return func(ctx context.Context, fn func(Store) error) error {
		return d.InTx(ctx, func(r *dbpkg.Repo) error { return fn(r) })
	}
}

// Result summarizes an applied reconciliation pass.
type Result struct {
	PassID      string
	Updated     int
	InsertedIDs []int64
	Unchanged   int
	Retained    int
	AddedOrder  bool
}

// Inserted is the number of new rows.
func (r Result) Inserted() int { return len(r.InsertedIDs) }

// Reconciler aligns the registry table with the registered contributors.
type Reconciler struct {
	tx           Transactor
	contributors []Contributor
	log          *zap.Logger
}

// NewReconciler returns a Reconciler. A nil logger disables logging.
func NewReconciler(tx Transactor, contributors []Contributor, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{tx: tx, contributors: contributors, log: log}
}

// Candidates collects candidates from every contributor in registration order.
func (r *Reconciler) Candidates() []model.Candidate {
	var out []model.Candidate
	seen := make(map[int]string)
	for _, c := range r.contributors {
		for _, cand := range c.Candidates() {
			if owner, dup := seen[cand.Type]; dup {
				r.log.Warn("duplicate attribute type among candidates",
					zap.Int("type", cand.Type),
					zap.String("module", c.Name()),
					zap.String("first_module", owner))
			} else {
				seen[cand.Type] = c.Name()
			}
			out = append(out, cand)
		}
	}
	return out
}

// Upgrade reconciles the registry when newVersion > oldVersion and is a
// no-op otherwise. The pass runs in one transaction: on any storage error
// nothing from this pass is kept.
func (r *Reconciler) Upgrade(ctx context.Context, oldVersion, newVersion int) (Result, error) {
	if newVersion <= oldVersion {
		r.log.Debug("registry up to date",
			zap.Int("old_version", oldVersion), zap.Int("new_version", newVersion))
		return Result{}, nil
	}

	res := Result{PassID: uuid.NewString()}
	log := r.log.With(
		zap.String("pass_id", res.PassID),
		zap.Int("old_version", oldVersion),
		zap.Int("new_version", newVersion),
	)
	candidates := r.Candidates()

	err := r.tx(ctx, func(s Store) error {
		added, err := s.EnsureOrderColumn(ctx)
		if err != nil {
			return err
		}
		res.AddedOrder = added

		persisted, err := s.ListEntries(ctx)
		if err != nil {
			return err
		}
		plan := BuildPlan(persisted, candidates)

		for _, u := range plan.Updates {
			if _, err := s.UpdateEntry(ctx, u.ID, u.Changes); err != nil {
				return err
			}
			log.Debug("registry row updated",
				zap.Int64("id", u.ID), zap.Int("type", u.Type), zap.Strings("columns", u.Changes.Columns()))
			res.Updated++
		}
		for _, c := range plan.Inserts {
			id, err := s.InsertCandidate(ctx, c)
			if err != nil {
				return err
			}
			log.Debug("registry row inserted", zap.Int64("id", id), zap.Int("type", c.Type), zap.String("name", c.Name))
			res.InsertedIDs = append(res.InsertedIDs, id)
		}
		res.Unchanged = len(plan.Unchanged)
		res.Retained = len(plan.Retained)
		return nil
	})
	if err != nil {
		log.Error("registry reconciliation failed", zap.Error(err))
		return Result{}, fmt.Errorf("reconcile registry %d -> %d: %w", oldVersion, newVersion, err)
	}

	log.Info("registry reconciled",
		zap.Int("candidates", len(candidates)),
		zap.Int("updated", res.Updated),
		zap.Int("inserted", res.Inserted()),
		zap.Int("unchanged", res.Unchanged),
		zap.Int("retained", res.Retained),
		zap.Bool("added_order_column", res.AddedOrder),
	)
	return res, nil
}
