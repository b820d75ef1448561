package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dekarrin/muchk/server/dao"
	"github.com/google/uuid"
)

func NewFormulasRepository() *InMemoryFormulasRepository {
	return &InMemoryFormulasRepository{
		formulas: make(map[uuid.UUID]dao.Formula),
	}
}

type InMemoryFormulasRepository struct {
	formulas map[uuid.UUID]dao.Formula
}

func (r *InMemoryFormulasRepository) Close() error {
	return nil
}

func (r *InMemoryFormulasRepository) Create(ctx context.Context, f dao.Formula) (dao.Formula, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Formula{}, fmt.Errorf("could not generate ID: %w", err)
	}

	f.ID = newUUID
	f.Created = time.Now()
	f.Modified = f.Created

	r.formulas[f.ID] = f

	return f, nil
}

func (r *InMemoryFormulasRepository) GetAll(ctx context.Context) ([]dao.Formula, error) {
	all := make([]dao.Formula, 0, len(r.formulas))
	for k := range r.formulas {
		all = append(all, r.formulas[k])
	}

	sort.Slice(all, func(l, r int) bool {
		return all[l].ID.String() < all[r].ID.String()
	})

	return all, nil
}

func (r *InMemoryFormulasRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Formula, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]dao.Formula, 0, len(all))
	for _, f := range all {
		if f.UserID == userID {
			owned = append(owned, f)
		}
	}

	return owned, nil
}

func (r *InMemoryFormulasRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Formula, error) {
	f, ok := r.formulas[id]
	if !ok {
		return dao.Formula{}, dao.ErrNotFound
	}

	return f, nil
}

func (r *InMemoryFormulasRepository) Update(ctx context.Context, id uuid.UUID, f dao.Formula) (dao.Formula, error) {
	if _, ok := r.formulas[id]; !ok {
		return dao.Formula{}, dao.ErrNotFound
	}

	f.Modified = time.Now()
	r.formulas[id] = f
	if f.ID != id {
		delete(r.formulas, id)
		r.formulas[f.ID] = f
	}

	return f, nil
}

func (r *InMemoryFormulasRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Formula, error) {
	f, ok := r.formulas[id]
	if !ok {
		return dao.Formula{}, dao.ErrNotFound
	}

	delete(r.formulas, id)

	return f, nil
}
