package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dekarrin/muchk/server/dao"
	"github.com/google/uuid"
)

func NewSystemsRepository() *InMemorySystemsRepository {
	return &InMemorySystemsRepository{
		systems: make(map[uuid.UUID]dao.System),
	}
}

type InMemorySystemsRepository struct {
	systems map[uuid.UUID]dao.System
}

func (r *InMemorySystemsRepository) Close() error {
	return nil
}

func (r *InMemorySystemsRepository) Create(ctx context.Context, sys dao.System) (dao.System, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.System{}, fmt.Errorf("could not generate ID: %w", err)
	}

	sys.ID = newUUID
	sys.Created = time.Now()
	sys.Modified = sys.Created

	r.systems[sys.ID] = sys

	return sys, nil
}

func (r *InMemorySystemsRepository) GetAll(ctx context.Context) ([]dao.System, error) {
	all := make([]dao.System, 0, len(r.systems))
	for k := range r.systems {
		all = append(all, r.systems[k])
	}

	sort.Slice(all, func(l, r int) bool {
		return all[l].ID.String() < all[r].ID.String()
	})

	return all, nil
}

func (r *InMemorySystemsRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.System, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]dao.System, 0, len(all))
	for _, sys := range all {
		if sys.UserID == userID {
			owned = append(owned, sys)
		}
	}

	return owned, nil
}

func (r *InMemorySystemsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.System, error) {
	sys, ok := r.systems[id]
	if !ok {
		return dao.System{}, dao.ErrNotFound
	}

	return sys, nil
}

func (r *InMemorySystemsRepository) Update(ctx context.Context, id uuid.UUID, sys dao.System) (dao.System, error) {
	if _, ok := r.systems[id]; !ok {
		return dao.System{}, dao.ErrNotFound
	}

	sys.Modified = time.Now()
	r.systems[id] = sys
	if sys.ID != id {
		delete(r.systems, id)
		r.systems[sys.ID] = sys
	}

	return sys, nil
}

func (r *InMemorySystemsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.System, error) {
	sys, ok := r.systems[id]
	if !ok {
		return dao.System{}, dao.ErrNotFound
	}

	delete(r.systems, id)

	return sys, nil
}
