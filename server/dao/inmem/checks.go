package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dekarrin/muchk/server/dao"
	"github.com/google/uuid"
)

func NewChecksRepository() *InMemoryChecksRepository {
	return &InMemoryChecksRepository{
		checks: make(map[uuid.UUID]dao.CheckRun),
	}
}

type InMemoryChecksRepository struct {
	checks map[uuid.UUID]dao.CheckRun
}

func (r *InMemoryChecksRepository) Close() error {
	return nil
}

func (r *InMemoryChecksRepository) Create(ctx context.Context, c dao.CheckRun) (dao.CheckRun, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.CheckRun{}, fmt.Errorf("could not generate ID: %w", err)
	}

	c.ID = newUUID
	c.Created = time.Now()

	r.checks[c.ID] = c

	return c, nil
}

func (r *InMemoryChecksRepository) GetAll(ctx context.Context) ([]dao.CheckRun, error) {
	all := make([]dao.CheckRun, 0, len(r.checks))
	for k := range r.checks {
		all = append(all, r.checks[k])
	}

	sort.Slice(all, func(l, r int) bool {
		return all[l].Created.Before(all[r].Created)
	})

	return all, nil
}

func (r *InMemoryChecksRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.CheckRun, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]dao.CheckRun, 0, len(all))
	for _, c := range all {
		if c.UserID == userID {
			owned = append(owned, c)
		}
	}

	return owned, nil
}

func (r *InMemoryChecksRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.CheckRun, error) {
	c, ok := r.checks[id]
	if !ok {
		return dao.CheckRun{}, dao.ErrNotFound
	}

	return c, nil
}

func (r *InMemoryChecksRepository) Delete(ctx context.Context, id uuid.UUID) (dao.CheckRun, error) {
	c, ok := r.checks[id]
	if !ok {
		return dao.CheckRun{}, dao.ErrNotFound
	}

	delete(r.checks, id)

	return c, nil
}
