package tunas

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/muchk/internal/lts"
	"github.com/dekarrin/muchk/server/dao"
	"github.com/dekarrin/muchk/server/serr"
	"github.com/google/uuid"
)

// GetAllSystems returns every stored system, regardless of owner. Callers
// that need to scope this to one user should use GetAllSystemsByUser.
func (svc Service) GetAllSystems(ctx context.Context) ([]dao.System, error) {
	systems, err := svc.DB.Systems().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return systems, nil
}

// GetAllSystemsByUser returns every system owned by userID.
func (svc Service) GetAllSystemsByUser(ctx context.Context, userID uuid.UUID) ([]dao.System, error) {
	systems, err := svc.DB.Systems().GetAllByUser(ctx, userID)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return systems, nil
}

// GetSystem returns the system with the given ID.
func (svc Service) GetSystem(ctx context.Context, id uuid.UUID) (dao.System, error) {
	sys, err := svc.DB.Systems().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.System{}, serr.ErrNotFound
		}
		return dao.System{}, serr.WrapDB("could not get system", err)
	}
	return sys, nil
}

// CreateSystem parses source as Aldebaran text to validate it, then stores it
// under the given owner and name.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if source
// does not parse as a well-formed LTS.
func (svc Service) CreateSystem(ctx context.Context, ownerID uuid.UUID, name, source string) (dao.System, error) {
	if strings.TrimSpace(name) == "" {
		return dao.System{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}

	if _, err := lts.Load(strings.NewReader(source)); err != nil {
		return dao.System{}, serr.New("system source is not valid Aldebaran text: "+err.Error(), serr.ErrBadArgument)
	}

	sys, err := svc.DB.Systems().Create(ctx, dao.System{
		UserID: ownerID,
		Name:   name,
		Source: source,
	})
	if err != nil {
		return dao.System{}, serr.WrapDB("could not create system", err)
	}
	return sys, nil
}

// DeleteSystem deletes the system with the given ID and returns it as it
// existed just before deletion.
func (svc Service) DeleteSystem(ctx context.Context, id uuid.UUID) (dao.System, error) {
	sys, err := svc.DB.Systems().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.System{}, serr.ErrNotFound
		}
		return dao.System{}, serr.WrapDB("could not delete system", err)
	}
	return sys, nil
}
