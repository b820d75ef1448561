package tunas

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/muchk/internal/formula"
	"github.com/dekarrin/muchk/server/dao"
	"github.com/dekarrin/muchk/server/serr"
	"github.com/google/uuid"
)

// GetAllFormulas returns every stored formula, regardless of owner.
func (svc Service) GetAllFormulas(ctx context.Context) ([]dao.Formula, error) {
	formulas, err := svc.DB.Formulas().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return formulas, nil
}

// GetAllFormulasByUser returns every formula owned by userID.
func (svc Service) GetAllFormulasByUser(ctx context.Context, userID uuid.UUID) ([]dao.Formula, error) {
	formulas, err := svc.DB.Formulas().GetAllByUser(ctx, userID)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return formulas, nil
}

// GetFormula returns the formula with the given ID.
func (svc Service) GetFormula(ctx context.Context, id uuid.UUID) (dao.Formula, error) {
	f, err := svc.DB.Formulas().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Formula{}, serr.ErrNotFound
		}
		return dao.Formula{}, serr.WrapDB("could not get formula", err)
	}
	return f, nil
}

// CreateFormula parses source to validate it as a closed mu-calculus formula,
// then stores it under the given owner and name.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if source
// does not parse, or contains a free variable.
func (svc Service) CreateFormula(ctx context.Context, ownerID uuid.UUID, name, source string) (dao.Formula, error) {
	if strings.TrimSpace(name) == "" {
		return dao.Formula{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}

	if _, err := formula.Prepare(source); err != nil {
		return dao.Formula{}, serr.New("formula source is invalid: "+err.Error(), serr.ErrBadArgument)
	}

	f, err := svc.DB.Formulas().Create(ctx, dao.Formula{
		UserID: ownerID,
		Name:   name,
		Source: source,
	})
	if err != nil {
		return dao.Formula{}, serr.WrapDB("could not create formula", err)
	}
	return f, nil
}

// DeleteFormula deletes the formula with the given ID and returns it as it
// existed just before deletion.
func (svc Service) DeleteFormula(ctx context.Context, id uuid.UUID) (dao.Formula, error) {
	f, err := svc.DB.Formulas().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Formula{}, serr.ErrNotFound
		}
		return dao.Formula{}, serr.WrapDB("could not delete formula", err)
	}
	return f, nil
}
