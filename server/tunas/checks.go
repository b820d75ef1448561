package tunas

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/muchk/internal/cache"
	"github.com/dekarrin/muchk/internal/config"
	"github.com/dekarrin/muchk/internal/eval"
	"github.com/dekarrin/muchk/internal/formula"
	"github.com/dekarrin/muchk/server/dao"
	"github.com/dekarrin/muchk/server/serr"
	"github.com/google/uuid"
)

// GetAllChecks returns every stored check run, regardless of owner.
func (svc Service) GetAllChecks(ctx context.Context) ([]dao.CheckRun, error) {
	checks, err := svc.DB.Checks().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return checks, nil
}

// GetAllChecksByUser returns every check run owned by userID.
func (svc Service) GetAllChecksByUser(ctx context.Context, userID uuid.UUID) ([]dao.CheckRun, error) {
	checks, err := svc.DB.Checks().GetAllByUser(ctx, userID)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return checks, nil
}

// GetCheck returns the check run with the given ID.
func (svc Service) GetCheck(ctx context.Context, id uuid.UUID) (dao.CheckRun, error) {
	c, err := svc.DB.Checks().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.CheckRun{}, serr.ErrNotFound
		}
		return dao.CheckRun{}, serr.WrapDB("could not get check", err)
	}
	return c, nil
}

// RunCheck evaluates the stored formula against the stored system using the
// named algorithm ("naive" or "emerson-lei", defaulting to "emerson-lei" if
// blank), persists the verdict and iteration-count diagnostics, and returns
// the stored check run.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if the
// algorithm name is not recognized, or serr.ErrNotFound if the system or
// formula does not exist.
func (svc Service) RunCheck(ctx context.Context, ownerID, systemID, formulaID uuid.UUID, algorithm string) (dao.CheckRun, error) {
	if algorithm == "" {
		algorithm = config.AlgorithmEmersonLei
	}
	if !config.ValidAlgorithm(algorithm) {
		return dao.CheckRun{}, serr.New("algorithm must be one of 'naive' or 'emerson-lei'", serr.ErrBadArgument)
	}

	sys, err := svc.DB.Systems().GetByID(ctx, systemID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.CheckRun{}, serr.New("system not found", serr.ErrNotFound)
		}
		return dao.CheckRun{}, serr.WrapDB("could not get system", err)
	}

	f, err := svc.DB.Formulas().GetByID(ctx, formulaID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.CheckRun{}, serr.New("formula not found", serr.ErrNotFound)
		}
		return dao.CheckRun{}, serr.WrapDB("could not get formula", err)
	}

	loaded, err := svc.SystemCache.LoadSystem(sys.Source)
	if err != nil {
		return dao.CheckRun{}, serr.New("stored system is no longer valid: "+err.Error())
	}

	root, err := formula.Prepare(f.Source)
	if err != nil {
		return dao.CheckRun{}, serr.New("stored formula is no longer valid: "+err.Error())
	}

	alg := eval.EmersonLeiAlgorithm
	if strings.EqualFold(algorithm, config.AlgorithmNaive) {
		alg = eval.Naive
	}

	var stats eval.Stats
	satisfied := eval.Check(loaded, root, alg, &stats)

	run, err := svc.DB.Checks().Create(ctx, dao.CheckRun{
		UserID:     ownerID,
		SystemID:   systemID,
		FormulaID:  formulaID,
		Algorithm:  algorithm,
		Satisfied:  satisfied,
		Iterations: stats.Total(),
	})
	if err != nil {
		return dao.CheckRun{}, serr.WrapDB("could not persist check run", err)
	}
	return run, nil
}

// DeleteCheck deletes the check run with the given ID and returns it as it
// existed just before deletion.
func (svc Service) DeleteCheck(ctx context.Context, id uuid.UUID) (dao.CheckRun, error) {
	c, err := svc.DB.Checks().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.CheckRun{}, serr.ErrNotFound
		}
		return dao.CheckRun{}, serr.WrapDB("could not delete check", err)
	}
	return c, nil
}
