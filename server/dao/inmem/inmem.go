package inmem

import (
	"fmt"

	"github.com/dekarrin/muchk/server/dao"
)

type store struct {
	users    *InMemoryUsersRepository
	systems  *InMemorySystemsRepository
	formulas *InMemoryFormulasRepository
	checks   *InMemoryChecksRepository
}

func NewDatastore() dao.Store {
	return &store{
		users:    NewUsersRepository(),
		systems:  NewSystemsRepository(),
		formulas: NewFormulasRepository(),
		checks:   NewChecksRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Systems() dao.SystemRepository {
	return s.systems
}

func (s *store) Formulas() dao.FormulaRepository {
	return s.formulas
}

func (s *store) Checks() dao.CheckRepository {
	return s.checks
}

func (s *store) Close() error {
	var err error
	var nextErr error

	nextErr = s.users.Close()
	if nextErr != err {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}
	nextErr = s.systems.Close()
	if nextErr != err {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}
	nextErr = s.formulas.Close()
	if nextErr != err {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}
	nextErr = s.checks.Close()
	if nextErr != err {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}

	return err
}
