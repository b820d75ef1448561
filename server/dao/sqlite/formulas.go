package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/muchk/server/dao"
	"github.com/google/uuid"
)

type FormulasDB struct {
	db *sql.DB
}

func NewFormulasDBConn(file string) (*FormulasDB, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	repo := &FormulasDB{db: db}
	return repo, repo.init()
}

func (repo *FormulasDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS formulas (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`)
	return wrapDBError(err)
}

func (repo *FormulasDB) Create(ctx context.Context, f dao.Formula) (dao.Formula, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Formula{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO formulas (id, user_id, name, source, created, modified) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Formula{}, wrapDBError(err)
	}

	now := time.Now()

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(f.UserID),
		f.Name,
		f.Source,
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Formula{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *FormulasDB) scanRow(id, userID string, name, source *string, created, modified *int64) (dao.Formula, error) {
	f := dao.Formula{Name: *name, Source: *source}

	if err := convertFromDB_UUID(id, &f.ID); err != nil {
		return f, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := convertFromDB_UUID(userID, &f.UserID); err != nil {
		return f, fmt.Errorf("stored user ID %q is invalid: %w", userID, err)
	}
	convertFromDB_Time(*created, &f.Created)
	convertFromDB_Time(*modified, &f.Modified)

	return f, nil
}

func (repo *FormulasDB) GetAll(ctx context.Context) ([]dao.Formula, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, user_id, name, source, created, modified FROM formulas;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Formula
	for rows.Next() {
		var id, userID, name, source string
		var created, modified int64
		if err := rows.Scan(&id, &userID, &name, &source, &created, &modified); err != nil {
			return nil, wrapDBError(err)
		}

		f, err := repo.scanRow(id, userID, &name, &source, &created, &modified)
		if err != nil {
			return all, err
		}
		all = append(all, f)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *FormulasDB) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Formula, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, source, created, modified FROM formulas WHERE user_id=?;`, convertToDB_UUID(userID))
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Formula
	for rows.Next() {
		var id, name, source string
		var created, modified int64
		if err := rows.Scan(&id, &name, &source, &created, &modified); err != nil {
			return nil, wrapDBError(err)
		}

		f, err := repo.scanRow(id, convertToDB_UUID(userID), &name, &source, &created, &modified)
		if err != nil {
			return all, err
		}
		all = append(all, f)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *FormulasDB) Update(ctx context.Context, id uuid.UUID, f dao.Formula) (dao.Formula, error) {
	res, err := repo.db.ExecContext(ctx, `UPDATE formulas SET id=?, user_id=?, name=?, source=?, modified=? WHERE id=?;`,
		convertToDB_UUID(f.ID),
		convertToDB_UUID(f.UserID),
		f.Name,
		f.Source,
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.Formula{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.Formula{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.Formula{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, f.ID)
}

func (repo *FormulasDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Formula, error) {
	var userID, name, source string
	var created, modified int64

	row := repo.db.QueryRowContext(ctx, `SELECT user_id, name, source, created, modified FROM formulas WHERE id = ?;`, convertToDB_UUID(id))
	if err := row.Scan(&userID, &name, &source, &created, &modified); err != nil {
		return dao.Formula{ID: id}, wrapDBError(err)
	}

	return repo.scanRow(convertToDB_UUID(id), userID, &name, &source, &created, &modified)
}

func (repo *FormulasDB) Delete(ctx context.Context, id uuid.UUID) (dao.Formula, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM formulas WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *FormulasDB) Close() error {
	return repo.db.Close()
}
