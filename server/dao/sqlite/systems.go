package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/muchk/server/dao"
	"github.com/google/uuid"
)

type SystemsDB struct {
	db *sql.DB
}

func NewSystemsDBConn(file string) (*SystemsDB, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	repo := &SystemsDB{db: db}
	return repo, repo.init()
}

func (repo *SystemsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS systems (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`)
	return wrapDBError(err)
}

func (repo *SystemsDB) Create(ctx context.Context, sys dao.System) (dao.System, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.System{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO systems (id, user_id, name, source, created, modified) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.System{}, wrapDBError(err)
	}

	now := time.Now()

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(sys.UserID),
		sys.Name,
		sys.Source,
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.System{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *SystemsDB) scanRow(id, userID string, name, source *string, created, modified *int64) (dao.System, error) {
	sys := dao.System{Name: *name, Source: *source}

	if err := convertFromDB_UUID(id, &sys.ID); err != nil {
		return sys, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := convertFromDB_UUID(userID, &sys.UserID); err != nil {
		return sys, fmt.Errorf("stored user ID %q is invalid: %w", userID, err)
	}
	convertFromDB_Time(*created, &sys.Created)
	convertFromDB_Time(*modified, &sys.Modified)

	return sys, nil
}

func (repo *SystemsDB) GetAll(ctx context.Context) ([]dao.System, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, user_id, name, source, created, modified FROM systems;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.System
	for rows.Next() {
		var id, userID, name, source string
		var created, modified int64
		if err := rows.Scan(&id, &userID, &name, &source, &created, &modified); err != nil {
			return nil, wrapDBError(err)
		}

		sys, err := repo.scanRow(id, userID, &name, &source, &created, &modified)
		if err != nil {
			return all, err
		}
		all = append(all, sys)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *SystemsDB) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.System, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, source, created, modified FROM systems WHERE user_id=?;`, convertToDB_UUID(userID))
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.System
	for rows.Next() {
		var id, name, source string
		var created, modified int64
		if err := rows.Scan(&id, &name, &source, &created, &modified); err != nil {
			return nil, wrapDBError(err)
		}

		sys, err := repo.scanRow(id, convertToDB_UUID(userID), &name, &source, &created, &modified)
		if err != nil {
			return all, err
		}
		all = append(all, sys)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *SystemsDB) Update(ctx context.Context, id uuid.UUID, sys dao.System) (dao.System, error) {
	res, err := repo.db.ExecContext(ctx, `UPDATE systems SET id=?, user_id=?, name=?, source=?, modified=? WHERE id=?;`,
		convertToDB_UUID(sys.ID),
		convertToDB_UUID(sys.UserID),
		sys.Name,
		sys.Source,
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.System{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.System{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.System{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, sys.ID)
}

func (repo *SystemsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.System, error) {
	var userID, name, source string
	var created, modified int64

	row := repo.db.QueryRowContext(ctx, `SELECT user_id, name, source, created, modified FROM systems WHERE id = ?;`, convertToDB_UUID(id))
	if err := row.Scan(&userID, &name, &source, &created, &modified); err != nil {
		return dao.System{ID: id}, wrapDBError(err)
	}

	return repo.scanRow(convertToDB_UUID(id), userID, &name, &source, &created, &modified)
}

func (repo *SystemsDB) Delete(ctx context.Context, id uuid.UUID) (dao.System, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM systems WHERE id = ?`, convertToDB_UUID(id))
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

func (repo *SystemsDB) Close() error {
	return repo.db.Close()
}
