package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/muchk/server/dao"
	"github.com/google/uuid"
)

type ChecksDB struct {
	db *sql.DB
}

func NewChecksDBConn(file string) (*ChecksDB, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	repo := &ChecksDB{db: db}
	return repo, repo.init()
}

func (repo *ChecksDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS checks (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE,
		system_id TEXT NOT NULL REFERENCES systems(id) ON DELETE CASCADE ON UPDATE CASCADE,
		formula_id TEXT NOT NULL REFERENCES formulas(id) ON DELETE CASCADE ON UPDATE CASCADE,
		algorithm TEXT NOT NULL,
		satisfied INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		created INTEGER NOT NULL
	);`)
	return wrapDBError(err)
}

func (repo *ChecksDB) Create(ctx context.Context, c dao.CheckRun) (dao.CheckRun, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.CheckRun{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO checks (id, user_id, system_id, formula_id, algorithm, satisfied, iterations, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.CheckRun{}, wrapDBError(err)
	}

	satisfied := 0
	if c.Satisfied {
		satisfied = 1
	}

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(c.UserID),
		convertToDB_UUID(c.SystemID),
		convertToDB_UUID(c.FormulaID),
		c.Algorithm,
		satisfied,
		c.Iterations,
		convertToDB_Time(time.Now()),
	)
	if err != nil {
		return dao.CheckRun{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *ChecksDB) scanRow(id, userID, systemID, formulaID, algorithm string, satisfied, iterations int, created int64) (dao.CheckRun, error) {
	c := dao.CheckRun{
		Algorithm:  algorithm,
		Satisfied:  satisfied != 0,
		Iterations: iterations,
	}

	if err := convertFromDB_UUID(id, &c.ID); err != nil {
		return c, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := convertFromDB_UUID(userID, &c.UserID); err != nil {
		return c, fmt.Errorf("stored user ID %q is invalid: %w", userID, err)
	}
	if err := convertFromDB_UUID(systemID, &c.SystemID); err != nil {
		return c, fmt.Errorf("stored system ID %q is invalid: %w", systemID, err)
	}
	if err := convertFromDB_UUID(formulaID, &c.FormulaID); err != nil {
		return c, fmt.Errorf("stored formula ID %q is invalid: %w", formulaID, err)
	}
	convertFromDB_Time(created, &c.Created)

	return c, nil
}

func (repo *ChecksDB) GetAll(ctx context.Context) ([]dao.CheckRun, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, user_id, system_id, formula_id, algorithm, satisfied, iterations, created FROM checks ORDER BY created;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.CheckRun
	for rows.Next() {
		var id, userID, systemID, formulaID, algorithm string
		var satisfied, iterations int
		var created int64
		if err := rows.Scan(&id, &userID, &systemID, &formulaID, &algorithm, &satisfied, &iterations, &created); err != nil {
			return nil, wrapDBError(err)
		}

		c, err := repo.scanRow(id, userID, systemID, formulaID, algorithm, satisfied, iterations, created)
		if err != nil {
			return all, err
		}
		all = append(all, c)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *ChecksDB) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.CheckRun, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, system_id, formula_id, algorithm, satisfied, iterations, created FROM checks WHERE user_id=? ORDER BY created;`, convertToDB_UUID(userID))
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.CheckRun
	for rows.Next() {
		var id, systemID, formulaID, algorithm string
		var satisfied, iterations int
		var created int64
		if err := rows.Scan(&id, &systemID, &formulaID, &algorithm, &satisfied, &iterations, &created); err != nil {
			return nil, wrapDBError(err)
		}

		c, err := repo.scanRow(id, convertToDB_UUID(userID), systemID, formulaID, algorithm, satisfied, iterations, created)
		if err != nil {
			return all, err
		}
		all = append(all, c)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *ChecksDB) GetByID(ctx context.Context, id uuid.UUID) (dao.CheckRun, error) {
	var userID, systemID, formulaID, algorithm string
	var satisfied, iterations int
	var created int64

	row := repo.db.QueryRowContext(ctx, `SELECT user_id, system_id, formula_id, algorithm, satisfied, iterations, created FROM checks WHERE id = ?;`, convertToDB_UUID(id))
	if err := row.Scan(&userID, &systemID, &formulaID, &algorithm, &satisfied, &iterations, &created); err != nil {
		return dao.CheckRun{ID: id}, wrapDBError(err)
	}

	return repo.scanRow(convertToDB_UUID(id), userID, systemID, formulaID, algorithm, satisfied, iterations, created)
}

func (repo *ChecksDB) Delete(ctx context.Context, id uuid.UUID) (dao.CheckRun, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM checks WHERE id = ?`, convertToDB_UUID(id))
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

func (repo *ChecksDB) Close() error {
	return repo.db.Close()
}
