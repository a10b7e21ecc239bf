package sqldb

import (
	"context"
	"database/sql"
	"time"
)

const graveColumns = `id, original_path, grave_path, is_dir, buried_at`

func scanGrave(row interface{ Scan(dest ...any) error }) (Grave, error) {
	var g Grave
	err := row.Scan(&g.ID, &g.OriginalPath, &g.GravePath, &g.IsDir, &g.BuriedAt)
	return g, err
}

func scanGraves(rows *sql.Rows) ([]Grave, error) {
	defer rows.Close()
	var items []Grave
	for rows.Next() {
		g, err := scanGrave(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertGrave = `INSERT INTO graves (original_path, grave_path, is_dir, buried_at) VALUES (?, ?, ?, ?)`

type InsertGraveParams struct {
	OriginalPath string
	GravePath    string
	IsDir        int64
	BuriedAt     time.Time
}

func (q *Queries) InsertGrave(ctx context.Context, arg InsertGraveParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertGrave, arg.OriginalPath, arg.GravePath, arg.IsDir, arg.BuriedAt)
}

const findLatestGrave = `SELECT ` + graveColumns + ` FROM graves ORDER BY id DESC LIMIT 1`

func (q *Queries) FindLatestGrave(ctx context.Context) (Grave, error) {
	return scanGrave(q.db.QueryRowContext(ctx, findLatestGrave))
}

const findGraveByGravePath = `SELECT ` + graveColumns + ` FROM graves WHERE grave_path = ?`

func (q *Queries) FindGraveByGravePath(ctx context.Context, gravePath string) (Grave, error) {
	return scanGrave(q.db.QueryRowContext(ctx, findGraveByGravePath, gravePath))
}

const findLatestGraveByOriginalPath = `SELECT ` + graveColumns + ` FROM graves WHERE original_path = ? ORDER BY id DESC LIMIT 1`

func (q *Queries) FindLatestGraveByOriginalPath(ctx context.Context, originalPath string) (Grave, error) {
	return scanGrave(q.db.QueryRowContext(ctx, findLatestGraveByOriginalPath, originalPath))
}

const listGravesUnder = `SELECT ` + graveColumns + ` FROM graves
WHERE original_path = ? OR (original_path >= ? AND original_path < ?)
ORDER BY id`

type ListGravesUnderParams struct {
	Dir        string
	LowerBound string
	UpperBound string
}

func (q *Queries) ListGravesUnder(ctx context.Context, arg ListGravesUnderParams) ([]Grave, error) {
	rows, err := q.db.QueryContext(ctx, listGravesUnder, arg.Dir, arg.LowerBound, arg.UpperBound)
	if err != nil {
		return nil, err
	}
	return scanGraves(rows)
}

const deleteGraveByID = `DELETE FROM graves WHERE id = ?`

func (q *Queries) DeleteGraveByID(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteGraveByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteAllGraves = `DELETE FROM graves`

func (q *Queries) DeleteAllGraves(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllGraves)
	return err
}

const countGraves = `SELECT COUNT(*) FROM graves`

func (q *Queries) CountGraves(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countGraves).Scan(&count)
	return count, err
}
