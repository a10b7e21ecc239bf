package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	sqldb "github.com/jubalh/rip2/internal/database/sqlc"
)

// GraveRepository reads and writes the graves table.
type GraveRepository struct {
	ctx *Context
}

// NewGraveRepository creates a new GraveRepository.
func NewGraveRepository(dbCtx *Context) *GraveRepository {
	return &GraveRepository{ctx: dbCtx}
}

// Create records a burial and returns the new row id.
func (r *GraveRepository) Create(ctx context.Context, originalPath, gravePath string, isDir bool, buriedAt time.Time) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, errMissingContext
	}

	res, err := queries.InsertGrave(ctx, sqldb.InsertGraveParams{
		OriginalPath: originalPath,
		GravePath:    gravePath,
		IsDir:        boolToInt64(isDir),
		BuriedAt:     buriedAt,
	})
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FindLatest returns the most recently buried grave, or nil when the record
// is empty.
func (r *GraveRepository) FindLatest(ctx context.Context) (*GraveRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, errMissingContext
	}
	return oneGrave(queries.FindLatestGrave(ctx))
}

func (r *GraveRepository) FindByGravePath(ctx context.Context, gravePath string) (*GraveRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, errMissingContext
	}
	return oneGrave(queries.FindGraveByGravePath(ctx, gravePath))
}

// FindLatestByOriginalPath returns the newest grave buried from originalPath.
func (r *GraveRepository) FindLatestByOriginalPath(ctx context.Context, originalPath string) (*GraveRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, errMissingContext
	}
	return oneGrave(queries.FindLatestGraveByOriginalPath(ctx, originalPath))
}

// ListUnder returns graves whose original path is dir or lies below it,
// oldest first.
func (r *GraveRepository) ListUnder(ctx context.Context, dir string) ([]GraveRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, errMissingContext
	}

	dir = filepath.Clean(dir)
	lower, upper := prefixBounds(dir)
	rows, err := queries.ListGravesUnder(ctx, sqldb.ListGravesUnderParams{
		Dir:        dir,
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return nil, err
	}
	return mapGraveRows(rows), nil
}

func (r *GraveRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, errMissingContext
	}

	affected, err := queries.DeleteGraveByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Count returns how many graves are recorded.
func (r *GraveRepository) Count(ctx context.Context) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, errMissingContext
	}
	return queries.CountGraves(ctx)
}

func oneGrave(row sqldb.Grave, err error) (*GraveRecord, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	record := mapGraveRow(row)
	return &record, nil
}

func mapGraveRows(rows []sqldb.Grave) []GraveRecord {
	result := make([]GraveRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapGraveRow(row))
	}
	return result
}

func mapGraveRow(row sqldb.Grave) GraveRecord {
	return GraveRecord{
		ID:           row.ID,
		OriginalPath: row.OriginalPath,
		GravePath:    row.GravePath,
		IsDir:        row.IsDir != 0,
		BuriedAt:     optionalTime(row.BuriedAt),
	}
}
