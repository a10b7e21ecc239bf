package services

import (
	"context"
	"errors"
	"time"

	"github.com/jubalh/rip2/internal/database"
)

// ErrNotFound is returned when no grave matches a lookup.
var ErrNotFound = errors.New("grave not found")

// GraveService exposes the burial record to the use case layer.
type GraveService struct {
	ctx  *database.Context
	repo *database.GraveRepository
	now  func() time.Time
}

// NewGraveService creates a new GraveService.
func NewGraveService(ctx *database.Context) *GraveService {
	return &GraveService{
		ctx:  ctx,
		repo: database.NewGraveRepository(ctx),
		now:  time.Now,
	}
}

// Record stores a burial stamped with the current time.
func (s *GraveService) Record(ctx context.Context, originalPath, gravePath string, isDir bool) (*database.GraveRecord, error) {
	buriedAt := s.now()
	id, err := s.repo.Create(ctx, originalPath, gravePath, isDir, buriedAt)
	if err != nil {
		return nil, err
	}
	return &database.GraveRecord{
		ID:           id,
		OriginalPath: originalPath,
		GravePath:    gravePath,
		IsDir:        isDir,
		BuriedAt:     buriedAt,
	}, nil
}

// Latest returns the most recent burial.
func (s *GraveService) Latest(ctx context.Context) (*database.GraveRecord, error) {
	return found(s.repo.FindLatest(ctx))
}

// Find matches path against grave paths first and original paths second,
// preferring the newest burial of an original path.
func (s *GraveService) Find(ctx context.Context, path string) (*database.GraveRecord, error) {
	record, err := s.repo.FindByGravePath(ctx, path)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}
	return found(s.repo.FindLatestByOriginalPath(ctx, path))
}

// ListUnder returns graves buried from dir or anywhere below it.
func (s *GraveService) ListUnder(ctx context.Context, dir string) ([]database.GraveRecord, error) {
	return s.repo.ListUnder(ctx, dir)
}

// Count returns how many graves are recorded.
func (s *GraveService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Forget removes a grave from the record once it has been restored.
func (s *GraveService) Forget(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// ForgetAll empties the record.
func (s *GraveService) ForgetAll() error {
	return database.ClearDatabase(s.ctx)
}

func found(record *database.GraveRecord, err error) (*database.GraveRecord, error) {
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}
