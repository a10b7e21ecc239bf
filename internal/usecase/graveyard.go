package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jubalh/rip2/internal/config"
	"github.com/jubalh/rip2/internal/ctxlog"
	"github.com/jubalh/rip2/internal/database"
	"github.com/jubalh/rip2/internal/graveyard"
	"github.com/jubalh/rip2/internal/services"
)

var (
	// ErrNothingToUnbury is returned when a restore finds no matching grave.
	ErrNothingToUnbury = errors.New("nothing to unbury")
	// ErrGraveMissing is returned when the record points at a grave that is
	// no longer on disk.
	ErrGraveMissing = errors.New("grave no longer exists")
)

// Graveyard buries into and restores from one graveyard directory.
type Graveyard struct {
	root   string
	graves *services.GraveService
}

// NewGraveyard binds the graveyard at root to its burial record.
func NewGraveyard(root string, dbCtx *database.Context) *Graveyard {
	return &Graveyard{
		root:   filepath.Clean(root),
		graves: services.NewGraveService(dbCtx),
	}
}

// Root returns the graveyard directory.
func (g *Graveyard) Root() string {
	return g.root
}

// Bury moves target into the graveyard and records where it went.
func (g *Graveyard) Bury(ctx context.Context, target string) (*database.GraveRecord, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	info, err := os.Lstat(src)
	if err != nil {
		return nil, fmt.Errorf("cannot bury %s: %w", target, err)
	}

	root, err := filepath.Abs(g.root)
	if err != nil {
		return nil, err
	}
	if err := graveyard.CheckTarget(root, src); err != nil {
		return nil, err
	}

	dest, err := graveyard.GravePath(root, src)
	if err != nil {
		return nil, err
	}
	if err := graveyard.Move(src, dest); err != nil {
		return nil, fmt.Errorf("failed to bury %s: %w", target, err)
	}

	record, err := g.graves.Record(ctx, src, dest, info.IsDir())
	if err != nil {
		if moveErr := graveyard.Move(dest, src); moveErr != nil {
			logger.Error("failed to return unrecorded grave", "grave", dest, "error", moveErr)
		}
		return nil, fmt.Errorf("failed to record burial of %s: %w", target, err)
	}

	logger.Debug("buried", "src", src, "grave", dest)
	return record, nil
}

// Restored describes one grave moved back out of the graveyard.
type Restored struct {
	Grave       database.GraveRecord
	Destination string
}

// Unbury restores the named graves, or the most recent one when paths is
// empty. A path may name either the grave or the place it was buried from.
func (g *Graveyard) Unbury(ctx context.Context, paths []string) ([]Restored, error) {
	if len(paths) == 0 {
		record, err := g.graves.Latest(ctx)
		if err != nil {
			return nil, notFound(err, "the graveyard record is empty")
		}
		return g.restore(ctx, []database.GraveRecord{*record})
	}

	records, err := g.find(ctx, paths)
	if err != nil {
		return nil, err
	}
	return g.restore(ctx, records)
}

// UnburyUnder restores every grave buried from dir or below it, plus any
// graves named in paths. Each grave is restored once.
func (g *Graveyard) UnburyUnder(ctx context.Context, dir string, paths ...string) ([]Restored, error) {
	records, err := g.find(ctx, paths)
	if err != nil {
		return nil, err
	}
	under, err := g.graves.ListUnder(ctx, dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(records)+len(under))
	var merged []database.GraveRecord
	for _, record := range append(records, under...) {
		if !seen[record.ID] {
			seen[record.ID] = true
			merged = append(merged, record)
		}
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("%w: no graves from %s", ErrNothingToUnbury, dir)
	}
	return g.restore(ctx, merged)
}

func (g *Graveyard) find(ctx context.Context, paths []string) ([]database.GraveRecord, error) {
	records := make([]database.GraveRecord, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		record, err := g.graves.Find(ctx, abs)
		if err != nil {
			return nil, notFound(err, p)
		}
		records = append(records, *record)
	}
	return records, nil
}

func (g *Graveyard) restore(ctx context.Context, records []database.GraveRecord) ([]Restored, error) {
	logger := ctxlog.FromContext(ctx)
	restored := make([]Restored, 0, len(records))

	for _, record := range records {
		if !graveyard.Exists(record.GravePath) {
			if err := g.graves.Forget(ctx, record.ID); err != nil && !errors.Is(err, services.ErrNotFound) {
				return restored, err
			}
			return restored, fmt.Errorf("%w: %s", ErrGraveMissing, record.GravePath)
		}

		dest := graveyard.Vacant(record.OriginalPath)
		if err := graveyard.Move(record.GravePath, dest); err != nil {
			return restored, fmt.Errorf("failed to unbury %s: %w", record.GravePath, err)
		}
		if err := g.graves.Forget(ctx, record.ID); err != nil {
			return restored, err
		}

		logger.Debug("unburied", "grave", record.GravePath, "dest", dest)
		restored = append(restored, Restored{Grave: record, Destination: dest})
	}

	return restored, nil
}

// Seance lists graves buried from dir or below it, oldest first.
func (g *Graveyard) Seance(ctx context.Context, dir string) ([]database.GraveRecord, error) {
	return g.graves.ListUnder(ctx, dir)
}

// Contents lists the top-level entries a decompose would remove.
func (g *Graveyard) Contents() ([]string, error) {
	var names []string
	err := graveyard.WalkDir(g.root, config.RecordFiles(), func(path string, _ fs.DirEntry) error {
		names = append(names, path)
		return nil
	})
	return names, err
}

// Recorded returns how many graves the record holds.
func (g *Graveyard) Recorded(ctx context.Context) (int64, error) {
	return g.graves.Count(ctx)
}

// Decompose permanently removes everything in the graveyard and empties the
// record. It returns the number of top-level entries removed.
func (g *Graveyard) Decompose(ctx context.Context) (int, error) {
	count, err := graveyard.Purge(g.root, config.RecordFiles()...)
	if err != nil {
		return count, fmt.Errorf("failed to decompose %s: %w", g.root, err)
	}
	if err := g.graves.ForgetAll(); err != nil {
		return count, err
	}

	ctxlog.FromContext(ctx).Debug("decomposed graveyard", "root", g.root, "entries", count)
	return count, nil
}

// Inspect describes target without touching it.
func (g *Graveyard) Inspect(target string, lines int) (*graveyard.Info, error) {
	return graveyard.Inspect(target, lines)
}

func notFound(err error, what string) error {
	if errors.Is(err, services.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNothingToUnbury, what)
	}
	return err
}
