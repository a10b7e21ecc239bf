package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jubalh/rip2/internal/database"
)

func setupServiceDB(t *testing.T) *database.Context {
	t.Helper()
	ctx, err := database.CreateDatabase(filepath.Join(t.TempDir(), ".record.db"))
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}

	t.Cleanup(func() {
		if err := database.CloseDatabase(ctx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})

	return ctx
}

func TestGraveServiceRecordAndLatest(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()

	svc := NewGraveService(dbCtx)
	fixed := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	if _, err := svc.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty record, got %v", err)
	}

	record, err := svc.Record(ctx, "/home/u/a.txt", "/g/home/u/a.txt", false)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if !record.BuriedAt.Equal(fixed) {
		t.Fatalf("expected buried_at %v, got %v", fixed, record.BuriedAt)
	}

	latest, err := svc.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.ID != record.ID || latest.GravePath != "/g/home/u/a.txt" {
		t.Fatalf("unexpected latest grave: %#v", latest)
	}
}

func TestGraveServiceFindByEitherPath(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewGraveService(dbCtx)

	old, err := svc.Record(ctx, "/home/u/a.txt", "/g/home/u/a.txt", false)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	newer, err := svc.Record(ctx, "/home/u/a.txt", "/g/home/u/a.txt~1", false)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	byGrave, err := svc.Find(ctx, "/g/home/u/a.txt")
	if err != nil {
		t.Fatalf("Find by grave failed: %v", err)
	}
	if byGrave.ID != old.ID {
		t.Fatalf("expected grave path match %d, got %d", old.ID, byGrave.ID)
	}

	byOriginal, err := svc.Find(ctx, "/home/u/a.txt")
	if err != nil {
		t.Fatalf("Find by original failed: %v", err)
	}
	if byOriginal.ID != newer.ID {
		t.Fatalf("expected newest burial %d, got %d", newer.ID, byOriginal.ID)
	}

	if _, err := svc.Find(ctx, "/nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGraveServiceForget(t *testing.T) {
	dbCtx := setupServiceDB(t)
	ctx := context.Background()
	svc := NewGraveService(dbCtx)

	record, err := svc.Record(ctx, "/a", "/g/a", true)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := svc.Record(ctx, "/b", "/g/b", false); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if err := svc.Forget(ctx, record.ID); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if err := svc.Forget(ctx, record.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second Forget, got %v", err)
	}

	if err := svc.ForgetAll(); err != nil {
		t.Fatalf("ForgetAll failed: %v", err)
	}
	count, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty record, got %d graves", count)
	}
}
