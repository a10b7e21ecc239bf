// Package graveyard moves files in and out of the graveyard directory.
package graveyard

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"
)

var (
	// ErrIsGraveyard is returned when asked to bury the graveyard itself.
	ErrIsGraveyard = errors.New("cannot bury the graveyard")
	// ErrInsideGraveyard is returned for targets already in the graveyard.
	ErrInsideGraveyard = errors.New("target is already in the graveyard")
	// ErrContainsGraveyard is returned for directories holding the graveyard.
	ErrContainsGraveyard = errors.New("target contains the graveyard")
	// ErrOccupied is returned when a restore destination already exists.
	ErrOccupied = errors.New("destination already exists")
)

// GravePath returns where src rests inside graveyard: the graveyard joined
// with the absolute source path. If that path is taken a ~N suffix is added.
func GravePath(graveyard, src string) (string, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", src, err)
	}

	// Windows volume names cannot be nested under another directory.
	rel := strings.TrimPrefix(abs, filepath.VolumeName(abs))
	dest := filepath.Join(graveyard, rel)
	return Vacant(dest), nil
}

// Vacant returns path if nothing exists there, otherwise the first path~N
// that is free.
func Vacant(path string) string {
	if !Exists(path) {
		return path
	}
	for i := 1; ; i++ {
		candidate := path + "~" + strconv.Itoa(i)
		if !Exists(candidate) {
			return candidate
		}
	}
}

// Exists reports whether anything, including a dangling symlink, is at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CheckTarget refuses targets that would bury the graveyard or something
// already in it. Both paths must be absolute and clean. Symlinks in their
// parent directories are resolved before comparing.
func CheckTarget(graveyard, target string) error {
	graveyard, target = resolveParents(graveyard), resolveParents(target)

	switch {
	case target == graveyard:
		return ErrIsGraveyard
	case within(graveyard, target):
		return fmt.Errorf("%w: %s", ErrInsideGraveyard, target)
	case within(target, graveyard):
		return fmt.Errorf("%w: %s", ErrContainsGraveyard, target)
	default:
		return nil
	}
}

// resolveParents resolves symlinks in the directories above path, leaving
// the last element alone. Missing directories are kept as written.
func resolveParents(path string) string {
	dir, base := filepath.Split(path)
	dir = filepath.Clean(dir)
	if base == "" || dir == path {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolved, base)
	}
	return filepath.Join(resolveParents(dir), base)
}

// within reports whether path lies strictly below dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Move relocates src to dst, creating dst's parents. A rename across
// filesystems falls back to copying and then removing src.
func Move(src, dst string) error {
	if Exists(dst) {
		return fmt.Errorf("%w: %s", ErrOccupied, dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}

	if err := copyTree(src, dst); err != nil {
		_ = os.RemoveAll(dst)
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return os.RemoveAll(src)
}

func copyTree(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		link, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(link, dst)
	case info.IsDir():
		if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyTree(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	case info.Mode().IsRegular():
		return copyFile(src, dst, info.Mode().Perm())
	default:
		return fmt.Errorf("unsupported file type %s: %s", info.Mode().Type(), src)
	}
}

func copyFile(src, dst string, perm fs.FileMode) error {
	//nolint:gosec // G304: src is a path the user asked to bury
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Purge removes every entry directly under graveyard except those named in
// keep, and returns how many entries were removed.
func Purge(graveyard string, keep ...string) (int, error) {
	entries, err := os.ReadDir(graveyard)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if slices.Contains(keep, entry.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(graveyard, entry.Name())); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// WalkFunc is called for each entry directly under a directory.
type WalkFunc func(path string, d fs.DirEntry) error

// WalkDir iterates over the entries directly under dir, skipping names in
// skip. A missing dir is not an error.
func WalkDir(dir string, skip []string, fn WalkFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if slices.Contains(skip, entry.Name()) {
			continue
		}
		if err := fn(filepath.Join(dir, entry.Name()), entry); err != nil {
			return err
		}
	}

	return nil
}
