package graveyard

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Kind names what a path points at.
type Kind string

const (
	KindFile    Kind = "file"
	KindDir     Kind = "directory"
	KindSymlink Kind = "symlink"
	KindOther   Kind = "other"
)

// Info describes a target before it is buried.
type Info struct {
	Path       string
	Kind       Kind
	Size       int64
	Files      int
	LinkTarget string
	Preview    []string
	Binary     bool
}

// HumanSize formats Size like "4.2 kB".
func (i Info) HumanSize() string {
	if i.Size < 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(i.Size))
}

// Inspect gathers size and content details for path. For text files the
// first lines are returned in Preview.
func Inspect(path string, lines int) (*Info, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}

	result := &Info{Path: path}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		result.Kind = KindSymlink
		result.LinkTarget, err = os.Readlink(path)
		if err != nil {
			return nil, err
		}
	case info.IsDir():
		result.Kind = KindDir
		result.Size, result.Files, err = dirUsage(path)
		if err != nil {
			return nil, err
		}
	case info.Mode().IsRegular():
		result.Kind = KindFile
		result.Size = info.Size()
		result.Files = 1
		result.Preview, result.Binary, err = head(path, lines)
		if err != nil {
			return nil, err
		}
	default:
		result.Kind = KindOther
	}

	return result, nil
}

func dirUsage(root string) (int64, int, error) {
	var size int64
	files := 0
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		files++
		return nil
	})
	return size, files, err
}

const maxPreviewLine = 512

// head reads up to n lines from path. Files containing NUL bytes or invalid
// UTF-8 in the sniffed prefix are reported as binary with no preview.
func head(path string, n int) ([]string, bool, error) {
	if n <= 0 {
		return nil, false, nil
	}

	//nolint:gosec // G304: path is the user's inspect target
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	sniff, err := reader.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, false, err
	}
	if bytes.IndexByte(sniff, 0) >= 0 || !utf8.Valid(trimPartialRune(sniff)) {
		return nil, true, nil
	}

	var out []string
	for len(out) < n {
		line, err := previewLine(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, false, err
		}
		if err != nil && line == "" {
			break
		}
		out = append(out, line)
		if err != nil {
			break
		}
	}
	return out, false, nil
}

// previewLine reads one line of any length, keeping at most maxPreviewLine
// bytes of it. Cut lines end in "...".
func previewLine(r *bufio.Reader) (string, error) {
	var (
		line []byte
		cut  bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if err == nil {
			chunk = chunk[:len(chunk)-1]
		}
		if room := maxPreviewLine - len(line); len(chunk) > room {
			line = append(line, chunk[:max(room, 0)]...)
			cut = true
		} else {
			line = append(line, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		if cut {
			return string(trimPartialRune(line)) + "...", err
		}
		return string(bytes.TrimSuffix(line, []byte("\r"))), err
	}
}

// trimPartialRune drops a rune cut off at the end of a sniffed buffer.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}
