package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrBadName = errors.New("invalid object name")

// Local writes images into a directory on disk and returns the path the
// server exposes them under.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	// Names are generated by the caller; anything resembling a path is rejected.
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", ErrBadName
	}

	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return "/images/" + name, nil
}
