package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested path does not exist in storage.
var ErrNotFound = errors.New("not found")

// ErrOutsideBase is returned for paths that resolve outside the project root.
var ErrOutsideBase = errors.New("outside the project directory")

// Storage is the project tree the registrar reads rake files from and
// writes migrations to. Paths are slash separated and relative to the
// project root.
type Storage interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
	// List returns the files directly under dir, sorted by name.
	List(ctx context.Context, dir string) ([]string, error)
	Exists(ctx context.Context, path string) (bool, error)
}
