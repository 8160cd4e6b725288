package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
)

var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrNotFound    = errors.New("file not found")
)

type FileStorage interface {
	// Upload stores a file under path and returns the cleaned path
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Delete removes a file; a missing file is not an error
	Delete(ctx context.Context, path string) error

	// Open returns a regular file for reading; directories are ErrNotFound
	Open(ctx context.Context, path string) (io.ReadSeekCloser, fs.FileInfo, error)

	// URL returns the URL a stored file is served from
	URL(path string) string

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
