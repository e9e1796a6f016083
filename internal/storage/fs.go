// Package storage provides a uniform filesystem abstraction over the local
// disk and Google Cloud Storage, so that dataset discovery, bookkeeping and
// transfer operate identically against either backend.
package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// FS is the capability consumed by discovery and the bookkeeping helpers.
// Implementations must be safe for read-heavy use; write operations are only
// exercised by the bookkeeping and transfer helpers.
type FS interface {
	// Exists reports whether name refers to an existing file or directory.
	Exists(ctx context.Context, name string) (bool, error)
	// IsDir reports whether name refers to a directory.
	IsDir(ctx context.Context, name string) (bool, error)
	// Glob returns the paths matching pattern. A pattern whose parent
	// directory does not exist yields no matches and no error.
	Glob(ctx context.Context, pattern string) ([]string, error)
	// List returns the names (not full paths) of the immediate entries of dir.
	List(ctx context.Context, dir string) ([]string, error)
	// Size returns the size of the named file in bytes.
	Size(ctx context.Context, name string) (int64, error)

	MkdirAll(ctx context.Context, dir string) error
	RemoveAll(ctx context.Context, name string) error
	Rename(ctx context.Context, oldName, newName string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// Join joins path elements the way the backend expects. Elements rooted at a
// URL scheme (gs://bucket/...) keep their scheme and use forward slashes;
// everything else goes through filepath.Join.
func Join(elem ...string) string {
	if len(elem) == 0 {
		return ""
	}
	if scheme, rest, ok := splitScheme(elem[0]); ok {
		parts := append([]string{rest}, elem[1:]...)
		return scheme + "://" + path.Join(parts...)
	}
	return filepath.Join(elem...)
}

// splitScheme splits "gs://bucket/object" into ("gs", "bucket/object", true).
func splitScheme(name string) (scheme, rest string, ok bool) {
	i := strings.Index(name, "://")
	if i <= 0 {
		return "", "", false
	}
	return name[:i], name[i+3:], true
}
