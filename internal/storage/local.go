package storage

import (
	"context"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// Local implements FS against the local filesystem. The context arguments are
// accepted for interface parity and ignored; local calls do not block on I/O
// that is worth cancelling.
type Local struct{}

// NewLocal returns the local filesystem backend.
func NewLocal() *Local {
	return &Local{}
}

func (*Local) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (*Local) IsDir(_ context.Context, name string) (bool, error) {
	info, err := os.Stat(name)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (*Local) Glob(_ context.Context, pattern string) ([]string, error) {
	return doublestar.FilepathGlob(pattern)
}

func (*Local) List(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (*Local) Size(_ context.Context, name string) (int64, error) {
	info, err := os.Stat(name)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (*Local) MkdirAll(_ context.Context, dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func (*Local) RemoveAll(_ context.Context, name string) error {
	return os.RemoveAll(name)
}

func (*Local) Rename(_ context.Context, oldName, newName string) error {
	return os.Rename(oldName, newName)
}

func (*Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (*Local) Create(_ context.Context, name string) (io.WriteCloser, error) {
	return os.Create(name)
}
