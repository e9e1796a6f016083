package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
)

// EnsureCleanDir creates the directory at path, wiping it first if it already
// exists. Everything underneath a pre-existing path is lost.
func EnsureCleanDir(ctx context.Context, fsys FS, path string) error {
	exists, err := fsys.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if exists {
		if err := fsys.RemoveAll(ctx, path); err != nil {
			return fmt.Errorf("cleaning %s: %w", path, err)
		}
	}
	if err := fsys.MkdirAll(ctx, path); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return nil
}

// SubDirs returns the names (not full paths) of the immediate subdirectories
// of dir, skipping any whose name appears in exclude.
func SubDirs(ctx context.Context, fsys FS, dir string, exclude ...string) ([]string, error) {
	entries, err := fsys.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var dirs []string
	for _, name := range entries {
		if slices.Contains(exclude, name) {
			continue
		}
		isDir, err := fsys.IsDir(ctx, Join(dir, name))
		if err != nil {
			return nil, err
		}
		if isDir {
			dirs = append(dirs, name)
		}
	}
	return dirs, nil
}

// MergeDirs moves every file from each source directory into dest. If dest
// already exists nothing is done, so a completed merge is not repeated.
func MergeDirs(ctx context.Context, fsys FS, sources []string, dest string) error {
	exists, err := fsys.Exists(ctx, dest)
	if err != nil {
		return fmt.Errorf("checking %s: %w", dest, err)
	}
	if exists {
		return nil
	}
	if err := fsys.MkdirAll(ctx, dest); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	for _, src := range sources {
		names, err := fsys.List(ctx, src)
		if err != nil {
			return fmt.Errorf("listing %s: %w", src, err)
		}
		for _, name := range names {
			if err := fsys.Rename(ctx, Join(src, name), Join(dest, name)); err != nil {
				return fmt.Errorf("moving %s from %s: %w", name, src, err)
			}
		}
	}
	return nil
}

// FileSize returns the size of the named file in bytes.
func FileSize(ctx context.Context, fsys FS, name string) (int64, error) {
	return fsys.Size(ctx, name)
}

// ErrRemoteExists is returned by Upload when the remote file is already
// present; the upload is skipped rather than overwritten.
var ErrRemoteExists = errors.New("remote file already exists")

// Upload copies the file at localPath to remotePath on fsys, unless the
// remote file already exists (in which case ErrRemoteExists is returned and
// nothing is written).
func Upload(ctx context.Context, fsys FS, localPath, remotePath string) error {
	exists, err := fsys.Exists(ctx, remotePath)
	if err != nil {
		return fmt.Errorf("checking %s: %w", remotePath, err)
	}
	if exists {
		return fmt.Errorf("%s: %w", remotePath, ErrRemoteExists)
	}

	local := NewLocal()
	src, err := local.Open(ctx, localPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := fsys.Create(ctx, remotePath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", remotePath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copying to %s: %w", remotePath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("finalising %s: %w", remotePath, err)
	}
	return nil
}
