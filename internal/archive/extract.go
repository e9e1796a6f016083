// Package archive extracts dataset archives (.zip, .tar.*, .7z, .rar) into a
// destination directory. Format handling is delegated entirely to archiver.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mholt/archiver/v3"

	"github.com/ziadkadry99/dataprep/internal/progress"
)

// ErrDestExists is returned when the destination directory already exists
// and overwrite was not requested. Callers typically treat this as "already
// extracted" and move on.
var ErrDestExists = errors.New("destination directory already exists")

// Extract unpacks each archive into dest. Extraction goes through a staging
// directory that is renamed into place at the end, so an interrupted run
// never leaves a half-populated dest behind. With overwrite false, an
// existing dest fails with ErrDestExists; with overwrite true it is
// replaced.
func Extract(ctx context.Context, archives []string, dest string, overwrite bool, rep progress.Reporter) error {
	if len(archives) == 0 {
		return errors.New("no archives given")
	}
	if rep == nil {
		rep = progress.Discard()
	}

	if _, err := os.Stat(dest); err == nil {
		if !overwrite {
			return fmt.Errorf("%s: %w", dest, ErrDestExists)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", dest, err)
	}

	stage := filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+".stage-"+uuid.NewString()[:8])
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(stage)

	rep.Start(len(archives), "extracting")
	defer rep.Finish()

	for _, fn := range archives {
		if err := ctx.Err(); err != nil {
			return err
		}
		abs, err := filepath.Abs(fn)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", fn, err)
		}
		rep.Step(filepath.Base(fn))
		if err := archiver.Unarchive(abs, stage); err != nil {
			return fmt.Errorf("extracting %s: %w", fn, err)
		}
	}

	if overwrite {
		if err := os.RemoveAll(dest); err != nil {
			return fmt.Errorf("removing %s: %w", dest, err)
		}
	}
	if err := os.Rename(stage, dest); err != nil {
		return fmt.Errorf("moving extracted files into %s: %w", dest, err)
	}
	return nil
}
