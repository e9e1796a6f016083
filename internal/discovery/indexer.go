// Package discovery turns a labeled dataset layout — a directory per label,
// or a CSV manifest — into parallel lists of file paths and integer label
// indices for a training pipeline to consume.
package discovery

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/ziadkadry99/dataprep/internal/storage"
)

// DefaultFileExt is the file extension discovered when Options.FileExt is
// empty.
const DefaultFileExt = "jpg"

// Options controls a discovery run.
type Options struct {
	// FileExt is the extension (without dot) of files to discover.
	// Empty means DefaultFileExt.
	FileExt string
	// Shuffle applies a single uniform random permutation to the result.
	// Paths and labels are always permuted in lock-step.
	Shuffle bool
	// IDColumn and LabelColumn name the manifest columns to read.
	// Empty means "id" and "label".
	IDColumn    string
	LabelColumn string
	// Labels, when non-nil, overrides the label set derived from manifest
	// data. Rows with labels outside this set fail with ErrUnknownLabel.
	Labels LabelSet
}

func (o Options) ext() string {
	if o.FileExt == "" {
		return DefaultFileExt
	}
	return o.FileExt
}

// Indexer discovers labeled files through an injected storage backend, so
// the same code runs against a local dataset directory or a cloud bucket.
// Each call is a single-shot read-only transformation; the Indexer holds no
// state across calls beyond its random source.
type Indexer struct {
	fsys storage.FS
	rng  *rand.Rand
}

// New returns an Indexer over fsys with a randomly seeded shuffle source.
func New(fsys storage.FS) *Indexer {
	return &Indexer{
		fsys: fsys,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NewSeeded returns an Indexer whose shuffles are reproducible for a given
// seed.
func NewSeeded(fsys storage.FS, seed uint64) *Indexer {
	return &Indexer{
		fsys: fsys,
		rng:  rand.New(rand.NewPCG(seed, seed)),
	}
}

// ByDirectory discovers files laid out one subdirectory per label:
// root/<label>/*.<ext>. Records appear in labelNames order, sub-ordered by
// whatever order the backend lists matches in. A label subdirectory that
// does not exist contributes zero files rather than an error; a missing root
// fails with ErrNotFound.
func (ix *Indexer) ByDirectory(ctx context.Context, root string, labelNames []string, opts Options) (*Result, error) {
	if len(labelNames) == 0 {
		return nil, fmt.Errorf("no label names given")
	}
	labels, err := NewLabelSet(labelNames)
	if err != nil {
		return nil, err
	}
	if err := ix.checkRoot(ctx, root); err != nil {
		return nil, err
	}

	res := &Result{LabelSet: labels}
	for i, label := range labels {
		pattern := storage.Join(root, label, "*."+opts.ext())
		matches, err := ix.fsys.Glob(ctx, pattern)
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", pattern, err)
		}
		for _, m := range matches {
			res.Paths = append(res.Paths, m)
			res.Labels = append(res.Labels, i)
		}
	}

	if opts.Shuffle {
		ix.shufflePaired(res)
	}
	return res, nil
}

// ByManifest discovers files through a CSV manifest mapping item IDs to
// label values. Each row becomes root/<id>.<ext>. The label set is either
// opts.Labels or the lexicographically sorted distinct label values of the
// manifest; the sort is what makes index assignment reproducible across
// runs. Rows keep manifest order unless shuffled.
func (ix *Indexer) ByManifest(ctx context.Context, root, manifestPath string, opts Options) (*Result, error) {
	rows, err := readManifest(ctx, ix.fsys, manifestPath, opts)
	if err != nil {
		return nil, err
	}

	labels := opts.Labels
	if labels == nil {
		labels = distinctSorted(rows)
	}
	byName := labels.indexMap()

	res := &Result{
		Paths:    make([]string, 0, len(rows)),
		Labels:   make([]int, 0, len(rows)),
		LabelSet: labels,
	}
	for _, row := range rows {
		idx, ok := byName[row.Label]
		if !ok {
			return nil, fmt.Errorf("%w: %q (row %d of %s)", ErrUnknownLabel, row.Label, row.Line, manifestPath)
		}
		res.Paths = append(res.Paths, storage.Join(root, row.ID+"."+opts.ext()))
		res.Labels = append(res.Labels, idx)
	}

	if opts.Shuffle {
		ix.shufflePaired(res)
	}
	return res, nil
}

// Unlabeled discovers root/*.<ext> with no label assignment, for test-time
// datasets that ship without ground truth.
func (ix *Indexer) Unlabeled(ctx context.Context, root string, opts Options) ([]string, error) {
	if err := ix.checkRoot(ctx, root); err != nil {
		return nil, err
	}
	pattern := storage.Join(root, "*."+opts.ext())
	paths, err := ix.fsys.Glob(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	if opts.Shuffle {
		ix.rng.Shuffle(len(paths), func(i, j int) {
			paths[i], paths[j] = paths[j], paths[i]
		})
	}
	return paths, nil
}

func (ix *Indexer) checkRoot(ctx context.Context, root string) error {
	exists, err := ix.fsys.Exists(ctx, root)
	if err != nil {
		return fmt.Errorf("checking %s: %w", root, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, root)
	}
	return nil
}

// shufflePaired applies one uniform permutation to paths and labels through
// a shared swap, so the pointwise pairing survives the shuffle.
func (ix *Indexer) shufflePaired(res *Result) {
	ix.rng.Shuffle(len(res.Paths), func(i, j int) {
		res.Paths[i], res.Paths[j] = res.Paths[j], res.Paths[i]
		res.Labels[i], res.Labels[j] = res.Labels[j], res.Labels[i]
	})
}
