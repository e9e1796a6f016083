package discovery

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/ziadkadry99/dataprep/internal/storage"
)

// Default manifest column names.
const (
	DefaultIDColumn    = "id"
	DefaultLabelColumn = "label"
)

// manifestRow is one parsed manifest record. Line is the 1-based data row
// number, used in error messages.
type manifestRow struct {
	ID    string
	Label string
	Line  int
}

// readManifest parses the CSV manifest at path into rows, resolving the ID
// and label columns by header name. The whole file is read into memory; the
// manifests this tool handles are row counts, not gigabytes.
func readManifest(ctx context.Context, fsys storage.FS, path string, opts Options) ([]manifestRow, error) {
	idCol := opts.IDColumn
	if idCol == "" {
		idCol = DefaultIDColumn
	}
	labelCol := opts.LabelColumn
	if labelCol == "" {
		labelCol = DefaultLabelColumn
	}

	f, err := fsys.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s is empty", ErrBadManifest, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest header: %w", err)
	}

	idIdx, labelIdx := -1, -1
	for i, name := range header {
		switch name {
		case idCol:
			idIdx = i
		case labelCol:
			labelIdx = i
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("%w: %s has no %q column", ErrBadManifest, path, idCol)
	}
	if labelIdx < 0 {
		return nil, fmt.Errorf("%w: %s has no %q column", ErrBadManifest, path, labelCol)
	}

	var rows []manifestRow
	for line := 1; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading manifest row %d: %w", line, err)
		}
		rows = append(rows, manifestRow{
			ID:    record[idIdx],
			Label: record[labelIdx],
			Line:  line,
		})
	}
	return rows, nil
}

// distinctSorted derives a LabelSet from the distinct label values of the
// rows, sorted lexicographically. The sort is the canonical index-assignment
// rule: the same set of values always yields the same indices.
func distinctSorted(rows []manifestRow) LabelSet {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		if !seen[row.Label] {
			seen[row.Label] = true
			names = append(names, row.Label)
		}
	}
	sort.Strings(names)
	return LabelSet(names)
}
