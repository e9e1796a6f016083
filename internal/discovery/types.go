package discovery

import "fmt"

// LabelSet is an ordered, duplicate-free sequence of label names. The
// position of a name is its label index, the numeric target representation
// used by training pipelines.
type LabelSet []string

// NewLabelSet builds a LabelSet from names, rejecting duplicates.
func NewLabelSet(names []string) (LabelSet, error) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, name)
		}
		seen[name] = true
	}
	return LabelSet(names), nil
}

// Index returns the label index for name, and whether name is in the set.
func (ls LabelSet) Index(name string) (int, bool) {
	for i, n := range ls {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// indexMap returns a name-to-index lookup table for the set.
func (ls LabelSet) indexMap() map[string]int {
	m := make(map[string]int, len(ls))
	for i, n := range ls {
		m[n] = i
	}
	return m
}

// Result is the outcome of a labeled discovery run: Paths[i] is the file for
// the i-th record and Labels[i] its label index into LabelSet. Paths and
// Labels always have equal length and stay pointwise paired through
// shuffling. Results are fresh per call and never mutated afterwards.
type Result struct {
	Paths  []string
	Labels []int
	// LabelSet is the set the indices refer to. For directory discovery it is
	// the caller's label names; for manifest discovery it is the derived (or
	// explicitly supplied) set the caller needs to map indices back to names.
	LabelSet LabelSet
}

// Len returns the number of discovered records.
func (r *Result) Len() int {
	return len(r.Paths)
}
