package discovery

import "errors"

var (
	// ErrNotFound indicates the requested dataset root does not exist.
	ErrNotFound = errors.New("dataset root not found")

	// ErrUnknownLabel indicates a manifest row carries a label value that is
	// absent from the explicitly supplied label set.
	ErrUnknownLabel = errors.New("label not in label set")

	// ErrBadManifest indicates the manifest lacks a required column.
	ErrBadManifest = errors.New("malformed manifest")

	// ErrDuplicateLabel indicates a label name appears twice in a label set.
	ErrDuplicateLabel = errors.New("duplicate label name")
)
