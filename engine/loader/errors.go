package loader

import "errors"

var (
	// ErrAssetNotFound is returned when an asset source has no file at the requested path.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrMalformed is returned when an asset's contents cannot be parsed.
	ErrMalformed = errors.New("malformed asset")
)
