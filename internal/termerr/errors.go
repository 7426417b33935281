// Package termerr holds the sentinel errors shared across termsift packages.
package termerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNoSources          = errors.New("no sources provided")
	ErrUnsupportedSource  = errors.New("unsupported source type")
	ErrUnknownMethod      = errors.New("unknown ranking method")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrSourceTooLarge     = errors.New("source exceeds size limit")
	ErrNoContentExtracted = errors.New("no content extracted")
)
