package export

import "errors"

// Error variables for export.
var (
	ErrUnknownFormat = errors.New("unknown export format (want json or sqlite)")
	ErrNoOutput      = errors.New("output path is required")
)
