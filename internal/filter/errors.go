package filter

import "errors"

// Error variables for filter construction. Every error returned by Build
// wraps ErrInvalidFilter.
var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrUnknownKind   = errors.New("unknown filter kind")
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidNumber = errors.New("expected an integer")
	ErrInvalidTime   = errors.New("expected YYYY-MM-DD, YYYY-MM-DDThh:mm or YYYY-MM-DD hh:mm[:ss]")
	ErrInvalidRegexp = errors.New("invalid regular expression")
	ErrInvalidPair   = errors.New("expected KEY=VALUE")
)
