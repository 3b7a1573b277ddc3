package org

import (
	"errors"
	"fmt"
)

// ErrInvalidTimestamp is returned for timestamps that do not name a valid time.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseError locates a parse failure.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}

	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
