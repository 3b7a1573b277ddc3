package task

import "errors"

// Error variables for task values and state vocabularies.
var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidState = errors.New("invalid state keyword")
	ErrNoStates     = errors.New("state list cannot be empty")
)
