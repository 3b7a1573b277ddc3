package ticket

import "errors"

// Status constants.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
)

// Frontmatter delimiter.
const frontmatterDelimiter = "---"

// MaxFrontmatterLines bounds the search for the closing delimiter.
const MaxFrontmatterLines = 200

// Error variables for ticket parsing.
var (
	ErrNoFrontmatter      = errors.New("missing frontmatter (file must start with ---)")
	ErrFrontmatterTooLong = errors.New("frontmatter not closed")
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrNoTitle            = errors.New("ticket has no title (set title or add a # heading)")
)
