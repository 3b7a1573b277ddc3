package cli

import "errors"

// Error variables for argument handling.
var (
	ErrFlagRequiresArg = errors.New("flag requires an argument")
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrNoItems         = errors.New("no items given")
)
