package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrInvalidValue       = errors.New("invalid config value")
	ErrMappingFile        = errors.New("invalid mapping file")
	ErrExcludeFile        = errors.New("invalid exclude file")
)
