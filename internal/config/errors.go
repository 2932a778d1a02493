package config

import "errors"

var (
	// ErrInvalidValue is returned when a value cannot be coerced to its field type.
	ErrInvalidValue = errors.New("invalid settings value")

	// ErrEnvFile is returned when the env file cannot be read or parsed,
	// or is missing while required.
	ErrEnvFile = errors.New("env file")
)
