package terrain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid is returned for grids that are not square or smaller than 2×2.
	ErrInvalidGrid = errors.New("invalid height grid")
	// ErrInvalidSpacing is returned for a non-positive grid spacing.
	ErrInvalidSpacing = errors.New("invalid grid spacing")
)

// ConfigError reports a malformed mesh builder input.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("terrain: %v: %s", e.Err, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
