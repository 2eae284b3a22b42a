package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every InvalidConfigurationError via errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// InvalidConfigurationError reports a setting rejected before any grid is built.
type InvalidConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidConfiguration, e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfiguration) hold for any InvalidConfigurationError.
func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Invalid is a shorthand constructor.
func Invalid(field string, value any, reason string) error {
	return &InvalidConfigurationError{Field: field, Value: value, Reason: reason}
}
