package sensor

import (
	"errors"
	"fmt"
)

var (
	ErrWrongFilmSize    = errors.New("wrong film size")
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrShapeHasSensor   = errors.New("shape already has a sensor")
)

// ConfigError reports a sensor that cannot be constructed from its configuration.
// Err is one of the sentinel errors above.
type ConfigError struct {
	Sensor string // Sensor kind
	Param  string // Offending parameter, if any
	Detail string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Sensor, e.Err)
	if e.Param != "" {
		msg += fmt.Sprintf(" %q", e.Param)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(kind Kind, param string, err error, detailFormat string, args ...interface{}) error {
	return &ConfigError{
		Sensor: kind.String(),
		Param:  param,
		Detail: fmt.Sprintf(detailFormat, args...),
		Err:    err,
	}
}
