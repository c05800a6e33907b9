package shared

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to callers. Every error returned by a service either
// wraps one of these sentinels or is treated as an internal failure.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
	ErrInsufficientCatalog = errors.New("insufficient catalog")
)

func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

func Forbiddenf(format string, args ...any) error {
	return wrapf(ErrForbidden, format, args...)
}

func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

func Conflictf(format string, args ...any) error {
	return wrapf(ErrConflict, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
