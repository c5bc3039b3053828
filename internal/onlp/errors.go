package onlp

import "errors"

var (
	// ErrUnsupported is returned for operations a board does not implement
	ErrUnsupported = errors.New("unsupported")
	// ErrParam is returned for unknown ids and out of range arguments
	ErrParam = errors.New("invalid parameter")
	// ErrInternal is returned when the hardware could not be accessed
	ErrInternal = errors.New("internal error")
	// ErrMissing is returned when a resource is absent
	ErrMissing = errors.New("missing")
)

// IsUnsupported reports whether err (or one it wraps) is ErrUnsupported
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
