package moraine

import (
	"errors"
	"fmt"
)

// The engine error taxonomy. Layers built on these primitives classify
// every failure they surface as one of five kinds; callers branch with
// errors.Is rather than string matching.
var (
	// ErrNotFound reports a key or entity that does not exist.
	ErrNotFound = errors.New("moraine: not found")

	// ErrCorruption reports data that fails validation, such as a block
	// whose masked CRC-32C does not match its contents.
	ErrCorruption = errors.New("moraine: corruption")

	// ErrNotSupported reports an operation the engine was not built for.
	ErrNotSupported = errors.New("moraine: not supported")

	// ErrInvalidArgument reports a malformed request or option value.
	ErrInvalidArgument = errors.New("moraine: invalid argument")

	// ErrIO reports a failure in the environment below the engine.
	ErrIO = errors.New("moraine: i/o error")
)

// NotFound formats a message wrapped in ErrNotFound.
func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

// Corruption formats a message wrapped in ErrCorruption.
func Corruption(format string, args ...any) error {
	return wrap(ErrCorruption, format, args...)
}

// NotSupported formats a message wrapped in ErrNotSupported.
func NotSupported(format string, args ...any) error {
	return wrap(ErrNotSupported, format, args...)
}

// InvalidArgument formats a message wrapped in ErrInvalidArgument.
func InvalidArgument(format string, args ...any) error {
	return wrap(ErrInvalidArgument, format, args...)
}

// IOError formats a message wrapped in ErrIO.
func IOError(format string, args ...any) error {
	return wrap(ErrIO, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsCorruption reports whether err is, or wraps, ErrCorruption.
func IsCorruption(err error) bool { return errors.Is(err, ErrCorruption) }
