package pvrecorder

import (
	"errors"
	"fmt"

	"github.com/Priler/pvrecorder/internal/bindings"
)

// ErrorKind categorizes recorder failures so callers can branch without
// parsing messages.
type ErrorKind int

const (
	// ErrorNativeStatus wraps a non-success status code returned by the
	// native library. The code is available via Error.Status.
	ErrorNativeStatus ErrorKind = iota

	// ErrorLibraryLoad reports that the shared library, or one of its
	// required entry points, could not be resolved.
	ErrorLibraryLoad

	// ErrorArgument reports a configuration value that violates a
	// precondition. Raised before any native call is made.
	ErrorArgument

	// ErrorStringEncoding reports that a native string (device name,
	// version) was not valid UTF-8.
	ErrorStringEncoding

	// ErrorInternal reports a native contract violation, such as a success
	// status paired with a nil handle.
	ErrorInternal
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorNativeStatus:
		return "native status"
	case ErrorLibraryLoad:
		return "library load"
	case ErrorArgument:
		return "argument"
	case ErrorStringEncoding:
		return "string encoding"
	case ErrorInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// ErrRecorderClosed is returned when an operation is attempted on a Recorder
// clone that has already been closed.
var ErrRecorderClosed = errors.New("pvrecorder: recorder has been closed")

// Error is the unified error type for all recorder operations.
type Error struct {
	kind    ErrorKind
	status  Status
	message string
}

// Kind returns the error category.
func (e *Error) Kind() ErrorKind { return e.kind }

// Status returns the native status code. It is only meaningful when Kind is
// ErrorNativeStatus; for every other kind it is StatusSuccess.
func (e *Error) Status() Status { return e.status }

// Message returns the human-readable detail without the kind prefix.
func (e *Error) Message() string { return e.message }

func (e *Error) Error() string {
	if e.kind == ErrorNativeStatus {
		return fmt.Sprintf("pvrecorder: %s: %s", e.message, e.status)
	}
	return fmt.Sprintf("pvrecorder: %s error: %s", e.kind, e.message)
}

// IsInvalidState reports whether err is a native INVALID_STATE failure, the
// status the library returns for start-while-started and stop-while-stopped.
func IsInvalidState(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == ErrorNativeStatus && e.status == StatusInvalidState
}

func argumentError(format string, args ...any) *Error {
	return &Error{kind: ErrorArgument, message: fmt.Sprintf(format, args...)}
}

func loadError(err error) *Error {
	return &Error{kind: ErrorLibraryLoad, message: err.Error()}
}

func nativeError(entryPoint string, status Status) *Error {
	return &Error{
		kind:    ErrorNativeStatus,
		status:  status,
		message: fmt.Sprintf("%s failed", entryPoint),
	}
}

func internalError(format string, args ...any) *Error {
	return &Error{kind: ErrorInternal, message: fmt.Sprintf(format, args...)}
}

// remapStringError converts a bindings-layer decode failure into the public
// string-encoding error category; anything else stays an internal error.
func remapStringError(context string, err error) *Error {
	if errors.Is(err, bindings.ErrInvalidString) {
		return &Error{
			kind:    ErrorStringEncoding,
			message: fmt.Sprintf("failed to decode %s: %v", context, err),
		}
	}
	return internalError("failed to read %s: %v", context, err)
}
