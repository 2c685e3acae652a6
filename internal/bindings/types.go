package bindings

import "errors"

// Status is a status code returned by the native pvrecorder library. The
// values mirror the pv_recorder_status_t enum and must not be renumbered.
type Status int32

const (
	StatusSuccess                  Status = 0
	StatusOutOfMemory              Status = 1
	StatusInvalidArgument          Status = 2
	StatusInvalidState             Status = 3
	StatusBackendError             Status = 4
	StatusDeviceAlreadyInitialized Status = 5
	StatusDeviceNotInitialized     Status = 6
	StatusIOError                  Status = 7
	StatusRuntimeError             Status = 8
)

// String returns the enum name used by the native headers.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusOutOfMemory:
		return "OUT_OF_MEMORY"
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusInvalidState:
		return "INVALID_STATE"
	case StatusBackendError:
		return "BACKEND_ERROR"
	case StatusDeviceAlreadyInitialized:
		return "DEVICE_ALREADY_INITIALIZED"
	case StatusDeviceNotInitialized:
		return "DEVICE_NOT_INITIALIZED"
	case StatusIOError:
		return "IO_ERROR"
	case StatusRuntimeError:
		return "RUNTIME_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Handle is the opaque recorder handle returned by pv_recorder_init. It is
// never dereferenced on the Go side, only passed back into native calls.
type Handle uintptr

var (
	// ErrInvalidString reports that a native string was not valid UTF-8.
	ErrInvalidString = errors.New("pvrecorder/internal/bindings: native string is not valid UTF-8")

	// ErrUnsupportedPlatform signals that dynamic loading is not implemented
	// for the current GOOS.
	ErrUnsupportedPlatform = errors.New("pvrecorder/internal/bindings: dynamic loading not supported on this platform")
)
