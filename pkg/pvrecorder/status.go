package pvrecorder

import "github.com/Priler/pvrecorder/internal/bindings"

// Status re-exports the native status codes so callers never need to import
// the internal bindings package.
type Status = bindings.Status

const (
	StatusSuccess                  = bindings.StatusSuccess
	StatusOutOfMemory              = bindings.StatusOutOfMemory
	StatusInvalidArgument          = bindings.StatusInvalidArgument
	StatusInvalidState             = bindings.StatusInvalidState
	StatusBackendError             = bindings.StatusBackendError
	StatusDeviceAlreadyInitialized = bindings.StatusDeviceAlreadyInitialized
	StatusDeviceNotInitialized     = bindings.StatusDeviceNotInitialized
	StatusIOError                  = bindings.StatusIOError
	StatusRuntimeError             = bindings.StatusRuntimeError
)
