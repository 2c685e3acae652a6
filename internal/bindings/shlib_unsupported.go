//go:build !darwin && !freebsd && !linux && !netbsd && !windows

package bindings

// Stub implementations so the package compiles on platforms without dynamic
// loading support. Every call reports ErrUnsupportedPlatform.

type sharedLibrary struct{}

func openSharedLibrary(string) (*sharedLibrary, error) {
	return nil, ErrUnsupportedPlatform
}

func (so *sharedLibrary) lookup(string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func (so *sharedLibrary) close() error { return nil }

func registerFunc(any, uintptr) {}
