//go:build darwin || freebsd || linux || netbsd

package bindings

import "github.com/ebitengine/purego"

// sharedLibrary wraps one memory-mapped dynamic library. The mapping stays
// alive until close is called; every symbol address handed out by lookup is
// only valid while the mapping is alive.
type sharedLibrary struct {
	handle uintptr
}

func openSharedLibrary(path string) (*sharedLibrary, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, err
	}
	return &sharedLibrary{handle: h}, nil
}

func (so *sharedLibrary) lookup(name string) (uintptr, error) {
	return purego.Dlsym(so.handle, name)
}

func (so *sharedLibrary) close() error {
	return purego.Dlclose(so.handle)
}

// registerFunc binds fnPtr, which must be a pointer to a function value, to
// the native code at addr.
func registerFunc(fnPtr any, addr uintptr) {
	purego.RegisterFunc(fnPtr, addr)
}
