//go:build windows

package bindings

import (
	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

type sharedLibrary struct {
	handle windows.Handle
}

func openSharedLibrary(path string) (*sharedLibrary, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, err
	}
	return &sharedLibrary{handle: h}, nil
}

func (so *sharedLibrary) lookup(name string) (uintptr, error) {
	return windows.GetProcAddress(so.handle, name)
}

func (so *sharedLibrary) close() error {
	return windows.FreeLibrary(so.handle)
}

func registerFunc(fnPtr any, addr uintptr) {
	purego.RegisterFunc(fnPtr, addr)
}
