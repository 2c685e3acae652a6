package bindings

import (
	"fmt"
	"unicode/utf8"
	"unsafe"
)

// vtable holds the resolved entry points of the pvrecorder library. Function
// signatures mirror the native ABI exactly: the native layer declares its
// boolean parameters and results as C int, so they appear here as int32, and
// C strings travel as raw addresses until copied by goStringAt.
type vtable struct {
	init                 func(frameLength, deviceIndex, bufferedFramesCount int32, object *uintptr) int32
	delete               func(object uintptr)
	start                func(object uintptr) int32
	stop                 func(object uintptr) int32
	read                 func(object uintptr, pcm *int16) int32
	setDebugLogging      func(object uintptr, isDebugLogging int32)
	getIsRecording       func(object uintptr) int32
	getSelectedDevice    func(object uintptr) uintptr
	getAvailableDevices  func(deviceListLength *int32, deviceList *uintptr) int32
	freeAvailableDevices func(deviceListLength int32, deviceList uintptr)
	sampleRate           func() int32
	version              func() uintptr
}

// resolve fills every vtable slot or fails without registering a partial
// table. lookup and register are injected so the resolution logic can be
// exercised without a real shared object.
func (vt *vtable) resolve(lookup func(string) (uintptr, error), register func(any, uintptr)) error {
	entryPoints := []struct {
		name string
		fn   any
	}{
		{"pv_recorder_init", &vt.init},
		{"pv_recorder_delete", &vt.delete},
		{"pv_recorder_start", &vt.start},
		{"pv_recorder_stop", &vt.stop},
		{"pv_recorder_read", &vt.read},
		{"pv_recorder_set_debug_logging", &vt.setDebugLogging},
		{"pv_recorder_get_is_recording", &vt.getIsRecording},
		{"pv_recorder_get_selected_device", &vt.getSelectedDevice},
		{"pv_recorder_get_available_devices", &vt.getAvailableDevices},
		{"pv_recorder_free_available_devices", &vt.freeAvailableDevices},
		{"pv_recorder_sample_rate", &vt.sampleRate},
		{"pv_recorder_version", &vt.version},
	}

	addrs := make([]uintptr, len(entryPoints))
	for i, ep := range entryPoints {
		addr, err := lookup(ep.name)
		if err != nil {
			return fmt.Errorf("resolve symbol %q: %w", ep.name, err)
		}
		addrs[i] = addr
	}

	// Register only after every symbol resolved, so a missing entry point
	// never leaves a half-populated table behind.
	for i, ep := range entryPoints {
		register(ep.fn, addrs[i])
	}
	return nil
}

// Library is one loaded copy of the pvrecorder shared library with all entry
// points resolved. The underlying mapping stays alive until Close; any Handle
// obtained from Init must be passed to Delete before Close is called.
type Library struct {
	so *sharedLibrary
	vt vtable
}

// Load opens the shared library at path and resolves every required entry
// point. It fails atomically: on any error the library is unmapped and no
// Library is returned.
func Load(path string) (*Library, error) {
	so, err := openSharedLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("open shared library %q: %w", path, err)
	}

	lib := &Library{so: so}
	if err := lib.vt.resolve(so.lookup, registerFunc); err != nil {
		_ = so.close()
		return nil, err
	}
	return lib, nil
}

// Close unmaps the shared library. No method on the Library, and no Handle
// obtained from it, may be used afterward.
func (l *Library) Close() error {
	return l.so.close()
}

// Init creates a native recorder. A zero Handle paired with StatusSuccess
// indicates a native contract violation; callers must check for it.
func (l *Library) Init(frameLength, deviceIndex, bufferedFramesCount int32) (Handle, Status) {
	var object uintptr
	status := Status(l.vt.init(frameLength, deviceIndex, bufferedFramesCount, &object))
	return Handle(object), status
}

// Delete releases the native recorder. It must be called exactly once per
// Handle returned by Init.
func (l *Library) Delete(h Handle) {
	l.vt.delete(uintptr(h))
}

func (l *Library) Start(h Handle) Status {
	return Status(l.vt.start(uintptr(h)))
}

func (l *Library) Stop(h Handle) Status {
	return Status(l.vt.stop(uintptr(h)))
}

// Read blocks until the native layer has filled one frame into pcm. The
// slice must have room for at least one frame; the native side writes
// frame-length samples starting at pcm[0].
func (l *Library) Read(h Handle, pcm []int16) Status {
	return Status(l.vt.read(uintptr(h), &pcm[0]))
}

// SetDebugLogging toggles native debug logging. The flag crosses the
// boundary as an int32 because the native parameter is a C int.
func (l *Library) SetDebugLogging(h Handle, enabled bool) {
	var flag int32
	if enabled {
		flag = 1
	}
	l.vt.setDebugLogging(uintptr(h), flag)
}

// IsRecording decodes the native C int truth value: nonzero means recording.
func (l *Library) IsRecording(h Handle) bool {
	return l.vt.getIsRecording(uintptr(h)) != 0
}

// SelectedDevice copies the recorder's device name out of native memory.
func (l *Library) SelectedDevice(h Handle) (string, error) {
	return goStringAt(l.vt.getSelectedDevice(uintptr(h)))
}

// SampleRate reports the capture sample rate in Hz.
func (l *Library) SampleRate() int32 {
	return l.vt.sampleRate()
}

// Version copies the library version string out of native memory.
func (l *Library) Version() (string, error) {
	return goStringAt(l.vt.version())
}

// AvailableDevices enumerates the audio input devices known to the native
// layer. The native list is freed before returning on every path, including
// decode failures, and a single bad name discards the whole result.
func (l *Library) AvailableDevices() ([]string, Status, error) {
	var (
		count int32
		list  uintptr
	)
	status := Status(l.vt.getAvailableDevices(&count, &list))
	if status != StatusSuccess {
		return nil, status, nil
	}
	defer l.vt.freeAvailableDevices(count, list)

	const ptrSize = unsafe.Sizeof(uintptr(0))
	devices := make([]string, 0, count)
	for i := uintptr(0); i < uintptr(count); i++ {
		entry := *(*uintptr)(unsafe.Pointer(list + i*ptrSize))
		name, err := goStringAt(entry)
		if err != nil {
			return nil, StatusSuccess, fmt.Errorf("device %d: %w", i, err)
		}
		devices = append(devices, name)
	}
	return devices, StatusSuccess, nil
}

// goStringAt copies a NUL-terminated native string into a Go string,
// rejecting invalid UTF-8. The native pointer is not retained.
func goStringAt(addr uintptr) (string, error) {
	if addr == 0 {
		return "", fmt.Errorf("%w: nil string pointer", ErrInvalidString)
	}
	var buf []byte
	for ; ; addr++ {
		b := *(*byte)(unsafe.Pointer(addr))
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidString
	}
	return string(buf), nil
}
