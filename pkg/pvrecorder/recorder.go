package pvrecorder

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Priler/pvrecorder/internal/bindings"
	"github.com/Priler/pvrecorder/pkg/pvrecorder/logging"
)

// nativeLibrary is the set of entry points the recorder needs from the loaded
// pvrecorder library. The dynamic-loading implementation lives in
// internal/bindings; tests substitute a deterministic fake.
type nativeLibrary interface {
	Init(frameLength, deviceIndex, bufferedFramesCount int32) (bindings.Handle, bindings.Status)
	Delete(bindings.Handle)
	Start(bindings.Handle) bindings.Status
	Stop(bindings.Handle) bindings.Status
	Read(handle bindings.Handle, pcm []int16) bindings.Status
	SetDebugLogging(handle bindings.Handle, enabled bool)
	IsRecording(bindings.Handle) bool
	SelectedDevice(bindings.Handle) (string, error)
	AvailableDevices() ([]string, bindings.Status, error)
	SampleRate() int32
	Version() (string, error)
	Close() error
}

// session owns one native recorder handle together with the library it was
// created from. It is shared by every Recorder clone; the native delete runs
// exactly once, when the last clone releases its reference, and only then is
// the library unmapped.
type session struct {
	lib    nativeLibrary
	handle bindings.Handle

	// Immutable after newSession; reads never re-enter the native layer.
	frameLength    int32
	sampleRate     int32
	selectedDevice string
	version        string

	log logging.Logger

	refs     atomic.Int32
	teardown sync.Once
}

// newSession calls the native init entry point and caches the immutable
// recorder properties. On any failure the handle (if created) is deleted and
// the library unmapped, so errors never leak native resources.
func newSession(lib nativeLibrary, frameLength, deviceIndex, bufferedFramesCount int32, log logging.Logger) (*session, error) {
	handle, status := lib.Init(frameLength, deviceIndex, bufferedFramesCount)
	if status != StatusSuccess {
		_ = lib.Close()
		return nil, nativeError("pv_recorder_init", status)
	}
	if handle == 0 {
		_ = lib.Close()
		return nil, internalError("pv_recorder_init returned SUCCESS but the recorder handle is nil")
	}

	selectedDevice, err := lib.SelectedDevice(handle)
	if err != nil {
		lib.Delete(handle)
		_ = lib.Close()
		return nil, remapStringError("selected device name", err)
	}

	version, err := lib.Version()
	if err != nil {
		lib.Delete(handle)
		_ = lib.Close()
		return nil, remapStringError("library version", err)
	}

	s := &session{
		lib:            lib,
		handle:         handle,
		frameLength:    frameLength,
		sampleRate:     lib.SampleRate(),
		selectedDevice: selectedDevice,
		version:        version,
		log:            log,
	}
	s.refs.Store(1)

	s.log.Debug(context.Background(), "recorder initialized",
		"device", selectedDevice,
		"sample_rate", s.sampleRate,
		"frame_length", frameLength,
		"version", version,
	)
	return s, nil
}

// retain adds a reference for a new clone.
func (s *session) retain() {
	s.refs.Add(1)
}

// release drops one reference. The last release deletes the native recorder
// and then unmaps the library, in that order. The teardown is guarded so it
// runs at most once no matter how clones are dropped.
func (s *session) release() {
	if s.refs.Add(-1) > 0 {
		return
	}
	s.teardown.Do(func() {
		s.lib.Delete(s.handle)
		_ = s.lib.Close()
		s.log.Debug(context.Background(), "recorder released", "device", s.selectedDevice)
	})
}

func (s *session) start() error {
	if status := s.lib.Start(s.handle); status != StatusSuccess {
		return nativeError("pv_recorder_start", status)
	}
	return nil
}

func (s *session) stop() error {
	if status := s.lib.Stop(s.handle); status != StatusSuccess {
		return nativeError("pv_recorder_stop", status)
	}
	return nil
}

// readInto blocks until the native layer fills one frame. The caller must
// hand in a buffer of at least frameLength samples; an undersized buffer is a
// programming error, not a runtime condition, and panics.
func (s *session) readInto(buffer []int16) error {
	if len(buffer) < int(s.frameLength) {
		panic(fmt.Sprintf("pvrecorder: buffer length %d is less than frame length %d",
			len(buffer), s.frameLength))
	}
	if status := s.lib.Read(s.handle, buffer); status != StatusSuccess {
		return nativeError("pv_recorder_read", status)
	}
	return nil
}

// Recorder is the public handle for capturing audio. It is safe for
// concurrent use, though concurrent Read calls race for samples; callers that
// need ordered frames should read from a single goroutine.
//
// A Recorder is a reference to a shared native session. Clone returns another
// reference cheaply; the native recorder is destroyed only after every clone
// has been closed.
type Recorder struct {
	inner  *session
	closed atomic.Bool
}

// Clone returns a new Recorder sharing the same native session. It must be
// called on an open Recorder.
func (r *Recorder) Clone() *Recorder {
	if r.closed.Load() {
		panic("pvrecorder: Clone called on a closed recorder")
	}
	r.inner.retain()
	return &Recorder{inner: r.inner}
}

// Close releases this clone's reference to the native session. The native
// recorder is deleted exactly once, when the last clone closes. Calling
// Close again on the same clone returns ErrRecorderClosed.
func (r *Recorder) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrRecorderClosed
	}
	r.inner.release()
	return nil
}

// Start begins audio capture on the selected device. Starting an already
// started recorder fails with a native INVALID_STATE status; use
// IsInvalidState to branch on it.
func (r *Recorder) Start() error {
	if r.closed.Load() {
		return ErrRecorderClosed
	}
	return r.inner.start()
}

// Stop halts audio capture. Stopping a recorder that is not started fails
// with a native INVALID_STATE status.
func (r *Recorder) Stop() error {
	if r.closed.Load() {
		return ErrRecorderClosed
	}
	return r.inner.stop()
}

// Read blocks until one full frame of samples is available and returns it.
// The returned slice always has exactly FrameLength samples.
func (r *Recorder) Read() ([]int16, error) {
	if r.closed.Load() {
		return nil, ErrRecorderClosed
	}
	frame := make([]int16, r.inner.frameLength)
	if err := r.inner.readInto(frame); err != nil {
		return nil, err
	}
	return frame, nil
}

// ReadInto blocks until one full frame is available and writes it into the
// first FrameLength entries of buffer, avoiding the allocation Read makes.
//
// The buffer must hold at least FrameLength samples. Violating that is a
// caller bug and panics rather than returning an error.
func (r *Recorder) ReadInto(buffer []int16) error {
	if r.closed.Load() {
		return ErrRecorderClosed
	}
	return r.inner.readInto(buffer)
}

// SetDebugLogging toggles the native library's debug logging. The native
// call has no failure status; this is best effort.
func (r *Recorder) SetDebugLogging(enabled bool) {
	if r.closed.Load() {
		return
	}
	r.inner.lib.SetDebugLogging(r.inner.handle, enabled)
}

// IsRecording queries the native layer for the live recording state. A
// closed recorder reports false.
func (r *Recorder) IsRecording() bool {
	if r.closed.Load() {
		return false
	}
	return r.inner.lib.IsRecording(r.inner.handle)
}

// FrameLength returns the number of samples per frame, as configured at
// construction.
func (r *Recorder) FrameLength() int {
	return int(r.inner.frameLength)
}

// SampleRate returns the capture sample rate in Hz, cached at construction.
func (r *Recorder) SampleRate() int {
	return int(r.inner.sampleRate)
}

// SelectedDevice returns the name of the audio device the recorder captures
// from, cached at construction.
func (r *Recorder) SelectedDevice() string {
	return r.inner.selectedDevice
}

// Version returns the native library's version string, cached at
// construction.
func (r *Recorder) Version() string {
	return r.inner.version
}
