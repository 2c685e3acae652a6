package pvrecorder

import (
	"context"
	"log/slog"

	"github.com/Priler/pvrecorder/internal/bindings"
	"github.com/Priler/pvrecorder/pkg/pvrecorder/logging"
)

const (
	defaultFrameLength         = 512
	defaultDeviceIndex         = -1
	defaultBufferedFramesCount = 50
)

// RecorderBuilder accumulates recorder configuration. It holds no native
// resources; nothing touches the native layer until Init.
type RecorderBuilder struct {
	frameLength         int
	deviceIndex         int
	bufferedFramesCount int
	libraryPath         string
	logger              logging.Logger

	// loadLibrary is swapped out by tests to run against a fake native
	// layer instead of a real shared object.
	loadLibrary func(path string) (nativeLibrary, error)
}

// NewRecorderBuilder returns a builder with the library defaults: a frame
// length of 512 samples, the system default capture device, and 50 buffered
// frames. The library path defaults to the platform-specific prebuilt binary
// under lib/; see DefaultLibraryPath.
func NewRecorderBuilder() *RecorderBuilder {
	return &RecorderBuilder{
		frameLength:         defaultFrameLength,
		deviceIndex:         defaultDeviceIndex,
		bufferedFramesCount: defaultBufferedFramesCount,
		libraryPath:         DefaultLibraryPath(),
		logger:              logging.New(slog.Default()),
		loadLibrary:         loadNativeLibrary,
	}
}

func loadNativeLibrary(path string) (nativeLibrary, error) {
	return bindings.Load(path)
}

// FrameLength sets the number of samples per frame returned by Read. Must be
// greater than 0.
func (b *RecorderBuilder) FrameLength(frameLength int) *RecorderBuilder {
	b.frameLength = frameLength
	return b
}

// DeviceIndex selects the capture device. Use -1 (the default) for the
// system default device, or an index into GetAvailableDevices.
func (b *RecorderBuilder) DeviceIndex(deviceIndex int) *RecorderBuilder {
	b.deviceIndex = deviceIndex
	return b
}

// BufferedFramesCount sets how many frames the native layer buffers
// internally between reads. Must be greater than 0. The value is write-only
// configuration: the recorder exposes no getter for it after Init.
func (b *RecorderBuilder) BufferedFramesCount(bufferedFramesCount int) *RecorderBuilder {
	b.bufferedFramesCount = bufferedFramesCount
	return b
}

// LibraryPath overrides the path to the pvrecorder shared library.
func (b *RecorderBuilder) LibraryPath(libraryPath string) *RecorderBuilder {
	b.libraryPath = libraryPath
	return b
}

// Logger routes the wrapper's lifecycle diagnostics to the given logger.
func (b *RecorderBuilder) Logger(logger logging.Logger) *RecorderBuilder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Init validates the configuration, loads the shared library, and creates a
// native recorder. Validation failures are reported before any native call,
// so a bad configuration never creates a partial native session.
func (b *RecorderBuilder) Init() (*Recorder, error) {
	if b.frameLength <= 0 {
		return nil, argumentError("frame_length must be greater than 0, got: %d", b.frameLength)
	}
	if b.deviceIndex < -1 {
		return nil, argumentError("device_index must be greater than or equal to -1, got: %d", b.deviceIndex)
	}
	if b.bufferedFramesCount <= 0 {
		return nil, argumentError("buffered_frames_count must be greater than 0, got: %d", b.bufferedFramesCount)
	}

	lib, err := b.loadLibrary(b.libraryPath)
	if err != nil {
		return nil, loadError(err)
	}
	b.logger.Debug(context.Background(), "loaded recorder library", "path", b.libraryPath)

	sess, err := newSession(lib,
		int32(b.frameLength),
		int32(b.deviceIndex),
		int32(b.bufferedFramesCount),
		b.logger,
	)
	if err != nil {
		return nil, err
	}
	return &Recorder{inner: sess}, nil
}

// GetAvailableDevices returns the names of the audio input devices known to
// the native layer. It loads the library standalone and does not require, or
// create, a recorder. The index of a name in the returned slice is the value
// to pass to DeviceIndex.
func (b *RecorderBuilder) GetAvailableDevices() ([]string, error) {
	lib, err := b.loadLibrary(b.libraryPath)
	if err != nil {
		return nil, loadError(err)
	}
	defer func() { _ = lib.Close() }()

	devices, status, err := lib.AvailableDevices()
	if err != nil {
		return nil, remapStringError("device name", err)
	}
	if status != StatusSuccess {
		return nil, nativeError("pv_recorder_get_available_devices", status)
	}
	return devices, nil
}
