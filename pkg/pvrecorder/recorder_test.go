package pvrecorder

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priler/pvrecorder/internal/bindings"
)

// fakeLibrary is a deterministic in-memory stand-in for the loaded native
// library. It implements the same interface the dynamic-loading adapter does,
// so the whole lifecycle can be exercised without a shared object.
type fakeLibrary struct {
	mu      sync.Mutex
	started bool

	initStatus    bindings.Status
	returnNil     bool
	frameLength   int32
	deviceIndex   int32
	bufferedCount int32

	selectedDevice    string
	selectedDeviceErr error
	version           string
	versionErr        error
	sampleRate        int32

	devices       []string
	devicesStatus bindings.Status
	devicesErr    error

	deleteCalls atomic.Int32
	closeCalls  atomic.Int32
	readCalls   int
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		selectedDevice: "Fake Microphone",
		version:        "1.2.3",
		sampleRate:     16000,
		devices:        []string{"Fake Microphone", "USB Audio Device"},
	}
}

func (f *fakeLibrary) Init(frameLength, deviceIndex, bufferedFramesCount int32) (bindings.Handle, bindings.Status) {
	f.frameLength = frameLength
	f.deviceIndex = deviceIndex
	f.bufferedCount = bufferedFramesCount
	if f.initStatus != bindings.StatusSuccess {
		return 0, f.initStatus
	}
	if f.returnNil {
		return 0, bindings.StatusSuccess
	}
	return bindings.Handle(1), bindings.StatusSuccess
}

func (f *fakeLibrary) Delete(bindings.Handle) { f.deleteCalls.Add(1) }

func (f *fakeLibrary) Start(bindings.Handle) bindings.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started {
		return bindings.StatusInvalidState
	}
	f.started = true
	return bindings.StatusSuccess
}

func (f *fakeLibrary) Stop(bindings.Handle) bindings.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.started {
		return bindings.StatusInvalidState
	}
	f.started = false
	return bindings.StatusSuccess
}

func (f *fakeLibrary) Read(_ bindings.Handle, pcm []int16) bindings.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.started {
		return bindings.StatusInvalidState
	}
	f.readCalls++
	// Write exactly one frame, nothing past it.
	for i := int32(0); i < f.frameLength; i++ {
		pcm[i] = int16(f.readCalls)
	}
	return bindings.StatusSuccess
}

func (f *fakeLibrary) SetDebugLogging(bindings.Handle, bool) {}

func (f *fakeLibrary) IsRecording(bindings.Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

func (f *fakeLibrary) SelectedDevice(bindings.Handle) (string, error) {
	return f.selectedDevice, f.selectedDeviceErr
}

func (f *fakeLibrary) AvailableDevices() ([]string, bindings.Status, error) {
	if f.devicesErr != nil {
		return nil, bindings.StatusSuccess, f.devicesErr
	}
	if f.devicesStatus != bindings.StatusSuccess {
		return nil, f.devicesStatus, nil
	}
	return f.devices, bindings.StatusSuccess, nil
}

func (f *fakeLibrary) SampleRate() int32 { return f.sampleRate }

func (f *fakeLibrary) Version() (string, error) { return f.version, f.versionErr }

func (f *fakeLibrary) Close() error {
	f.closeCalls.Add(1)
	return nil
}

func newTestBuilder(lib *fakeLibrary) *RecorderBuilder {
	b := NewRecorderBuilder()
	b.loadLibrary = func(string) (nativeLibrary, error) { return lib, nil }
	return b
}

func mustInit(t *testing.T, lib *fakeLibrary) *Recorder {
	t.Helper()
	recorder, err := newTestBuilder(lib).Init()
	require.NoError(t, err)
	return recorder
}

func TestInitCachesProperties(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)
	defer func() { _ = recorder.Close() }()

	assert.Greater(t, recorder.SampleRate(), 0)
	assert.NotEmpty(t, recorder.SelectedDevice())
	assert.NotEmpty(t, recorder.Version())
	assert.False(t, recorder.IsRecording())
	assert.Equal(t, 512, recorder.FrameLength())
}

func TestInitNativeFailure(t *testing.T) {
	lib := newFakeLibrary()
	lib.initStatus = bindings.StatusBackendError

	_, err := newTestBuilder(lib).Init()
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrorNativeStatus, e.Kind())
	assert.Equal(t, StatusBackendError, e.Status())
	assert.Equal(t, int32(1), lib.closeCalls.Load(), "library must be unmapped on init failure")
}

func TestInitNilHandle(t *testing.T) {
	lib := newFakeLibrary()
	lib.returnNil = true

	_, err := newTestBuilder(lib).Init()
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrorInternal, e.Kind())
	assert.Contains(t, e.Message(), "nil")
}

func TestInitDeviceNameDecodeFailure(t *testing.T) {
	lib := newFakeLibrary()
	lib.selectedDeviceErr = bindings.ErrInvalidString

	_, err := newTestBuilder(lib).Init()
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrorStringEncoding, e.Kind())
	assert.Equal(t, int32(1), lib.deleteCalls.Load(), "handle must be deleted on decode failure")
	assert.Equal(t, int32(1), lib.closeCalls.Load())
}

func TestStartReadStop(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)
	defer func() { _ = recorder.Close() }()

	require.NoError(t, recorder.Start())
	assert.True(t, recorder.IsRecording())

	for i := 0; i < 3; i++ {
		frame, err := recorder.Read()
		require.NoError(t, err)
		assert.Len(t, frame, recorder.FrameLength())
	}

	require.NoError(t, recorder.Stop())
	assert.False(t, recorder.IsRecording())
}

func TestDoubleStartIsInvalidState(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)
	defer func() { _ = recorder.Close() }()

	require.NoError(t, recorder.Start())
	err := recorder.Start()
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))
}

func TestReadBeforeStart(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)
	defer func() { _ = recorder.Close() }()

	_, err := recorder.Read()
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))
}

func TestReadIntoLargerBuffer(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)
	defer func() { _ = recorder.Close() }()

	require.NoError(t, recorder.Start())

	buffer := make([]int16, recorder.FrameLength()*2)
	require.NoError(t, recorder.ReadInto(buffer))

	for i := 0; i < recorder.FrameLength(); i++ {
		assert.NotZero(t, buffer[i], "sample %d should be filled", i)
	}
	for i := recorder.FrameLength(); i < len(buffer); i++ {
		assert.Zero(t, buffer[i], "sample %d past the frame must stay untouched", i)
	}
}

func TestReadIntoShortBufferPanics(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)
	defer func() { _ = recorder.Close() }()

	require.NoError(t, recorder.Start())

	assert.PanicsWithValue(t,
		"pvrecorder: buffer length 100 is less than frame length 512",
		func() { _ = recorder.ReadInto(make([]int16, 100)) },
	)
}

func TestCloneSharesProperties(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)

	clone := recorder.Clone()
	assert.Equal(t, recorder.FrameLength(), clone.FrameLength())
	assert.Equal(t, recorder.SampleRate(), clone.SampleRate())
	assert.Equal(t, recorder.SelectedDevice(), clone.SelectedDevice())
	assert.Equal(t, recorder.Version(), clone.Version())

	require.NoError(t, recorder.Close())
	require.NoError(t, clone.Close())
	assert.Equal(t, int32(1), lib.deleteCalls.Load())
}

func TestCloneKeepsSessionAlive(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)
	clone := recorder.Clone()

	require.NoError(t, recorder.Close())
	assert.Zero(t, lib.deleteCalls.Load(), "session must survive while a clone is open")

	require.NoError(t, clone.Start())
	frame, err := clone.Read()
	require.NoError(t, err)
	assert.Len(t, frame, 512)

	require.NoError(t, clone.Close())
	assert.Equal(t, int32(1), lib.deleteCalls.Load())
	assert.Equal(t, int32(1), lib.closeCalls.Load())
}

func TestCloseIsIdempotentPerClone(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)

	require.NoError(t, recorder.Close())
	assert.ErrorIs(t, recorder.Close(), ErrRecorderClosed)
	assert.Equal(t, int32(1), lib.deleteCalls.Load())
}

func TestConcurrentCloseDeletesOnce(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)

	clones := make([]*Recorder, 16)
	clones[0] = recorder
	for i := 1; i < len(clones); i++ {
		clones[i] = recorder.Clone()
	}

	var wg sync.WaitGroup
	for _, c := range clones {
		wg.Add(1)
		go func(r *Recorder) {
			defer wg.Done()
			_ = r.Close()
			_ = r.Close()
		}(c)
	}
	wg.Wait()

	assert.Equal(t, int32(1), lib.deleteCalls.Load(), "native delete must run exactly once")
	assert.Equal(t, int32(1), lib.closeCalls.Load(), "library must be unmapped exactly once")
}

func TestOperationsOnClosedRecorder(t *testing.T) {
	lib := newFakeLibrary()
	recorder := mustInit(t, lib)
	require.NoError(t, recorder.Close())

	assert.ErrorIs(t, recorder.Start(), ErrRecorderClosed)
	assert.ErrorIs(t, recorder.Stop(), ErrRecorderClosed)
	_, err := recorder.Read()
	assert.ErrorIs(t, err, ErrRecorderClosed)
	assert.ErrorIs(t, recorder.ReadInto(make([]int16, 512)), ErrRecorderClosed)
	assert.False(t, recorder.IsRecording())
	// Cached accessors remain readable.
	assert.Equal(t, "Fake Microphone", recorder.SelectedDevice())
}
