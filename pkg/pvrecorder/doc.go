// Package pvrecorder is a Go binding for the pvrecorder audio-capture
// library. The native library is loaded as a shared object at runtime; no
// cgo or compile-time linking is required.
//
// A Recorder is built through RecorderBuilder, which validates the
// configuration before any native call is made:
//
//	recorder, err := pvrecorder.NewRecorderBuilder().
//	    FrameLength(512).
//	    DeviceIndex(-1).
//	    Init()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer recorder.Close()
//
//	if err := recorder.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	for recorder.IsRecording() {
//	    frame, err := recorder.Read()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // process frame (16-bit signed PCM, FrameLength samples)
//	}
//
// Read blocks the calling goroutine until the native layer has a full frame
// of samples. Concurrent Read calls against the same recorder are permitted
// but race for samples; a single reader goroutine keeps frames ordered.
//
// A Recorder may be cloned and shared across goroutines. Clones reference
// one underlying native session; the native recorder is destroyed exactly
// once, after the last clone has been closed.
//
// Device enumeration does not require a recorder:
//
//	devices, err := pvrecorder.NewRecorderBuilder().GetAvailableDevices()
//
// All failures are reported as *Error values categorized by ErrorKind.
// Native status codes surface verbatim via Error.Status; INVALID_STATE (for
// example, starting a recorder twice) can be detected with IsInvalidState.
package pvrecorder
