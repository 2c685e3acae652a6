// Package logging provides a minimal logging facade for the pvrecorder
// wrapper.
//
// The package defines a Logger interface over a subset of the standard
// library's log/slog functionality. The wrapper emits a small number of
// lifecycle events (library loaded, recorder initialized, recorder released)
// at debug level; with the default slog configuration these are invisible
// unless the application lowers its log level.
//
//	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})
//	logger := logging.New(slog.New(handler))
//
//	recorder, err := pvrecorder.NewRecorderBuilder().
//	    Logger(logger).
//	    Init()
//
// Note that this facade covers only the wrapper's own diagnostics. The native
// library's logging is a separate switch, toggled through
// Recorder.SetDebugLogging, and writes directly to the process's stderr.
package logging
