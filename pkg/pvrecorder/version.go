package pvrecorder

// Version is the wrapper's own semantic version, populated at build time via
// ldflags. It is distinct from Recorder.Version, which reports the native
// library's version string.
var Version = "v0.0.0-dev"

// SDKVersion returns the version of the Go wrapper itself.
func SDKVersion() string {
	return Version
}
