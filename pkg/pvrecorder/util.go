package pvrecorder

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const defaultRelativeLibraryDir = "lib"

// rpiMachines are the Raspberry Pi CPU models that have a dedicated prebuilt
// library.
var rpiMachines = map[string]string{
	"0xb76": "arm11",
	"0xd03": "cortex-a53",
	"0xd08": "cortex-a72",
	"0xd0b": "cortex-a76",
}

// findMachineType identifies the Raspberry Pi model by the "CPU part" field
// in /proc/cpuinfo. Anything unrecognized reports "unsupported".
func findMachineType() string {
	cpuInfo, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		slog.Warn("failed to read /proc/cpuinfo, using fallback library", "error", err)
		return "unsupported"
	}

	for _, line := range strings.Split(string(cpuInfo), "\n") {
		if !strings.Contains(line, "CPU part") {
			continue
		}
		fields := strings.Fields(line)
		cpuPart := strings.ToLower(fields[len(fields)-1])
		if machine, ok := rpiMachines[cpuPart]; ok {
			return machine
		}
		return "unsupported"
	}

	slog.Warn("could not find CPU part in /proc/cpuinfo, using fallback library")
	return "unsupported"
}

func baseLibraryPath() string {
	switch runtime.GOOS {
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return "mac/arm64/libpv_recorder.dylib"
		}
		return "mac/x86_64/libpv_recorder.dylib"
	case "windows":
		if runtime.GOARCH == "arm64" {
			return "windows/arm64/libpv_recorder.dll"
		}
		return "windows/amd64/libpv_recorder.dll"
	case "linux":
		switch runtime.GOARCH {
		case "arm", "arm64":
			machine := findMachineType()
			if machine == "unsupported" {
				slog.Warn("device not officially supported, falling back to the armv6-based library")
				return "raspberry-pi/arm11/libpv_recorder.so"
			}
			if runtime.GOARCH == "arm64" {
				return "raspberry-pi/" + machine + "-aarch64/libpv_recorder.so"
			}
			return "raspberry-pi/" + machine + "/libpv_recorder.so"
		default:
			return "linux/x86_64/libpv_recorder.so"
		}
	default:
		slog.Warn("platform not officially supported", "goos", runtime.GOOS)
		return "linux/x86_64/libpv_recorder.so"
	}
}

// DefaultLibraryPath returns the relative path of the prebuilt pvrecorder
// shared library for the current platform and architecture. The caller is
// responsible for staging the binaries under lib/ next to the process
// working directory, or for overriding the path entirely via
// RecorderBuilder.LibraryPath.
func DefaultLibraryPath() string {
	return filepath.Join(defaultRelativeLibraryDir, filepath.FromSlash(baseLibraryPath()))
}
