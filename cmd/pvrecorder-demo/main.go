// Command pvrecorder-demo records audio from an input device and optionally
// saves it to a WAV file. It doubles as a quick way to list capture devices.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/cobra"

	"github.com/Priler/pvrecorder/pkg/pvrecorder"
	"github.com/Priler/pvrecorder/pkg/pvrecorder/logging"
)

type options struct {
	showDevices         bool
	deviceIndex         int
	frameLength         int
	bufferedFramesCount int
	libraryPath         string
	outputWAVPath       string
	seconds             int
	debug               bool
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pvrecorder-demo",
		Short: "Record audio with the pvrecorder library",
		Long: "Records raw PCM from the selected input device until interrupted " +
			"(or for --seconds seconds) and optionally writes it to a WAV file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showDevices {
				return showAudioDevices(opts)
			}
			return record(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.showDevices, "show_audio_devices", false, "List available audio input devices and exit")
	flags.IntVar(&opts.deviceIndex, "audio_device_index", -1, "Index of the input device to use (-1 for system default)")
	flags.IntVar(&opts.frameLength, "frame_length", 512, "Samples per frame")
	flags.IntVar(&opts.bufferedFramesCount, "buffered_frames_count", 50, "Frames buffered internally by the native layer")
	flags.StringVar(&opts.libraryPath, "library_path", "", "Path to the pvrecorder shared library (defaults to the bundled platform binary)")
	flags.StringVar(&opts.outputWAVPath, "output_wav_path", "", "Write the recording to this WAV file")
	flags.IntVar(&opts.seconds, "seconds", 0, "Stop after this many seconds (0 records until interrupted)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging, both in the wrapper and the native library")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newBuilder(opts *options) *pvrecorder.RecorderBuilder {
	builder := pvrecorder.NewRecorderBuilder().
		FrameLength(opts.frameLength).
		DeviceIndex(opts.deviceIndex).
		BufferedFramesCount(opts.bufferedFramesCount)
	if opts.libraryPath != "" {
		builder.LibraryPath(opts.libraryPath)
	}
	if opts.debug {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		builder.Logger(logging.New(slog.New(handler)))
	}
	return builder
}

func showAudioDevices(opts *options) error {
	devices, err := newBuilder(opts).GetAvailableDevices()
	if err != nil {
		return fmt.Errorf("list audio devices: %w", err)
	}
	for i, device := range devices {
		fmt.Printf("index: %d, device name: %s\n", i, device)
	}
	return nil
}

func record(ctx context.Context, opts *options) error {
	recorder, err := newBuilder(opts).Init()
	if err != nil {
		return fmt.Errorf("create recorder: %w", err)
	}
	defer func() { _ = recorder.Close() }()

	recorder.SetDebugLogging(opts.debug)

	slog.Info("recording",
		"device", recorder.SelectedDevice(),
		"sample_rate", recorder.SampleRate(),
		"frame_length", recorder.FrameLength(),
		"version", recorder.Version(),
	)

	if err := recorder.Start(); err != nil {
		return fmt.Errorf("start recording: %w", err)
	}

	var deadline <-chan time.Time
	if opts.seconds > 0 {
		timer := time.NewTimer(time.Duration(opts.seconds) * time.Second)
		defer timer.Stop()
		deadline = timer.C
	}

	// Reads happen on a single goroutine so frames stay ordered.
	var samples []int
	buffer := make([]int16, recorder.FrameLength())

loop:
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted, stopping")
			break loop
		case <-deadline:
			break loop
		default:
		}

		if err := recorder.ReadInto(buffer); err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		if opts.outputWAVPath != "" {
			for _, s := range buffer {
				samples = append(samples, int(s))
			}
		}
	}

	if err := recorder.Stop(); err != nil {
		return fmt.Errorf("stop recording: %w", err)
	}

	if opts.outputWAVPath != "" {
		if err := writeWAV(opts.outputWAVPath, recorder.SampleRate(), samples); err != nil {
			return err
		}
		slog.Info("saved recording",
			"path", opts.outputWAVPath,
			"duration", (time.Duration(len(samples)) * time.Second / time.Duration(recorder.SampleRate())).String(),
		)
	}
	return nil
}

func writeWAV(path string, sampleRate int, samples []int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = out.Close() }()

	const (
		bitDepth    = 16
		numChannels = 1
	)
	enc := wav.NewEncoder(out, sampleRate, bitDepth, numChannels, 1)
	buf := &audio.IntBuffer{
		Data:   samples,
		Format: &audio.Format{SampleRate: sampleRate, NumChannels: numChannels},
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize WAV file: %w", err)
	}
	return nil
}
