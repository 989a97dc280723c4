// Package main provides the CLI entry point for streamenc.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/streamenc/pkg/adapters/filesink"
	"github.com/user/streamenc/pkg/adapters/ggrenderer"
	"github.com/user/streamenc/pkg/adapters/logger"
	"github.com/user/streamenc/pkg/adapters/nullsink"
	"github.com/user/streamenc/pkg/adapters/osfilesystem"
	"github.com/user/streamenc/pkg/adapters/probe"
	"github.com/user/streamenc/pkg/config"
	"github.com/user/streamenc/pkg/frame"
	"github.com/user/streamenc/pkg/orchestrator"
	"github.com/user/streamenc/pkg/ports"
	"github.com/user/streamenc/pkg/stages/encode"
	probestage "github.com/user/streamenc/pkg/stages/probe"
	"github.com/user/streamenc/pkg/stages/source"
	"github.com/user/streamenc/pkg/streamenc"
	"github.com/user/streamenc/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "streamenc",
		Usage:   l10n.T("Encode image sequences into video files"),
		Version: version,
		Description: l10n.T("streamenc streams frames through a GStreamer pipeline " +
			"(or ffmpeg when GStreamer is unavailable) and writes the encoded video."),
		Commands: []*cli.Command{
			encodeCommand(),
			probeCommand(),
		},
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

func encodeCommand() *cli.Command {
	catInput := l10n.T("Input")
	catOutput := l10n.T("Output")
	catVideo := l10n.T("Video and Quality")
	catBackend := l10n.T("Backend")
	catDebug := l10n.T("Debug")
	catLogging := l10n.T("Logging")

	return &cli.Command{
		Name:      "encode",
		Usage:     l10n.T("Encode a directory of images or a test pattern"),
		UsageText: "streamenc encode [options] (--input DIR | --pattern N) --output FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Category: catInput, Usage: l10n.T("YAML configuration file (flags override it)")},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Category: catInput, Usage: l10n.T("Directory of images, encoded in path order")},
			&cli.IntFlag{Name: "pattern", Category: catInput, Usage: l10n.T("Generate a test pattern with this many frames instead of reading images")},
			&cli.BoolFlag{Name: "reverse", Category: catInput, Usage: l10n.T("Encode the images in reverse order")},
			&cli.IntFlag{Name: "repeat", Category: catInput, Usage: l10n.T("Number of passes over the images")},

			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Category: catOutput, Usage: l10n.T("Output video file path")},
			&cli.StringFlag{Name: "summary", Category: catOutput, Usage: l10n.T("Output execution summary to file (Markdown format)")},
			&cli.BoolFlag{Name: "no-probe", Category: catOutput, Usage: l10n.T("Do not inspect the output file")},

			&cli.Float64Flag{Name: "framerate", Aliases: []string{"r"}, Category: catVideo, Usage: l10n.T("Frames per second")},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Category: catVideo, Usage: l10n.T("Video width (default: size of the first image)")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Category: catVideo, Usage: l10n.T("Video height (default: size of the first image)")},
			&cli.StringFlag{Name: "encoder", Aliases: []string{"e"}, Category: catVideo, Usage: l10n.T("Encoder element (x264enc, x265enc, vp8enc, vp9enc, av1enc, ...)")},
			&cli.StringFlag{Name: "muxer", Aliases: []string{"m"}, Category: catVideo, Usage: l10n.T("Muxer element (mp4mux, qtmux, matroskamux, webmmux, avimux)")},
			&cli.StringFlag{Name: "format", Category: catVideo, Usage: l10n.T("Pixel format fed into the pipeline (BGRx, BGRA, RGBx, RGBA, RGB, BGR)")},
			&cli.StringFlag{Name: "caps", Category: catVideo, Usage: l10n.T("Caps placed after the encoder (empty for none)")},
			&cli.StringSliceFlag{Name: "encoder-prop", Category: catVideo, Usage: l10n.T("Encoder element property as key=value (repeatable)")},
			&cli.StringSliceFlag{Name: "muxer-prop", Category: catVideo, Usage: l10n.T("Muxer element property as key=value (repeatable)")},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Category: catVideo, Usage: l10n.T("CRF 0-51 for the ffmpeg backend (0 = default)")},
			&cli.IntFlag{Name: "bitrate", Category: catVideo, Usage: l10n.T("Target bitrate in kbps for the ffmpeg backend")},

			&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Category: catBackend, Usage: l10n.T("Encoding backend (auto, gstreamer, ffmpeg)")},
			&cli.BoolFlag{Name: "fallback", Category: catBackend, Usage: l10n.T("Fall back to the other backend when the chosen one is unavailable")},
			&cli.StringFlag{Name: "ffmpeg-path", Category: catBackend, Usage: l10n.T("Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)")},
			&cli.IntFlag{Name: "buffer-size", Category: catBackend, Usage: l10n.T("Frames queued before the producer blocks")},
			&cli.DurationFlag{Name: "finalize-timeout", Category: catBackend, Usage: l10n.T("Maximum wait for the pipeline to flush")},

			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Category: catDebug, Usage: l10n.T("Enable debug output")},
			&cli.StringFlag{Name: "debug-dir", Category: catDebug, Usage: l10n.T("Directory for debug output")},
			&cli.IntFlag{Name: "debug-every", Category: catDebug, Usage: l10n.T("Save every n-th frame to the debug directory")},

			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Category: catLogging, Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Category: catLogging, Usage: l10n.T("Suppress all log output")},
		},
		Action: runEncode,
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Show the video track of an MP4 file"),
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%s", l10n.T("probe requires exactly one file"))
			}
			info, err := probe.ProbeFile(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Println(l10n.F("Codec: %s", string(info.Codec)))
			fmt.Println(l10n.F("Size: %dx%d", info.Width, info.Height))
			fmt.Println(l10n.F("Samples: %d", info.Samples))
			fmt.Println(l10n.F("Duration: %d ms", info.Duration.Milliseconds()))
			fmt.Println(l10n.F("Frame rate: %.2f fps", info.FrameRate()))
			fmt.Println(l10n.F("Fragmented: %t", info.Fragmented))
			fmt.Println(l10n.F("File size: %d bytes", info.Size))
			return nil
		},
	}
}

func runEncode(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		level, _ := ports.ParseLogLevel(cfg.LogLevel)
		log = logger.NewConsole(level)
	}

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, cfg.DebugEvery)
	} else {
		sink = nullsink.New()
	}

	encodeOpts, err := cfg.EncodeOptions()
	if err != nil {
		return err
	}
	encodeOpts = append(encodeOpts,
		streamenc.WithFileSystem(fs),
		streamenc.WithDebugSink(sink),
	)

	orch := orchestrator.New(
		source.NewStage(fs, renderer, log),
		encode.NewStage(log, encodeOpts...),
		probestage.NewStage(fs, log),
		log,
	)

	result, err := orch.Run(c.Context, cfg.ToOrchestratorConfig())
	if err != nil {
		return err
	}
	log.Info("Output saved to %s", cfg.OutputPath)

	if cfg.Summary != "" {
		summary := summarizer.NewBuilder().
			WithRun(result.ID, result.Backend, describeInput(cfg), result.OutputPath).
			WithSettings(result.Settings).
			WithVideo(summarizer.VideoInfo{
				SourceFrames: result.SourceFrames,
				Frames:       result.Frames,
				DurationMs:   result.Duration.Milliseconds(),
				ElapsedMs:    result.Elapsed.Milliseconds(),
				FileSize:     result.FileSize,
			}).
			WithProbe(result.Probe).
			Build()

		formatter := summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(func(s string) string { return l10n.T(s) }),
			summarizer.WithVersion(version),
		)
		if err := summarizer.NewWriter(formatter, fs).Write(cfg.Summary, summary); err != nil {
			log.Warn("Failed to write summary: %s", err.Error())
		}
	}
	return nil
}

// buildConfig layers defaults, the YAML file and the flags that were set.
func buildConfig(c *cli.Context) (cfg config.Config, err error) {
	cfg = config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("pattern") {
		cfg.Pattern = c.Int("pattern")
	}
	if c.IsSet("reverse") {
		cfg.Reverse = c.Bool("reverse")
	}
	if c.IsSet("repeat") {
		cfg.Repeat = c.Int("repeat")
	}
	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.Bool("no-probe") {
		cfg.Probe = false
	}

	if c.IsSet("framerate") {
		cfg.Video.Framerate = c.Float64("framerate")
	}
	if c.IsSet("width") {
		cfg.Video.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Video.Height = c.Int("height")
	}
	if c.IsSet("encoder") {
		cfg.Video.Encoder = c.String("encoder")
	}
	if c.IsSet("muxer") {
		cfg.Video.Muxer = c.String("muxer")
	}
	if c.IsSet("format") {
		f, err := frame.ParseFormat(c.String("format"))
		if err != nil {
			return cfg, err
		}
		cfg.Video.Format = f
	}
	if c.IsSet("caps") {
		cfg.Video.Caps = c.String("caps")
	}
	if cfg.Video.EncoderSettings, err = mergeProps(cfg.Video.EncoderSettings, c.StringSlice("encoder-prop")); err != nil {
		return cfg, err
	}
	if cfg.Video.MuxerSettings, err = mergeProps(cfg.Video.MuxerSettings, c.StringSlice("muxer-prop")); err != nil {
		return cfg, err
	}
	if c.IsSet("quality") {
		cfg.Video.Quality = c.Int("quality")
	}
	if c.IsSet("bitrate") {
		cfg.Video.Bitrate = c.Int("bitrate")
	}

	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("fallback") {
		cfg.Fallback = c.Bool("fallback")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.IsSet("buffer-size") {
		cfg.BufferSize = c.Int("buffer-size")
	}
	if c.IsSet("finalize-timeout") {
		cfg.FinalizeTimeout = c.Duration("finalize-timeout")
	}

	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("debug-every") {
		cfg.DebugEvery = c.Int("debug-every")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	return cfg, nil
}

// mergeProps adds key=value pairs to dst.
func mergeProps(dst map[string]string, pairs []string) (map[string]string, error) {
	if dst == nil {
		dst = map[string]string{}
	}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return dst, fmt.Errorf("invalid property %q, want key=value", p)
		}
		dst[strings.TrimSpace(key)] = value
	}
	return dst, nil
}

func describeInput(cfg config.Config) string {
	if cfg.Input != "" {
		return cfg.Input
	}
	return l10n.F("test pattern (%d frames)", cfg.Pattern)
}
