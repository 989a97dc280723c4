// Package ffmpegencoder encodes frames by piping raw video into an ffmpeg
// child process. It serves as the fallback when GStreamer is not available.
package ffmpegencoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/user/streamenc/pkg/adapters/logger"
	"github.com/user/streamenc/pkg/frame"
	"github.com/user/streamenc/pkg/ports"
)

// Options configures the encoder.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// Logger receives debug output. Nil discards it.
	Logger ports.Logger
}

// Encoder implements ports.VideoEncoder using an ffmpeg external process.
// EncodeFrame and End must be called from one goroutine; Abort may be called
// from any goroutine and unblocks a write stuck on a full pipe.
type Encoder struct {
	opts Options
	log  ports.Logger

	writeMu  sync.Mutex
	mu       sync.Mutex
	settings ports.VideoSettings
	cmd      *exec.Cmd
	cancel   context.CancelFunc
	stdin    io.WriteCloser
	stderr   bytes.Buffer
	scratch  []byte
	frames   int

	// endCancel is the cancel func of a process End is waiting on.
	endCancel context.CancelFunc
	aborted   bool
}

// New creates a new ffmpeg encoder.
func New(opts Options) *Encoder {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	return &Encoder{
		opts: opts,
		log:  log.WithComponent("ffmpeg"),
	}
}

// Begin starts ffmpeg writing to outputPath.
func (e *Encoder) Begin(outputPath string, settings ports.VideoSettings) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := settings.Validate(); err != nil {
		return err
	}
	if e.cmd != nil {
		return fmt.Errorf("ffmpegencoder: process already running")
	}

	ffmpegPath, err := FindFFmpeg(e.opts.FFmpegPath)
	if err != nil {
		return err
	}
	args, err := Args(outputPath, settings)
	if err != nil {
		return err
	}
	if len(settings.EncoderSettings) > 0 || len(settings.MuxerSettings) > 0 {
		e.log.Debug("Element properties are not applied by the ffmpeg backend")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	e.stderr.Reset()
	cmd.Stderr = &e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	e.log.Debug("Running %s %s", ffmpegPath, strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	e.settings = settings.Clone()
	e.cmd = cmd
	e.cancel = cancel
	e.stdin = stdin
	e.scratch = make([]byte, settings.FrameSize())
	e.frames = 0
	return nil
}

// EncodeFrame writes one packed frame to ffmpeg's stdin. ffmpeg assigns
// timestamps from the input rate, so pts is not forwarded.
func (e *Encoder) EncodeFrame(img image.Image, pts time.Duration) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.Lock()
	stdin := e.stdin
	settings := e.settings
	n := e.frames
	e.mu.Unlock()

	if stdin == nil {
		return ErrNotInitialized
	}
	if err := frame.Pack(e.scratch, img, settings.Format, settings.Width, settings.Height); err != nil {
		return err
	}
	if _, err := stdin.Write(e.scratch); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", n, err)
	}

	e.mu.Lock()
	e.frames++
	e.mu.Unlock()
	return nil
}

// End closes stdin and waits for ffmpeg to finalize the file.
func (e *Encoder) End() error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.Lock()
	cmd, cancel, stdin := e.cmd, e.cancel, e.stdin
	frames := e.frames
	e.reset()
	e.endCancel = cancel
	e.aborted = false
	e.mu.Unlock()

	if stdin == nil {
		return ErrNotInitialized
	}

	stdin.Close()
	err := cmd.Wait()
	cancel()

	e.mu.Lock()
	e.endCancel = nil
	aborted := e.aborted
	e.mu.Unlock()

	if aborted {
		return ErrAborted
	}
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrEncodingFailed, err, e.stderrSuffix())
	}
	e.log.Debug("ffmpeg finished after %d frames", frames)
	return nil
}

// Abort kills ffmpeg. The output file is left incomplete. Called while End is
// waiting for ffmpeg to exit, it kills the process and End returns ErrAborted.
func (e *Encoder) Abort() error {
	e.mu.Lock()
	cmd, cancel, stdin := e.cmd, e.cancel, e.stdin
	e.reset()
	if cmd == nil && e.endCancel != nil {
		e.aborted = true
		e.endCancel()
	}
	e.mu.Unlock()

	if cmd == nil {
		return nil
	}
	cancel()
	stdin.Close()
	err := cmd.Wait()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (e *Encoder) reset() {
	e.cmd = nil
	e.cancel = nil
	e.stdin = nil
}

func (e *Encoder) stderrSuffix() string {
	s := strings.TrimSpace(e.stderr.String())
	if s == "" {
		return ""
	}
	return "\nstderr: " + s
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
