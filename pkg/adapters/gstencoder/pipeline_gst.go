//go:build cgo && !nogst

package gstencoder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
	"github.com/user/streamenc/pkg/gstpipeline"
	"github.com/user/streamenc/pkg/ports"
)

var initOnce sync.Once

func initGStreamer() {
	initOnce.Do(func() { gst.Init(nil) })
}

// gstPipeline owns one parsed pipeline and the goroutine watching its bus.
type gstPipeline struct {
	log ports.Logger

	pipeline *gst.Pipeline
	src      *app.Source

	cancel  context.CancelFunc
	eos     chan struct{} // closed when EOS or an error reached the bus
	stopped chan struct{} // closed when the bus monitor returned

	mu  sync.Mutex
	err error

	teardown sync.Once
}

func newPipeline(log ports.Logger) pipeline {
	return &gstPipeline{log: log}
}

func (p *gstPipeline) start(description, outputPath string, settings ports.VideoSettings, maxBytes uint64) error {
	initGStreamer()

	pl, err := gst.NewPipelineFromString(description)
	if err != nil {
		return pipelineError("parse pipeline", err.Error(), "")
	}

	srcElem, err := pl.GetElementByName(gstpipeline.SourceName)
	if err != nil {
		pl.SetState(gst.StateNull)
		return fmt.Errorf("gstencoder: lookup %s: %w", gstpipeline.SourceName, err)
	}
	sinkElem, err := pl.GetElementByName(gstpipeline.SinkName)
	if err != nil {
		pl.SetState(gst.StateNull)
		return fmt.Errorf("gstencoder: lookup %s: %w", gstpipeline.SinkName, err)
	}
	if err := sinkElem.SetProperty("location", outputPath); err != nil {
		pl.SetState(gst.StateNull)
		return fmt.Errorf("gstencoder: set output location: %w", err)
	}

	// format=time is set in the description; enum values do not survive SetProperty.
	src := app.SrcFromElement(srcElem)
	src.SetCaps(gst.NewCapsFromString(gstpipeline.RawCaps(settings)))
	if err := src.SetProperty("block", true); err != nil {
		pl.SetState(gst.StateNull)
		return fmt.Errorf("gstencoder: set appsrc block: %w", err)
	}
	if maxBytes > 0 {
		if err := src.SetProperty("max-bytes", maxBytes); err != nil {
			pl.SetState(gst.StateNull)
			return fmt.Errorf("gstencoder: set appsrc max-bytes: %w", err)
		}
	}
	src.SetCallbacks(&app.SourceCallbacks{
		NeedDataFunc: func(self *app.Source, length uint) {
			p.log.Debug("appsrc needs data (%d bytes)", length)
		},
		EnoughDataFunc: func(self *app.Source) {
			p.log.Debug("appsrc queue full")
		},
	})

	p.pipeline = pl
	p.src = src

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.eos = make(chan struct{})
	p.stopped = make(chan struct{})

	if err := pl.SetState(gst.StatePlaying); err != nil {
		cancel()
		pl.SetState(gst.StateNull)
		return pipelineError("set state PLAYING", err.Error(), "")
	}

	go p.monitor(ctx)
	return nil
}

// monitor polls the bus until EOS, an error, or cancellation.
func (p *gstPipeline) monitor(ctx context.Context) {
	defer close(p.stopped)

	bus := p.pipeline.GetPipelineBus()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg := bus.TimedPop(50 * time.Millisecond)
		if msg == nil {
			continue
		}

		switch msg.Type() {
		case gst.MessageEOS:
			p.log.Debug("End of stream reached the sink")
			close(p.eos)
			return

		case gst.MessageError:
			gerr := msg.ParseError()
			err := pipelineError(msg.Source(), gerr.Error(), gerr.DebugString())
			p.log.Error("Pipeline error: %s", err.Error())
			p.setErr(err)
			// NULL flushes appsrc so a blocked push returns.
			p.pipeline.SetState(gst.StateNull)
			close(p.eos)
			return

		case gst.MessageWarning:
			gerr := msg.ParseWarning()
			p.log.Warn("Pipeline warning: %s", gerr.Error())

		case gst.MessageStateChanged:
			if msg.Source() == p.pipeline.GetName() {
				old, next := msg.ParseStateChanged()
				p.log.Debug("Pipeline state changed: %s -> %s", old.String(), next.String())
			}
		}
	}
}

func (p *gstPipeline) push(data []byte, pts, duration time.Duration) error {
	if err := p.getErr(); err != nil {
		return err
	}

	buf := gst.NewBufferFromBytes(data)
	buf.SetPresentationTimestamp(pts)
	buf.SetDuration(duration)

	ret := p.src.PushBuffer(buf)
	if ret != gst.FlowOK {
		if err := p.getErr(); err != nil {
			return err
		}
		return fmt.Errorf("%w: appsrc returned %s", gstpipeline.ErrStream, ret.String())
	}
	return nil
}

func (p *gstPipeline) finish(timeout time.Duration) error {
	if err := p.getErr(); err == nil {
		if ret := p.src.EndStream(); ret != gst.FlowOK {
			p.log.Warn("appsrc rejected end of stream: %s", ret.String())
		}
	}

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	var err error
	select {
	case <-p.eos:
	case <-p.stopped:
	case <-timer:
		err = ErrFinalizeTimeout
	}

	p.shutdown()
	if perr := p.getErr(); perr != nil {
		return perr
	}
	return err
}

func (p *gstPipeline) abort() error {
	p.shutdown()
	return nil
}

func (p *gstPipeline) shutdown() {
	p.teardown.Do(func() {
		p.cancel()
		if err := p.pipeline.SetState(gst.StateNull); err != nil {
			p.log.Warn("Failed to stop pipeline: %s", err.Error())
		}
		<-p.stopped
	})
}

func (p *gstPipeline) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		p.err = err
	}
}

func (p *gstPipeline) getErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// CheckAvailable returns nil when GStreamer is initialised and every element
// the settings need can be created.
func CheckAvailable(settings ports.VideoSettings) error {
	initGStreamer()

	names := []string{"appsrc", "videoconvert", settings.Encoder, settings.Muxer, "filesink"}
	if settings.Caps != "" {
		names = append(names, "capsfilter")
	}
	for _, name := range names {
		elem, err := gst.NewElement(name)
		if err != nil {
			return fmt.Errorf("%w: %s", gstpipeline.ErrMissingPlugin, name)
		}
		elem.SetState(gst.StateNull)
	}
	return nil
}
