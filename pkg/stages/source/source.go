// Package source implements the frame source stage.
package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/user/streamenc/pkg/adapters/ggrenderer"
	"github.com/user/streamenc/pkg/pipeline"
	"github.com/user/streamenc/pkg/ports"
)

// ErrNoInput is returned when neither a directory nor a pattern is given.
var ErrNoInput = errors.New("no input: give an image directory or a pattern frame count")

// ErrNoImages is returned when the directory holds no supported image.
var ErrNoImages = errors.New("no images found")

// Stage turns an image directory or a test pattern into a frame source.
type Stage struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new source stage.
func NewStage(fs ports.FileSystem, renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		fs:       fs,
		renderer: renderer,
		logger:   logger.WithComponent("source"),
	}
}

// Execute resolves the input into a lazily decoded frame source.
func (s *Stage) Execute(ctx context.Context, input pipeline.SourceInput) (pipeline.SourceResult, error) {
	switch {
	case input.Dir != "":
		return s.fromDir(input)
	case input.Pattern > 0:
		return s.fromPattern(input)
	default:
		return pipeline.SourceResult{}, ErrNoInput
	}
}

func (s *Stage) fromDir(input pipeline.SourceInput) (pipeline.SourceResult, error) {
	files, err := s.fs.ListFiles(input.Dir)
	if err != nil {
		return pipeline.SourceResult{}, fmt.Errorf("list %s: %w", input.Dir, err)
	}

	var images []string
	for _, f := range files {
		if IsImage(f) {
			images = append(images, f)
		}
	}
	if len(images) == 0 {
		return pipeline.SourceResult{}, fmt.Errorf("%w in %s", ErrNoImages, input.Dir)
	}
	if input.Reverse {
		for i, j := 0, len(images)-1; i < j; i, j = i+1, j-1 {
			images[i], images[j] = images[j], images[i]
		}
	}

	repeat := input.Repeat
	if repeat < 1 {
		repeat = 1
	}
	paths := make([]string, 0, len(images)*repeat)
	for i := 0; i < repeat; i++ {
		paths = append(paths, images...)
	}

	first, err := s.load(paths[0])
	if err != nil {
		return pipeline.SourceResult{}, err
	}
	b := first.Bounds()
	s.logger.Info("Found %d images in %s (%dx%d), %d frames", len(images), input.Dir, b.Dx(), b.Dy(), len(paths))

	return pipeline.SourceResult{
		Source: &imageSource{stage: s, paths: paths, first: first},
		Count:  len(paths),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

func (s *Stage) fromPattern(input pipeline.SourceInput) (pipeline.SourceResult, error) {
	if input.Width <= 0 || input.Height <= 0 {
		return pipeline.SourceResult{}, fmt.Errorf("invalid pattern size %dx%d", input.Width, input.Height)
	}
	s.logger.Info("Generating %d test pattern frames (%dx%d)", input.Pattern, input.Width, input.Height)
	return pipeline.SourceResult{
		Source: &patternSource{
			renderer: s.renderer,
			total:    input.Pattern,
			width:    input.Width,
			height:   input.Height,
		},
		Count:  input.Pattern,
		Width:  input.Width,
		Height: input.Height,
	}, nil
}

func (s *Stage) load(path string) (image.Image, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, err := s.renderer.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// IsImage reports whether path has an extension the renderer can decode.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ggrenderer.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// imageSource decodes one file per call; the first image is kept from probing.
type imageSource struct {
	stage *Stage
	paths []string
	first image.Image
	next  int
}

func (src *imageSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.next >= len(src.paths) {
		return nil, io.EOF
	}
	i := src.next
	src.next++
	if i == 0 && src.first != nil {
		img := src.first
		src.first = nil
		return img, nil
	}
	src.stage.logger.Debug("Decoding %s", src.paths[i])
	return src.stage.load(src.paths[i])
}

type patternSource struct {
	renderer      ports.Renderer
	total         int
	width, height int
	next          int
}

func (src *patternSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.next >= src.total {
		return nil, io.EOF
	}
	img := src.renderer.TestPattern(src.next, src.total, src.width, src.height)
	src.next++
	return img, nil
}

var (
	_ pipeline.Stage[pipeline.SourceInput, pipeline.SourceResult] = (*Stage)(nil)
	_ ports.FrameSource                                           = (*imageSource)(nil)
	_ ports.FrameSource                                           = (*patternSource)(nil)
)
