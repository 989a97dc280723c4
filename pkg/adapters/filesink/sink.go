// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/user/streamenc/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	every   int
}

// New creates a new FileSink. Only every n-th frame is written; n <= 1 keeps all.
func New(baseDir string, fs ports.FileSystem, every int) *Sink {
	if every < 1 {
		every = 1
	}
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		every:   every,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSettings saves the effective settings as YAML.
func (s *Sink) SaveSettings(data []byte) error {
	path := filepath.Join(s.baseDir, "settings.yaml")
	return s.fs.WriteFile(path, data)
}

// SavePipeline saves the pipeline description.
func (s *Sink) SavePipeline(description string) error {
	path := filepath.Join(s.baseDir, "pipeline.txt")
	return s.fs.WriteFile(path, []byte(description+"\n"))
}

// SaveFrame saves a frame as PNG.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	if index%s.every != 0 {
		return nil
	}
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gg.NewContextForImage(img).EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%05d.png", index))
	return s.fs.WriteFile(path, buf.Bytes())
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
