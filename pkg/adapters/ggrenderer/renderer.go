// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/streamenc/pkg/ports"
)

// Extensions lists the file extensions DecodeImage understands.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// DecodeImage decodes image data, detecting the format.
func (r *Renderer) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// TestPattern draws colour bars, a sweeping bar and a frame counter.
// Consecutive frames differ so encoders cannot collapse them.
func (r *Renderer) TestPattern(index, total, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.RGBA{R: 30, G: 30, B: 30, A: 255})
	dc.Clear()

	bars := []color.RGBA{
		{R: 192, G: 192, B: 192, A: 255},
		{R: 192, G: 192, B: 0, A: 255},
		{R: 0, G: 192, B: 192, A: 255},
		{R: 0, G: 192, B: 0, A: 255},
		{R: 192, G: 0, B: 192, A: 255},
		{R: 192, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 192, A: 255},
	}
	barW := float64(width) / float64(len(bars))
	barH := float64(height) * 2 / 3
	for i, c := range bars {
		dc.SetColor(c)
		dc.DrawRectangle(float64(i)*barW, 0, barW+1, barH)
		dc.Fill()
	}

	progress := 0.0
	if total > 1 {
		progress = float64(index) / float64(total-1)
	}
	sweepW := math.Max(4, float64(width)/16)
	dc.SetColor(color.White)
	dc.DrawRectangle(progress*(float64(width)-sweepW), barH, sweepW, float64(height)-barH)
	dc.Fill()

	dc.SetColor(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	dc.DrawStringAnchored(fmt.Sprintf("%d / %d", index+1, total), float64(width)/2, barH/2, 0.5, 0.5)

	return dc.Image()
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
