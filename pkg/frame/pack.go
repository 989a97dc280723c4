package frame

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Fit returns img as a straight-alpha NRGBA image of exactly width x height
// pixels anchored at the origin. Images of the right size are converted
// without scaling; others are scaled with Catmull-Rom.
func Fit(img image.Image, width, height int) *image.NRGBA {
	bounds := img.Bounds()
	if nrgba, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) &&
		bounds.Dx() == width && bounds.Dy() == height {
		return nrgba
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if bounds.Dx() == width && bounds.Dy() == height {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// Pack writes img into dst as a tightly packed frame of the given format and
// size. dst must hold at least Size(f, width, height) bytes.
func Pack(dst []byte, img image.Image, f Format, width, height int) error {
	info, ok := formats[f]
	if !ok {
		return fmt.Errorf("frame: invalid pixel format %d", int(f))
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("frame: invalid frame size %dx%d", width, height)
	}
	need := Size(f, width, height)
	if len(dst) < need {
		return fmt.Errorf("frame: buffer too small: have %d bytes, need %d", len(dst), need)
	}

	src := Fit(img, width, height)

	// Raw video formats carry straight alpha, the NRGBA layout; copy rows directly.
	if f == FormatRGBA {
		for y := 0; y < height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+4*width]
			copy(dst[y*4*width:], row)
		}
		return nil
	}

	o := 0
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+4*width]
		for x := 0; x < width; x++ {
			p := row[4*x : 4*x+4]
			dst[o+info.r] = p[0]
			dst[o+info.g] = p[1]
			dst[o+info.b] = p[2]
			if info.a >= 0 {
				if info.pad {
					dst[o+info.a] = 0xff
				} else {
					dst[o+info.a] = p[3]
				}
			}
			o += info.bpp
		}
	}
	return nil
}

// PackNew allocates a buffer and packs img into it.
func PackNew(img image.Image, f Format, width, height int) ([]byte, error) {
	buf := make([]byte, Size(f, width, height))
	if err := Pack(buf, img, f, width, height); err != nil {
		return nil, err
	}
	return buf, nil
}
