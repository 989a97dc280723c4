package ports

import "image"

// Renderer produces frames for the source stage.
type Renderer interface {
	// DecodeImage decodes a still image, detecting its format from the data.
	DecodeImage(data []byte) (image.Image, error)

	// TestPattern draws frame index of a synthetic sequence of total frames.
	TestPattern(index, total, width, height int) image.Image
}
