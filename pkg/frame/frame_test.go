package frame

import (
	"image"
	"image/color"
	"testing"
	"time"
)

func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"BGRx":  FormatBGRx,
		"bgrx":  FormatBGRx,
		"bgr0":  FormatBGRx,
		"RGBA":  FormatRGBA,
		"rgb24": FormatRGB,
		" BGR ": FormatBGR,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseFormat("I420"); err == nil {
		t.Error("expected error for planar format")
	}
}

func TestFormat_TextRoundTrip(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("rgbx")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	text, err := f.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if string(text) != "RGBx" {
		t.Errorf("expected RGBx, got %s", text)
	}

	if _, err := Format(99).MarshalText(); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestSize(t *testing.T) {
	if got := Size(FormatBGRx, 300, 300); got != 360000 {
		t.Errorf("expected 360000, got %d", got)
	}
	if got := Size(FormatRGB, 4, 2); got != 24 {
		t.Errorf("expected 24, got %d", got)
	}
}

func TestPack_ChannelOrder(t *testing.T) {
	img := solidImage(2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	cases := []struct {
		format Format
		want   []byte
	}{
		{FormatBGRx, []byte{30, 20, 10, 0xff}},
		{FormatBGRA, []byte{30, 20, 10, 255}},
		{FormatRGBx, []byte{10, 20, 30, 0xff}},
		{FormatRGBA, []byte{10, 20, 30, 255}},
		{FormatRGB, []byte{10, 20, 30}},
		{FormatBGR, []byte{30, 20, 10}},
	}

	for _, tc := range cases {
		buf, err := PackNew(img, tc.format, 2, 2)
		if err != nil {
			t.Fatalf("%v: PackNew failed: %v", tc.format, err)
		}
		if len(buf) != Size(tc.format, 2, 2) {
			t.Fatalf("%v: expected %d bytes, got %d", tc.format, Size(tc.format, 2, 2), len(buf))
		}
		bpp := tc.format.BytesPerPixel()
		for px := 0; px < 4; px++ {
			got := buf[px*bpp : px*bpp+bpp]
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("%v pixel %d: expected %v, got %v", tc.format, px, tc.want, got)
					break
				}
			}
		}
	}
}

func TestPack_RowOrder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 2, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 3, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 4, A: 255})

	buf, err := PackNew(img, FormatRGB, 2, 2)
	if err != nil {
		t.Fatalf("PackNew failed: %v", err)
	}
	for i, want := range []byte{1, 2, 3, 4} {
		if buf[i*3] != want {
			t.Errorf("pixel %d: expected red %d, got %d", i, want, buf[i*3])
		}
	}
}

func TestPack_OffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinates.
	parent := solidImage(8, 8, color.RGBA{G: 200, A: 255})
	sub := parent.SubImage(image.Rect(4, 4, 8, 8))

	buf, err := PackNew(sub, FormatRGBA, 4, 4)
	if err != nil {
		t.Fatalf("PackNew failed: %v", err)
	}
	if buf[1] != 200 || buf[len(buf)-3] != 200 {
		t.Errorf("expected green pixels, got %v", buf[:4])
	}
}

func TestPack_ScalesMismatchedImages(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	buf, err := PackNew(img, FormatBGRx, 20, 5)
	if err != nil {
		t.Fatalf("PackNew failed: %v", err)
	}
	if len(buf) != 20*5*4 {
		t.Fatalf("expected %d bytes, got %d", 20*5*4, len(buf))
	}
	if buf[0] < 250 || buf[len(buf)-2] < 250 {
		t.Errorf("expected near-white after scaling, got %v", buf[:4])
	}
}

func TestPack_Errors(t *testing.T) {
	img := solidImage(2, 2, color.RGBA{A: 255})

	if err := Pack(make([]byte, 3), img, FormatRGBA, 2, 2); err == nil {
		t.Error("expected error for short buffer")
	}
	if err := Pack(make([]byte, 16), img, Format(42), 2, 2); err == nil {
		t.Error("expected error for invalid format")
	}
	if err := Pack(make([]byte, 16), img, FormatRGBA, 0, 2); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestFit_ReusesMatchingNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if Fit(img, 4, 4) != img {
		t.Error("expected matching NRGBA image to be reused")
	}
	if Fit(img, 2, 2) == img {
		t.Error("expected a new image when scaling")
	}
}

func TestPack_StraightAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
		}
	}

	cases := []struct {
		format Format
		want   []byte
	}{
		{FormatRGBA, []byte{200, 100, 50, 128}},
		{FormatBGRA, []byte{50, 100, 200, 128}},
		{FormatBGRx, []byte{50, 100, 200, 0xff}},
		{FormatRGB, []byte{200, 100, 50}},
	}
	for _, tc := range cases {
		buf, err := PackNew(img, tc.format, 2, 2)
		if err != nil {
			t.Fatalf("%v: PackNew failed: %v", tc.format, err)
		}
		got := buf[:len(tc.want)]
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("%v: expected %v, got %v", tc.format, tc.want, got)
				break
			}
		}
	}
}

func TestPack_UnpremultipliesRGBA(t *testing.T) {
	// image.RGBA stores premultiplied values; 100/128 unpremultiplies to ~199.
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 25, A: 128})

	buf, err := PackNew(img, FormatRGBA, 1, 1)
	if err != nil {
		t.Fatalf("PackNew failed: %v", err)
	}
	if buf[0] < 197 || buf[0] > 201 || buf[3] != 128 {
		t.Errorf("expected straight red near 199 with alpha 128, got %v", buf)
	}
}

func TestPTS(t *testing.T) {
	if got := PTS(0, 30); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := PTS(30, 30); got != time.Second {
		t.Errorf("expected 1s, got %v", got)
	}
	// 1000/30 truncated to 33ms would drift to 990ms here.
	if got := PTS(3, 30); got != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", got)
	}
	if got := PTS(5, 0); got != 0 {
		t.Errorf("expected 0 for invalid framerate, got %v", got)
	}
}

func TestPTS_FollowsFraction(t *testing.T) {
	// 29.97 is 30000/1001: frame 30000 lands exactly on 1001s.
	if got := PTS(30000, 29.97); got != 1001*time.Second {
		t.Errorf("expected 1001s, got %v", got)
	}
	if got := PTS(1, 29.97); got != 1001*time.Second/30000 {
		t.Errorf("expected %v, got %v", 1001*time.Second/30000, got)
	}
	if got, want := Duration(29.97), 1001*time.Second/30000; got != want {
		t.Errorf("Duration(29.97) = %v, want %v", got, want)
	}
}

func TestFraction(t *testing.T) {
	cases := []struct {
		fps      float64
		num, den int
	}{
		{30, 30, 1},
		{60, 60, 1},
		{29.97, 30000, 1001},
		{23.976, 24000, 1001},
		{12.5, 12500, 1000},
		{0, 0, 1},
	}
	for _, tc := range cases {
		num, den := Fraction(tc.fps)
		if num != tc.num || den != tc.den {
			t.Errorf("Fraction(%g) = %d/%d, want %d/%d", tc.fps, num, den, tc.num, tc.den)
		}
	}
}

func TestDuration(t *testing.T) {
	if got := Duration(25); got != 40*time.Millisecond {
		t.Errorf("expected 40ms, got %v", got)
	}
	if got := Duration(-1); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}
