package frame

import (
	"math"
	"time"
)

// Fraction expresses a framerate as num/den. Whole rates use den 1; NTSC-style
// rates (29.97, 59.94, 23.976) use den 1001; anything else uses den 1000.
func Fraction(fps float64) (num, den int) {
	if fps <= 0 {
		return 0, 1
	}
	if fps == math.Trunc(fps) {
		return int(fps), 1
	}
	ntsc := fps * 1001 / 1000
	if math.Abs(ntsc-math.Round(ntsc)) < 0.01 {
		return int(math.Round(ntsc)) * 1000, 1001
	}
	return int(math.Round(fps * 1000)), 1000
}

// PTS returns the presentation timestamp of frame n, n*den/num seconds for the
// framerate's Fraction, so timestamps agree with the negotiated caps.
func PTS(n uint64, framerate float64) time.Duration {
	num, den := Fraction(framerate)
	if num <= 0 {
		return 0
	}
	ticks := n * uint64(den)
	secs := ticks / uint64(num)
	rem := ticks % uint64(num)
	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/time.Duration(num)
}

// Duration returns the display duration of one frame.
func Duration(framerate float64) time.Duration {
	num, den := Fraction(framerate)
	if num <= 0 {
		return 0
	}
	return time.Duration(den) * time.Second / time.Duration(num)
}
