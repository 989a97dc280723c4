// Package probe reads back the video track of an encoded MP4 file.
package probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecH265    Codec = "h265"
	CodecAV1     Codec = "av1"
	CodecVP9     Codec = "vp9"
	CodecUnknown Codec = "unknown"
)

// ErrNoVideoTrack is returned when the file has no video track.
var ErrNoVideoTrack = errors.New("probe: no video track found")

// Info describes the video track of an MP4 file.
type Info struct {
	Codec      Codec
	Width      int
	Height     int
	Samples    int
	Timescale  uint32
	Duration   time.Duration
	Fragmented bool
	Size       int64
}

// FrameRate returns the average frame rate, or 0 when unknown.
func (i Info) FrameRate() float64 {
	if i.Duration <= 0 || i.Samples == 0 {
		return 0
	}
	return float64(i.Samples) / i.Duration.Seconds()
}

// ProbeFile inspects an MP4 file on disk.
func ProbeFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Info{}, fmt.Errorf("stat file: %w", err)
	}
	info, err := ProbeReader(f)
	info.Size = st.Size()
	return info, err
}

// ProbeBytes inspects MP4 data held in memory.
func ProbeBytes(data []byte) (Info, error) {
	info, err := ProbeReader(bytes.NewReader(data))
	info.Size = int64(len(data))
	return info, err
}

// ProbeReader inspects MP4 data from an io.ReadSeeker.
func ProbeReader(reader io.ReadSeeker) (Info, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	// Reset reader position for subsequent reads
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("seek: %w", err)
	}

	return probeFile(mp4File)
}

func probeFile(mp4File *mp4.File) (Info, error) {
	if mp4File.IsFragmented() {
		if mp4File.Init == nil || mp4File.Init.Moov == nil {
			return Info{Fragmented: true}, ErrNoVideoTrack
		}
		for _, trak := range mp4File.Init.Moov.Traks {
			info, ok := probeTrack(trak)
			if !ok {
				continue
			}
			info.Fragmented = true
			info.Samples, info.Duration = fragmentedSamples(mp4File, trak.Tkhd.TrackID, info.Timescale)
			return info, nil
		}
		return Info{Fragmented: true}, ErrNoVideoTrack
	}

	if mp4File.Moov != nil {
		for _, trak := range mp4File.Moov.Traks {
			if info, ok := probeTrack(trak); ok {
				return info, nil
			}
		}
	}

	return Info{}, ErrNoVideoTrack
}

// probeTrack reads codec, size and sample table of a video track.
func probeTrack(trak *mp4.TrakBox) (Info, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return Info{}, false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return Info{}, false
	}

	info := Info{Codec: CodecUnknown}
	if trak.Mdia.Mdhd != nil {
		info.Timescale = trak.Mdia.Mdhd.Timescale
	}

	stbl := trak.Mdia.Minf.Stbl
	for _, child := range stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			info.Codec = CodecH264
		case "hvc1", "hev1":
			info.Codec = CodecH265
		case "av01":
			info.Codec = CodecAV1
		case "vp09":
			info.Codec = CodecVP9
		default:
			continue
		}
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		break
	}

	if stbl.Stsz != nil {
		info.Samples = int(stbl.Stsz.SampleNumber)
	}
	if stbl.Stts != nil && info.Timescale > 0 {
		var total uint64
		for i, count := range stbl.Stts.SampleCount {
			total += uint64(count) * uint64(stbl.Stts.SampleTimeDelta[i])
		}
		info.Duration = ticks(total, info.Timescale)
	}
	return info, true
}

// fragmentedSamples sums the sample count and duration of all fragments of a track.
func fragmentedSamples(mp4File *mp4.File, trackID uint32, timescale uint32) (int, time.Duration) {
	var trex *mp4.TrexBox
	if mvex := mp4File.Init.Moov.Mvex; mvex != nil {
		for _, t := range mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var samples int
	var total uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil || !hasTrack(frag.Moof, trackID) {
				continue
			}
			full, err := frag.GetFullSamples(trex)
			if err != nil {
				continue
			}
			samples += len(full)
			for _, s := range full {
				total += uint64(s.Dur)
			}
		}
	}
	if timescale == 0 {
		return samples, 0
	}
	return samples, ticks(total, timescale)
}

func hasTrack(moof *mp4.MoofBox, trackID uint32) bool {
	for _, traf := range moof.Trafs {
		if traf.Tfhd != nil && traf.Tfhd.TrackID == trackID {
			return true
		}
	}
	return false
}

func ticks(n uint64, timescale uint32) time.Duration {
	return time.Duration(n * uint64(time.Second) / uint64(timescale))
}
