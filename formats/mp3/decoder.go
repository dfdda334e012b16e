// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/utils"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
	interleave []float32
	frames     uint64
}

func (s *source) SampleRate() int         { return s.sampleRate }
func (s *source) Channels() int           { return s.channels }
func (s *source) FramesProcessed() uint64 { return s.frames }
func (s *source) Close() error            { return nil }

func (s *source) ReadBlock(buf *audio.Buffer) (int, error) {
	// go-mp3 returns 16-bit little-endian PCM bytes (stereo interleaved),
	// so one frame is channels*2 bytes.
	bytesNeeded := buf.Frames() * s.channels * 2
	if bytesNeeded == 0 {
		return 0, nil
	}

	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
		s.interleave = make([]float32, buf.Frames()*s.channels)
	}
	s.buf = s.buf[:bytesNeeded]

	// go-mp3 may return short reads mid-stream; keep filling until the
	// block is complete or the stream ends.
	filled := 0
	for filled < bytesNeeded {
		n, err := s.dec.Read(s.buf[filled:])
		filled += n

		if err == io.EOF {
			break
		}

		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
	}

	samples := filled / 2
	if samples == 0 {
		return 0, io.EOF
	}

	for i := range samples {
		low := uint16(s.buf[2*i])
		high := uint16(s.buf[2*i+1])
		s.interleave[i] = utils.Int16ToFloat32(int16(low | (high << 8)))
	}

	readFrames := samples / s.channels
	buf.Deinterleave(s.interleave[:readFrames*s.channels])
	s.frames += uint64(readFrames)

	if readFrames < buf.Frames() {
		return readFrames, io.EOF
	}

	return readFrames, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// go-mp3 outputs stereo (2 channels) for most MP3 files
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
	}, nil
}
