// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/plughost/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	interleave []float32
	frames     uint64
}

func (s *source) SampleRate() int         { return s.sampleRate }
func (s *source) Channels() int           { return s.channels }
func (s *source) FramesProcessed() uint64 { return s.frames }
func (s *source) Close() error            { return nil }

func (s *source) ReadBlock(buf *audio.Buffer) (int, error) {
	wanted := buf.Frames() * s.channels
	if wanted == 0 {
		return 0, nil
	}

	if cap(s.interleave) < wanted {
		s.interleave = make([]float32, wanted)
	}
	s.interleave = s.interleave[:wanted]

	// oggvorbis returns the number of float32 values read, always a
	// multiple of the channel count; short reads happen at page ends.
	filled := 0
	for filled < wanted {
		n, err := s.dec.Read(s.interleave[filled:])
		filled += n

		if err == io.EOF {
			break
		}

		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
	}

	if filled == 0 {
		return 0, io.EOF
	}

	readFrames := filled / s.channels
	buf.Deinterleave(s.interleave[:readFrames*s.channels])
	s.frames += uint64(readFrames)

	if readFrames < buf.Frames() {
		return readFrames, io.EOF
	}

	return readFrames, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
