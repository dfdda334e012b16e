// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/utils"
)

// wavReader is an interface for wav.Decoder to allow testing
type wavReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio wav.Decoder to implement audio.Source
type source struct {
	dec        wavReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
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

	if s.intBuf == nil || cap(s.intBuf.Data) < wanted {
		s.intBuf = &goaudio.IntBuffer{
			Data: make([]int, wanted),
			Format: &goaudio.Format{
				NumChannels: s.channels,
				SampleRate:  s.sampleRate,
			},
		}
		s.interleave = make([]float32, wanted)
	}
	s.intBuf.Data = s.intBuf.Data[:wanted]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}

		return 0, io.EOF
	}

	for i := range n {
		s.interleave[i] = utils.IntToFloat32(s.intBuf.Data[i], s.bitDepth)
	}

	readFrames := n / s.channels
	buf.Deinterleave(s.interleave[:readFrames*s.channels])
	s.frames += uint64(readFrames)

	// A short read with no error means the PCM chunk is exhausted.
	if readFrames < buf.Frames() && err == nil {
		return readFrames, io.EOF
	}

	return readFrames, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// go-audio requires io.ReadSeeker; buffer non-seekable input.
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedWavLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
