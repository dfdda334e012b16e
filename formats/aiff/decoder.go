// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/utils"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec        aiffReader
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
			Data:   make([]int, wanted),
			Format: s.dec.Format(),
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
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
