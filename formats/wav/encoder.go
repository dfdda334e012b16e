// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/utils"
)

// Sink writes blocks to a 16-bit PCM WAV stream. Close finalizes the RIFF
// chunk sizes, so it must be called before the file is usable.
type Sink struct {
	enc      *wav.Encoder
	channels int
	intBuf   *goaudio.IntBuffer
	frames   uint64
	closed   bool
}

// NewSink creates a WAV sink on w. go-audio patches the header on Close,
// hence the io.WriteSeeker requirement.
func NewSink(w io.WriteSeeker, sampleRate, channels int) *Sink {
	return &Sink{
		enc:      wav.NewEncoder(w, sampleRate, 16, channels, 1),
		channels: channels,
	}
}

func (s *Sink) FramesProcessed() uint64 { return s.frames }

func (s *Sink) WriteBlock(buf *audio.Buffer, frames int) error {
	if s.closed {
		return audio.ErrSinkClosed
	}

	if frames == 0 {
		return nil
	}

	wanted := frames * s.channels
	if s.intBuf == nil || cap(s.intBuf.Data) < wanted {
		s.intBuf = &goaudio.IntBuffer{
			Data: make([]int, wanted),
			Format: &goaudio.Format{
				NumChannels: s.channels,
				SampleRate:  s.enc.SampleRate,
			},
			SourceBitDepth: 16,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:wanted]

	for f := range frames {
		base := f * s.channels
		for ch := range s.channels {
			s.intBuf.Data[base+ch] = int(utils.Float32ToInt16(buf.Channel(ch)[f]))
		}
	}

	err := s.enc.Write(s.intBuf)
	if err != nil {
		return fmt.Errorf("writing wav block: %w", err)
	}

	s.frames += uint64(frames)

	return nil
}

func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.enc.Close()
	if err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

var _ audio.Sink = (*Sink)(nil)
