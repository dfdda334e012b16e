// SPDX-License-Identifier: EPL-2.0

package audio

// SilenceSource produces all-zero blocks indefinitely. It never fails and
// never reaches end-of-stream; it stands in for a real input when the chain
// is driven by an instrument and the user supplies no audio file. The run
// length is then bounded elsewhere (by the MIDI sequence).
type SilenceSource struct {
	sampleRate int
	channels   int
	frames     uint64
}

func NewSilenceSource(sampleRate, channels int) *SilenceSource {
	return &SilenceSource{
		sampleRate: sampleRate,
		channels:   channels,
	}
}

func (s *SilenceSource) SampleRate() int         { return s.sampleRate }
func (s *SilenceSource) Channels() int           { return s.channels }
func (s *SilenceSource) FramesProcessed() uint64 { return s.frames }
func (s *SilenceSource) Close() error            { return nil }

func (s *SilenceSource) ReadBlock(buf *Buffer) (int, error) {
	buf.Clear()
	s.frames += uint64(buf.Frames())

	return buf.Frames(), nil
}
