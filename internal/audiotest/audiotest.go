// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds block-based fakes shared by the host and format
// tests: a source generating a known waveform, a sink capturing everything
// written to it, and a plugin recording the calls it receives.
package audiotest

import (
	"io"
	"math"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/midi"
	"github.com/ik5/plughost/plugin"
)

// WaveformFunc produces the sample for a channel at an absolute frame.
type WaveformFunc func(ch int, frame uint64) float32

// Silent is a WaveformFunc producing zeros.
func Silent(_ int, _ uint64) float32 { return 0 }

// Constant returns a WaveformFunc producing v on every channel.
func Constant(v float32) WaveformFunc {
	return func(_ int, _ uint64) float32 { return v }
}

// Sine returns a WaveformFunc producing a sine wave at freq hertz for the
// given sample rate, identical on all channels.
func Sine(freq, sampleRate float64) WaveformFunc {
	return func(_ int, frame uint64) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / sampleRate))
	}
}

// Source is an audio.Source serving TotalFrames frames of a waveform.
type Source struct {
	Rate     int
	Chans    int
	Total    uint64
	Waveform WaveformFunc

	pos    uint64
	frames uint64
	closed bool

	// ReadSizes records the frame count returned by each ReadBlock call.
	ReadSizes []int
}

// NewSource returns a source serving total frames of wf.
func NewSource(rate, channels int, total uint64, wf WaveformFunc) *Source {
	return &Source{Rate: rate, Chans: channels, Total: total, Waveform: wf}
}

func (s *Source) SampleRate() int         { return s.Rate }
func (s *Source) Channels() int           { return s.Chans }
func (s *Source) FramesProcessed() uint64 { return s.frames }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

func (s *Source) Closed() bool { return s.closed }

func (s *Source) ReadBlock(buf *audio.Buffer) (int, error) {
	if s.pos >= s.Total {
		s.ReadSizes = append(s.ReadSizes, 0)
		return 0, io.EOF
	}

	n := buf.Frames()
	if remain := s.Total - s.pos; uint64(n) > remain {
		n = int(remain)
	}

	buf.Clear()
	for ch := range s.Chans {
		data := buf.Channel(ch)
		for i := range n {
			data[i] = s.Waveform(ch, s.pos+uint64(i))
		}
	}

	s.pos += uint64(n)
	s.frames += uint64(n)
	s.ReadSizes = append(s.ReadSizes, n)

	return n, nil
}

// Sink is an audio.Sink capturing every written block.
type Sink struct {
	// Blocks holds each WriteBlock's frame count in call order.
	Blocks []int
	// Samples holds the interleaved samples of everything written.
	Samples []float32

	WriteErr error

	frames uint64
	closed bool
}

func (s *Sink) FramesProcessed() uint64 { return s.frames }

func (s *Sink) Close() error {
	s.closed = true
	return nil
}

func (s *Sink) Closed() bool { return s.closed }

func (s *Sink) WriteBlock(buf *audio.Buffer, frames int) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}

	s.Blocks = append(s.Blocks, frames)

	scratch := make([]float32, frames*buf.Channels())
	buf.Interleave(scratch, frames)
	s.Samples = append(s.Samples, scratch...)

	s.frames += uint64(frames)

	return nil
}

// Plugin is a plugin.Plugin recording the calls it receives. Audio passes
// through unchanged unless Apply is set.
type Plugin struct {
	Name     string
	Kind     plugin.Role
	OpenErr  error
	CloseErr error

	// Apply, when set, transforms each sample during ProcessAudio.
	Apply func(v float32) float32

	Opened       bool
	ClosedCalled bool
	Processed    []int
	Events       []midi.Event
}

func (p *Plugin) Open() error {
	if p.OpenErr != nil {
		return p.OpenErr
	}

	p.Opened = true

	return nil
}

func (p *Plugin) Info() plugin.Info {
	return plugin.Info{Name: p.Name, Vendor: "audiotest"}
}

func (p *Plugin) Role() plugin.Role { return p.Kind }

func (p *Plugin) ProcessAudio(in, out *audio.Buffer, frames int) {
	p.Processed = append(p.Processed, frames)

	out.CopyFrom(in, frames)

	if p.Apply == nil {
		return
	}

	for ch := range out.Channels() {
		data := out.Channel(ch)
		for i := range frames {
			data[i] = p.Apply(data[i])
		}
	}
}

func (p *Plugin) ProcessEvents(events []midi.Event) {
	p.Events = append(p.Events, events...)
}

func (p *Plugin) Close() error {
	p.ClosedCalled = true
	return p.CloseErr
}
