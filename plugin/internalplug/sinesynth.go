// SPDX-License-Identifier: EPL-2.0

package internalplug

import (
	"math"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/midi"
	"github.com/ik5/plughost/plugin"
)

const synthAmplitude = 0.2

type voice struct {
	active   bool
	step     float64 // phase increment per frame
	phase    float64
	velocity float32
}

// SineSynth is a minimal instrument: one sine voice per held note,
// note-on/note-off applied sample-accurately within the block. It exists so
// MIDI-driven renders work without any native binary.
//
// Voices live in a fixed per-key array and are mixed in key order, keeping
// output bit-identical across runs.
type SineSynth struct {
	sampleRate float64
	frame      uint64 // absolute position, advanced per block
	voices     [128]voice
	pending    []midi.Event
}

func NewSineSynth(sampleRate float64) *SineSynth {
	return &SineSynth{sampleRate: sampleRate}
}

func (s *SineSynth) Open() error { return nil }

func (s *SineSynth) Info() plugin.Info {
	return plugin.Info{Name: NameSineSynth, Vendor: "plughost"}
}

func (s *SineSynth) Role() plugin.Role { return plugin.RoleInstrument }

// ProcessEvents queues the block's events; they are applied at their exact
// frame offsets during the following ProcessAudio call.
func (s *SineSynth) ProcessEvents(events []midi.Event) {
	s.pending = append(s.pending[:0], events...)
}

func (s *SineSynth) applyEvent(ev midi.Event) {
	if len(ev.Data) < 2 {
		return
	}

	key := ev.Data[1] & 0x7F

	switch ev.Data[0] & 0xF0 {
	case 0x90: // note on; velocity 0 means note off
		velocity := uint8(0)
		if len(ev.Data) > 2 {
			velocity = ev.Data[2]
		}

		if velocity == 0 {
			s.voices[key].active = false
			return
		}

		freq := 440.0 * math.Pow(2, (float64(key)-69)/12)
		s.voices[key] = voice{
			active:   true,
			step:     2 * math.Pi * freq / s.sampleRate,
			velocity: float32(velocity) / 127,
		}
	case 0x80: // note off
		s.voices[key].active = false
	}
}

func (s *SineSynth) ProcessAudio(in, out *audio.Buffer, frames int) {
	pending := s.pending

	for f := range frames {
		now := s.frame + uint64(f)

		for len(pending) > 0 && pending[0].Frame <= now {
			s.applyEvent(pending[0])
			pending = pending[1:]
		}

		sample := float32(0)

		for key := range s.voices {
			v := &s.voices[key]
			if !v.active {
				continue
			}

			sample += float32(math.Sin(v.phase)) * v.velocity * synthAmplitude
			v.phase += v.step
		}

		for ch := range out.Channels() {
			out.Channel(ch)[f] = sample
		}
	}

	// Events past the rendered frames (possible on a partial final block)
	// still take effect for the next block.
	for _, ev := range pending {
		s.applyEvent(ev)
	}

	s.pending = s.pending[:0]
	s.frame += uint64(frames)
}

func (s *SineSynth) Close() error {
	s.voices = [128]voice{}
	return nil
}
