// SPDX-License-Identifier: EPL-2.0

// Package smf loads Standard MIDI Files (format 0 and 1) into an in-memory
// midi.Sequence.
//
// This package uses gitlab.com/gomidi/midi/v2/smf to parse the file and
// resolve delta ticks against the tempo map; timestamps are then quantized
// to absolute sample frames at the host sample rate:
//
//	seq, err := smf.LoadFile("performance.mid", 44100)
//	if err != nil {
//	    // Handle error
//	}
//	events := seq.EventsForRange(0, 512)
//
// Meta events (tempo, markers, lyrics) are consumed during conversion and
// do not appear in the resulting sequence; only channel messages do.
//
// # Limitations
//
//   - Loading is bulk-only; streaming MIDI input is not supported.
//   - Multi-track files are merged into a single ordered sequence. Events
//     from different tracks sharing a frame keep their track order.
package smf
