// SPDX-License-Identifier: EPL-2.0

package smf

import (
	"fmt"
	"io"
	"math"
	"os"

	gosmf "gitlab.com/gomidi/midi/v2/smf"

	"github.com/ik5/plughost/midi"
)

// Load bulk-reads a Standard MIDI File and converts it to a sequence with
// absolute sample timestamps at the given host sample rate. Tempo changes in
// the file are honored (gomidi resolves them to absolute microseconds).
// Loading is all-or-nothing: any read error aborts before a truncated
// sequence can reach the dispatcher.
func Load(r io.Reader, sampleRate float64) (*midi.Sequence, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	var events []midi.Event

	err := gosmf.ReadTracksFrom(r).
		Do(func(te gosmf.TrackEvent) {
			if te.Message.IsMeta() {
				return
			}

			frame := uint64(math.Round(float64(te.AbsMicroSeconds) * sampleRate / 1e6))

			var channel uint8
			te.Message.GetChannel(&channel)

			data := make([]byte, len(te.Message.Bytes()))
			copy(data, te.Message.Bytes())

			events = append(events, midi.Event{
				Frame:   frame,
				Data:    data,
				Channel: channel,
				Track:   te.TrackNo,
			})
		}).
		Error()
	if err != nil {
		return nil, fmt.Errorf("reading SMF: %w", err)
	}

	return midi.NewSequence(events), nil
}

// LoadFile opens and loads a Standard MIDI File from disk.
func LoadFile(path string, sampleRate float64) (*midi.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return Load(f, sampleRate)
}
