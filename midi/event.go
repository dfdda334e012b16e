// SPDX-License-Identifier: EPL-2.0

package midi

// Event is one timestamped MIDI message, immutable after creation.
type Event struct {
	// Frame is the absolute sample position the event fires at.
	Frame uint64
	// Data holds the raw MIDI message bytes (status byte included).
	Data []byte
	// Channel is the MIDI channel (0-15) for channel messages.
	Channel uint8
	// Track is the source track index in the originating file.
	Track int
}
