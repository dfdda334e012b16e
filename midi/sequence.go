// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"sort"
)

// Sequence is an ordered-by-frame collection of events, immutable after
// construction. Dispatch correctness depends on the ascending order, so the
// constructor establishes it rather than trusting the caller.
type Sequence struct {
	events []Event
}

// NewSequence builds a sequence from events, stably sorting them by frame.
// The stable sort preserves the original order of events sharing a frame.
func NewSequence(events []Event) *Sequence {
	sorted := make([]Event, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frame < sorted[j].Frame
	})

	return &Sequence{events: sorted}
}

// Len returns the number of events.
func (s *Sequence) Len() int { return len(s.events) }

// Events returns the full ordered event slice. Callers must not mutate it.
func (s *Sequence) Events() []Event { return s.events }

// EndFrame returns one past the frame of the last event, or 0 for an empty
// sequence. A run driven purely by MIDI terminates once the clock passes it.
func (s *Sequence) EndFrame() uint64 {
	if len(s.events) == 0 {
		return 0
	}

	return s.events[len(s.events)-1].Frame + 1
}

// EventsForRange returns every event with start <= Frame < start+length, in
// sequence order. The interval is half-open: an event exactly at
// start+length belongs to the next window. Pure read; the returned slice
// aliases the sequence and must not be mutated.
func (s *Sequence) EventsForRange(start uint64, length int) []Event {
	end := start + uint64(length)

	lo := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].Frame >= start
	})
	hi := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].Frame >= end
	})

	if lo == hi {
		return nil
	}

	return s.events[lo:hi]
}
