// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"testing"
)

func noteOn(frame uint64, key uint8) Event {
	return Event{Frame: frame, Data: []byte{0x90, key, 100}}
}

func TestSequence_SortsOnConstruction(t *testing.T) {
	t.Parallel()

	seq := NewSequence([]Event{
		noteOn(600, 64),
		noteOn(0, 60),
		noteOn(300, 62),
	})

	events := seq.Events()
	for i := 1; i < len(events); i++ {
		if events[i].Frame < events[i-1].Frame {
			t.Fatalf("events not sorted: frame %d after %d",
				events[i].Frame, events[i-1].Frame)
		}
	}
}

func TestSequence_StableForEqualFrames(t *testing.T) {
	t.Parallel()

	seq := NewSequence([]Event{
		noteOn(100, 60),
		noteOn(100, 62),
		noteOn(100, 64),
	})

	got := seq.EventsForRange(0, 256)
	if len(got) != 3 {
		t.Fatalf("EventsForRange returned %d events, want 3", len(got))
	}

	for i, key := range []uint8{60, 62, 64} {
		if got[i].Data[1] != key {
			t.Errorf("event %d has key %d, want %d", i, got[i].Data[1], key)
		}
	}
}

func TestSequence_EventsForRange(t *testing.T) {
	t.Parallel()

	// Events at absolute samples {0, 300, 600}, blocksize 256: each block
	// window must pick up exactly one event.
	seq := NewSequence([]Event{
		noteOn(0, 60),
		noteOn(300, 62),
		noteOn(600, 64),
	})

	tests := []struct {
		name      string
		start     uint64
		wantFrame uint64
	}{
		{"block 0", 0, 0},
		{"block 1", 256, 300},
		{"block 2", 512, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := seq.EventsForRange(tt.start, 256)
			if len(got) != 1 {
				t.Fatalf("EventsForRange(%d, 256) returned %d events, want 1",
					tt.start, len(got))
			}

			if got[0].Frame != tt.wantFrame {
				t.Errorf("event frame = %d, want %d", got[0].Frame, tt.wantFrame)
			}
		})
	}
}

func TestSequence_HalfOpenBoundary(t *testing.T) {
	t.Parallel()

	// An event exactly at start+length belongs to the next window.
	seq := NewSequence([]Event{noteOn(256, 60)})

	if got := seq.EventsForRange(0, 256); len(got) != 0 {
		t.Errorf("window [0,256) returned %d events, want 0", len(got))
	}

	got := seq.EventsForRange(256, 256)
	if len(got) != 1 {
		t.Fatalf("window [256,512) returned %d events, want 1", len(got))
	}
}

func TestSequence_PastLastEvent(t *testing.T) {
	t.Parallel()

	seq := NewSequence([]Event{noteOn(100, 60)})

	if got := seq.EventsForRange(256, 256); len(got) != 0 {
		t.Errorf("window past last event returned %d events, want 0", len(got))
	}
}

// TestSequence_WindowPartition verifies that advancing non-overlapping
// windows dispatch every event exactly once: no duplication, no loss.
func TestSequence_WindowPartition(t *testing.T) {
	t.Parallel()

	frames := []uint64{0, 1, 255, 256, 257, 300, 511, 512, 600, 1000, 1023}

	events := make([]Event, 0, len(frames))
	for _, f := range frames {
		events = append(events, noteOn(f, 60))
	}

	seq := NewSequence(events)

	const blocksize = 256

	seen := make(map[uint64]int)

	for start := uint64(0); start < seq.EndFrame(); start += blocksize {
		for _, ev := range seq.EventsForRange(start, blocksize) {
			seen[ev.Frame]++
		}
	}

	for _, f := range frames {
		if seen[f] != 1 {
			t.Errorf("event at frame %d dispatched %d times, want 1", f, seen[f])
		}
	}

	if len(seen) != len(frames) {
		t.Errorf("dispatched %d distinct frames, want %d", len(seen), len(frames))
	}
}

func TestSequence_EndFrame(t *testing.T) {
	t.Parallel()

	if got := NewSequence(nil).EndFrame(); got != 0 {
		t.Errorf("empty sequence EndFrame() = %d, want 0", got)
	}

	seq := NewSequence([]Event{noteOn(0, 60), noteOn(600, 64)})
	if got := seq.EndFrame(); got != 601 {
		t.Errorf("EndFrame() = %d, want 601", got)
	}
}
