// SPDX-License-Identifier: EPL-2.0

package host

import "time"

// TaskTimer attributes wall-clock time to a fixed set of task slots: one
// per chain position plus one reserved for the host itself. The slot count
// is fixed at construction.
//
// Starting a slot implicitly closes the previous slot's measurement window,
// so the block loop only ever calls Start as it moves between stages; every
// moment between the first Start and StopAll lands in exactly one slot.
type TaskTimer struct {
	totals  []time.Duration
	current int // -1 when no window is open
	started time.Time

	now func() time.Time
}

func NewTaskTimer(numTasks int) *TaskTimer {
	return &TaskTimer{
		totals:  make([]time.Duration, numTasks),
		current: -1,
		now:     time.Now,
	}
}

// NumTasks returns the fixed slot count.
func (t *TaskTimer) NumTasks() int { return len(t.totals) }

// Start closes the currently open window (if any), crediting its elapsed
// time, and opens a window against slot.
func (t *TaskTimer) Start(slot int) {
	now := t.now()

	if t.current >= 0 {
		t.totals[t.current] += now.Sub(t.started)
	}

	t.current = slot
	t.started = now
}

// StopAll closes the final open window. Idempotent.
func (t *TaskTimer) StopAll() {
	if t.current < 0 {
		return
	}

	t.totals[t.current] += t.now().Sub(t.started)
	t.current = -1
}

// Total returns the accumulated duration for slot.
func (t *TaskTimer) Total(slot int) time.Duration { return t.totals[slot] }

// Sum returns the accumulated duration across all slots.
func (t *TaskTimer) Sum() time.Duration {
	var sum time.Duration
	for _, d := range t.totals {
		sum += d
	}

	return sum
}
