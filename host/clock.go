// SPDX-License-Identifier: EPL-2.0

package host

// AudioClock is the pipeline's monotonic frame counter: the absolute sample
// position of the next block to be processed. One clock exists per run and
// is owned by the engine; it advances only after a full block completes.
// Single-writer by design, no locking.
type AudioClock struct {
	frame   uint64
	stopped bool
}

func NewAudioClock() *AudioClock { return &AudioClock{} }

// CurrentFrame returns the absolute sample index of the next block.
func (c *AudioClock) CurrentFrame() uint64 { return c.frame }

// Advance moves the clock forward by n frames. No-op once stopped.
func (c *AudioClock) Advance(n int) {
	if c.stopped {
		return
	}

	c.frame += uint64(n)
}

// Stop freezes the clock. Idempotent.
func (c *AudioClock) Stop() { c.stopped = true }

// Stopped reports whether the clock has been frozen.
func (c *AudioClock) Stopped() bool { return c.stopped }
