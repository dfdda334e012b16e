// SPDX-License-Identifier: EPL-2.0

package audio

// Buffer is a fixed-capacity planar sample buffer: one float32 slice per
// channel, each holding up to Frames() samples. Every pipeline stage that
// needs scratch space owns its own Buffer; buffers are never shared between
// stages without an explicit copy.
type Buffer struct {
	data [][]float32
}

// NewBuffer allocates a buffer of channels x frames samples, zeroed.
func NewBuffer(channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frames)
	}

	return &Buffer{data: data}
}

// Channels returns the channel count.
func (b *Buffer) Channels() int { return len(b.data) }

// Frames returns the per-channel capacity in frames.
func (b *Buffer) Frames() int {
	if len(b.data) == 0 {
		return 0
	}

	return len(b.data[0])
}

// Channel returns the sample slice for channel ch.
func (b *Buffer) Channel(ch int) []float32 { return b.data[ch] }

// Clear zeroes every sample.
func (b *Buffer) Clear() {
	for ch := range b.data {
		samples := b.data[ch]
		for i := range samples {
			samples[i] = 0
		}
	}
}

// CopyFrom copies the first frames samples per channel from src.
// Channel counts must match; frames must not exceed either capacity.
func (b *Buffer) CopyFrom(src *Buffer, frames int) {
	for ch := range b.data {
		copy(b.data[ch][:frames], src.data[ch][:frames])
	}
}

// Deinterleave fills the buffer from interleaved samples
// (frame-major, channel-minor) and returns the frame count consumed.
func (b *Buffer) Deinterleave(interleaved []float32) int {
	channels := len(b.data)
	if channels == 0 {
		return 0
	}

	frames := len(interleaved) / channels
	if frames > b.Frames() {
		frames = b.Frames()
	}

	for f := range frames {
		base := f * channels
		for ch := range channels {
			b.data[ch][f] = interleaved[base+ch]
		}
	}

	return frames
}

// Interleave writes the first frames samples per channel into dst in
// frame-major order and returns the number of float32 values written.
func (b *Buffer) Interleave(dst []float32, frames int) int {
	channels := len(b.data)

	for f := range frames {
		base := f * channels
		for ch := range channels {
			dst[base+ch] = b.data[ch][f]
		}
	}

	return frames * channels
}
