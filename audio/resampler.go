// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/plughost/utils"
)

const stageFrames = 1024

// Resampler streams blocks from src converted to a target sample rate using
// cubic interpolation; preserves channel count. A simple one-pole low-pass
// is applied when downsampling to limit aliasing.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // srcRate / dstRate - source frames per output frame
	channels int

	// Sliding window of 4 frames for cubic interpolation:
	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window   [4][]float32
	hasFrame [4]bool

	// Fractional position between window[1] and window[2]
	pos    float64
	primed bool

	// Staging block read from the source
	stage    *Buffer
	stageLen int
	stagePos int
	eof      bool

	filterState []float32
	useFilter   bool
	filterAlpha float32

	frames uint64
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	// One-pole low-pass when downsampling; crude but keeps the worst
	// aliasing out of the band.
	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		filterAlpha = 0.5
	}

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		stage:       NewBuffer(channels, stageFrames),
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int         { return r.dstRate }
func (r *Resampler) Channels() int           { return r.channels }
func (r *Resampler) FramesProcessed() uint64 { return r.frames }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// nextSourceFrame copies one frame from the staging block into dst,
// refilling the staging block from the source when drained.
func (r *Resampler) nextSourceFrame(dst []float32) (bool, error) {
	if r.stagePos >= r.stageLen {
		if r.eof {
			return false, io.EOF
		}

		n, err := r.src.ReadBlock(r.stage)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if n == 0 {
			r.eof = true
			return false, io.EOF
		}

		r.stageLen = n
		r.stagePos = 0
	}

	for ch := range r.channels {
		dst[ch] = r.stage.Channel(ch)[r.stagePos]
	}
	r.stagePos++

	return true, nil
}

// shiftWindow advances the interpolation window by one source frame.
func (r *Resampler) shiftWindow() error {
	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.hasFrame[0] = r.hasFrame[1]
	r.hasFrame[1] = r.hasFrame[2]
	r.hasFrame[2] = r.hasFrame[3]

	ok, err := r.nextSourceFrame(r.window[3])
	if !ok {
		r.hasFrame[3] = false
		return err
	}

	r.hasFrame[3] = true
	r.applyFilter(r.window[3])

	return nil
}

func (r *Resampler) applyFilter(frame []float32) {
	if !r.useFilter {
		return
	}

	for ch := range r.channels {
		frame[ch] = r.filterAlpha*frame[ch] + (1-r.filterAlpha)*r.filterState[ch]
		r.filterState[ch] = frame[ch]
	}
}

func (r *Resampler) prime() error {
	for i := range 4 {
		ok, err := r.nextSourceFrame(r.window[i])
		if !ok {
			if err == io.EOF {
				if i == 0 {
					return io.EOF
				}

				// Duplicate the last valid frame into the remaining slots.
				for j := i; j < 4; j++ {
					copy(r.window[j], r.window[i-1])
					r.hasFrame[j] = true
				}

				break
			}

			return err
		}

		r.hasFrame[i] = true

		// Seed the filter with the first frame to avoid warm-up transients.
		if i == 0 && r.useFilter {
			copy(r.filterState, r.window[0])
		}
	}

	r.primed = true

	return nil
}

// ReadBlock produces frames at the target rate. Returns (0, io.EOF) once
// the source is exhausted.
func (r *Resampler) ReadBlock(buf *Buffer) (int, error) {
	if !r.primed {
		err := r.prime()
		if err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}

			return 0, err
		}
	}

	written := 0

	for written < buf.Frames() {
		exhausted := false

		for r.pos >= 1.0 {
			r.pos -= 1.0

			err := r.shiftWindow()
			if err == io.EOF {
				exhausted = true
				break
			} else if err != nil {
				r.frames += uint64(written)
				return written, err
			}
		}

		if exhausted || !r.hasFrame[1] || !r.hasFrame[2] {
			r.frames += uint64(written)
			if written == 0 {
				return 0, io.EOF
			}

			return written, io.EOF
		}

		alpha := float32(r.pos)

		for ch := range r.channels {
			y1 := r.window[1][ch]
			y2 := r.window[2][ch]

			y0 := y1
			if r.hasFrame[0] {
				y0 = r.window[0][ch]
			}

			y3 := y2
			if r.hasFrame[3] {
				y3 = r.window[3][ch]
			}

			buf.Channel(ch)[written] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	r.frames += uint64(written)

	return written, nil
}
