// SPDX-License-Identifier: EPL-2.0

package host

import (
	"fmt"
	"io"
	"time"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/midi"
)

// TaskReport is one slot's share of the run's wall-clock time.
type TaskReport struct {
	Name     string
	Duration time.Duration
}

// Report summarizes a completed run.
type Report struct {
	// Tasks holds one entry per chain position plus the trailing host
	// entry; their durations sum to TotalDuration.
	Tasks         []TaskReport
	TotalDuration time.Duration
	FramesRead    uint64
	FramesWritten uint64
	// TeardownErr records a plugin close failure. Teardown failures are
	// reported but do not mask an otherwise successful run.
	TeardownErr error
}

// Engine drives the block loop: read input, dispatch the block's MIDI
// window, run the chain, write output, advance the clock. Execution is
// single-threaded and synchronous; plugins hold mutable state, so
// sequencing is a correctness requirement.
type Engine struct {
	settings Settings
	input    audio.Source
	output   audio.Sink
	sequence *midi.Sequence
	chain    *Chain

	clock *AudioClock
	timer *TaskTimer
}

// NewEngine assembles a run. input may be nil when the chain's lead plugin
// is an instrument; a silence source is substituted during validation.
// sequence may be nil for pure audio-through-effects runs.
func NewEngine(settings Settings, input audio.Source, output audio.Sink, sequence *midi.Sequence, chain *Chain) *Engine {
	return &Engine{
		settings: settings,
		input:    input,
		output:   output,
		sequence: sequence,
		chain:    chain,
		clock:    NewAudioClock(),
	}
}

// Clock exposes the engine's frame clock.
func (e *Engine) Clock() *AudioClock { return e.clock }

// validate enforces the configuration contract before any block is
// processed. All failures here wrap ErrConfiguration: no partial runs.
func (e *Engine) validate() error {
	err := e.settings.Validate()
	if err != nil {
		return err
	}

	if e.chain == nil || e.chain.Len() == 0 {
		return fmt.Errorf("%w: no plugins loaded", ErrConfiguration)
	}

	if e.output == nil {
		return fmt.Errorf("%w: no output source", ErrConfiguration)
	}

	if e.input == nil {
		// An instrument at the head can render from silence, but then
		// a MIDI source is mandatory; otherwise nothing would happen.
		if !e.chain.LeadInstrument() {
			return fmt.Errorf("%w: no input source", ErrConfiguration)
		}

		if e.sequence == nil {
			return fmt.Errorf("%w: plugin chain contains an instrument, but no MIDI source was supplied", ErrConfiguration)
		}

		e.input = audio.NewSilenceSource(int(e.settings.SampleRate), e.settings.Channels)
	}

	if e.sequence != nil && !e.chain.HasInstrument() {
		return fmt.Errorf("%w: MIDI source supplied but no plugin in the chain is an instrument", ErrConfiguration)
	}

	return nil
}

// Run executes the render to completion and reports the outcome. The block
// at which a mid-run I/O failure occurs is lost; frames already written
// stay on disk.
func (e *Engine) Run() (*Report, error) {
	err := e.validate()
	if err != nil {
		return nil, err
	}

	err = e.chain.Initialize()
	if err != nil {
		return nil, err
	}

	hostSlot := e.chain.Len()
	e.timer = NewTaskTimer(hostSlot + 1)

	inBuf := audio.NewBuffer(e.settings.Channels, e.settings.Blocksize)
	blocksize := e.settings.Blocksize

	var runErr error

	finished := false
	for !finished {
		e.timer.Start(hostSlot)

		n, err := e.input.ReadBlock(inBuf)
		if err != nil && err != io.EOF {
			runErr = fmt.Errorf("%w: reading input: %v", ErrRuntimeIO, err)
			break
		}

		// Fewer frames than a full block is the end of the input.
		if n < blocksize {
			finished = true
		}

		if e.sequence != nil {
			start := e.clock.CurrentFrame()
			events := e.sequence.EventsForRange(start, blocksize)

			// The MIDI sequence overrides the input's end-of-stream:
			// the run lasts until the last event's block, with the
			// input padded out to full blocks of silence.
			finished = start+uint64(blocksize) >= e.sequence.EndFrame()

			if n < blocksize {
				zeroTail(inBuf, n)
				n = blocksize
			}

			e.chain.DispatchEvents(events, e.timer)
			e.timer.Start(hostSlot)
		}

		if n > 0 {
			out := e.chain.ProcessAudio(inBuf, n, e.timer)
			e.timer.Start(hostSlot)

			err = e.output.WriteBlock(out, n)
			if err != nil {
				runErr = fmt.Errorf("%w: writing output: %v", ErrRuntimeIO, err)
				break
			}
		}

		e.clock.Advance(blocksize)
	}

	e.clock.Stop()
	e.timer.StopAll()

	report := e.buildReport()

	report.TeardownErr = e.chain.Close()

	if runErr != nil {
		return report, runErr
	}

	return report, nil
}

func zeroTail(buf *audio.Buffer, from int) {
	for ch := range buf.Channels() {
		data := buf.Channel(ch)
		for i := from; i < len(data); i++ {
			data[i] = 0
		}
	}
}

func (e *Engine) buildReport() *Report {
	report := &Report{
		TotalDuration: e.timer.Sum(),
		FramesRead:    e.input.FramesProcessed(),
		FramesWritten: e.output.FramesProcessed(),
	}

	for i, u := range e.chain.Units() {
		report.Tasks = append(report.Tasks, TaskReport{
			Name:     u.Info().Name,
			Duration: e.timer.Total(i),
		})
	}

	report.Tasks = append(report.Tasks, TaskReport{
		Name:     "plughost",
		Duration: e.timer.Total(e.chain.Len()),
	})

	return report
}
