// SPDX-License-Identifier: EPL-2.0

package host

import (
	"fmt"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/midi"
	"github.com/ik5/plughost/plugin"
)

// Chain is an ordered sequence of plugins forming the signal path. Audio
// flows strictly front to back: stage i's output buffer is stage i+1's
// input. Mixing and parallel fan-out are not supported.
type Chain struct {
	units []plugin.Plugin
	// outs[i] is owned by stage i and doubles as stage i+1's input.
	outs []*audio.Buffer
}

// NewChain builds a chain over units, allocating one output buffer per
// stage sized to the run settings.
func NewChain(units []plugin.Plugin, settings Settings) *Chain {
	outs := make([]*audio.Buffer, len(units))
	for i := range outs {
		outs[i] = audio.NewBuffer(settings.Channels, settings.Blocksize)
	}

	return &Chain{units: units, outs: outs}
}

// Len returns the number of chain positions.
func (c *Chain) Len() int { return len(c.units) }

// Units exposes the chain's plugins in signal-flow order for reporting.
func (c *Chain) Units() []plugin.Plugin { return c.units }

// LeadInstrument reports whether position 0 holds an instrument. MIDI is
// routed only there.
func (c *Chain) LeadInstrument() bool {
	return len(c.units) > 0 && c.units[0].Role() == plugin.RoleInstrument
}

// HasInstrument reports whether any position holds an instrument.
func (c *Chain) HasInstrument() bool {
	for _, u := range c.units {
		if u.Role() == plugin.RoleInstrument {
			return true
		}
	}

	return false
}

// Initialize opens every plugin in chain order. The first failure aborts,
// naming the plugin that refused.
func (c *Chain) Initialize() error {
	for i, u := range c.units {
		err := u.Open()
		if err != nil {
			return fmt.Errorf("%w: position %d: %v", ErrPluginChain, i, err)
		}
	}

	return nil
}

// DispatchEvents delivers the block's MIDI events to the lead instrument,
// bracketed against its timer slot. The event list may be empty; ordering
// is preserved. Chains without a lead instrument ignore dispatch.
func (c *Chain) DispatchEvents(events []midi.Event, timer *TaskTimer) {
	if !c.LeadInstrument() {
		return
	}

	timer.Start(0)
	c.units[0].ProcessEvents(events)
}

// ProcessAudio runs frames frames from in through every stage in order and
// returns the final stage's output buffer. Each plugin call is bracketed
// against that plugin's timer slot; the caller re-opens the host slot when
// it resumes its own work.
func (c *Chain) ProcessAudio(in *audio.Buffer, frames int, timer *TaskTimer) *audio.Buffer {
	current := in

	for i, u := range c.units {
		timer.Start(i)
		u.ProcessAudio(current, c.outs[i], frames)
		current = c.outs[i]
	}

	return current
}

// Close releases every plugin in chain order, best-effort: every plugin is
// attempted even when an earlier one errors, and the first error is
// returned afterwards.
func (c *Chain) Close() error {
	var firstErr error

	for i, u := range c.units {
		err := u.Close()
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing plugin at position %d: %w", i, err)
		}
	}

	return firstErr
}
