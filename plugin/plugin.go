// SPDX-License-Identifier: EPL-2.0

package plugin

import (
	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/midi"
)

// Role classifies a plugin's position in the signal flow.
type Role int

const (
	// RoleEffect transforms audio it is fed.
	RoleEffect Role = iota
	// RoleInstrument generates audio from MIDI; only the chain's lead
	// instrument receives MIDI dispatch.
	RoleInstrument
)

func (r Role) String() string {
	switch r {
	case RoleInstrument:
		return "instrument"
	default:
		return "effect"
	}
}

// Info describes an opened plugin.
type Info struct {
	Name       string
	Vendor     string
	ParamNames []string
}

// Plugin is one stateful signal-processing unit. Open must succeed before
// any process call; process calls are never concurrent and internal state
// persists across blocks, so call order is semantically load-bearing.
type Plugin interface {
	// Open locates and instantiates the unit. Failures are reported,
	// never panicked, and are classified separately from stream I/O
	// errors (see ErrOpenFailed).
	Open() error
	// Info reports metadata for an opened plugin.
	Info() Info
	// Role reports whether the unit is an effect or an instrument.
	Role() Role
	// ProcessAudio consumes frames frames from in and leaves a fully
	// populated output block in out. Buffers have equal shape.
	ProcessAudio(in, out *audio.Buffer, frames int)
	// ProcessEvents hands the unit the ordered, possibly empty MIDI
	// events for the current block. Called only on instruments.
	ProcessEvents(events []midi.Event)
	// Close releases the unit's resources. Idempotent.
	Close() error
}
