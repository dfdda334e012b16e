// SPDX-License-Identifier: EPL-2.0

package internalplug

import (
	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/midi"
	"github.com/ik5/plughost/plugin"
)

// Passthru copies input to output unchanged. Useful as a structural
// placeholder and for exercising the chain without altering audio.
type Passthru struct {
	open bool
}

func NewPassthru() *Passthru { return &Passthru{} }

func (p *Passthru) Open() error {
	p.open = true
	return nil
}

func (p *Passthru) Info() plugin.Info {
	return plugin.Info{Name: NamePassthru, Vendor: "plughost"}
}

func (p *Passthru) Role() plugin.Role { return plugin.RoleEffect }

func (p *Passthru) ProcessAudio(in, out *audio.Buffer, frames int) {
	out.CopyFrom(in, frames)
}

func (p *Passthru) ProcessEvents(events []midi.Event) {}

func (p *Passthru) Close() error {
	p.open = false
	return nil
}
