// SPDX-License-Identifier: EPL-2.0

package internalplug

import (
	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/midi"
	"github.com/ik5/plughost/plugin"
)

const defaultGain = 0.5

// Gain scales every sample by a fixed factor.
type Gain struct {
	factor float32
}

func NewGain(factor float32) *Gain {
	return &Gain{factor: factor}
}

func (g *Gain) Open() error { return nil }

func (g *Gain) Info() plugin.Info {
	return plugin.Info{
		Name:       NameGain,
		Vendor:     "plughost",
		ParamNames: []string{"factor"},
	}
}

func (g *Gain) Role() plugin.Role { return plugin.RoleEffect }

func (g *Gain) ProcessAudio(in, out *audio.Buffer, frames int) {
	for ch := range in.Channels() {
		src := in.Channel(ch)
		dst := out.Channel(ch)

		for f := range frames {
			dst[f] = src[f] * g.factor
		}
	}
}

func (g *Gain) ProcessEvents(events []midi.Event) {}

func (g *Gain) Close() error { return nil }
