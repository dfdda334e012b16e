// SPDX-License-Identifier: EPL-2.0

package internalplug

import (
	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/midi"
	"github.com/ik5/plughost/plugin"
)

const defaultThreshold = 0.5

// Hardclip limits samples to [-threshold, threshold]. Together with Gain it
// forms a non-commuting pair, which makes chain ordering observable.
type Hardclip struct {
	threshold float32
}

func NewHardclip(threshold float32) *Hardclip {
	return &Hardclip{threshold: threshold}
}

func (h *Hardclip) Open() error { return nil }

func (h *Hardclip) Info() plugin.Info {
	return plugin.Info{
		Name:       NameHardclip,
		Vendor:     "plughost",
		ParamNames: []string{"threshold"},
	}
}

func (h *Hardclip) Role() plugin.Role { return plugin.RoleEffect }

func (h *Hardclip) ProcessAudio(in, out *audio.Buffer, frames int) {
	for ch := range in.Channels() {
		src := in.Channel(ch)
		dst := out.Channel(ch)

		for f := range frames {
			v := src[f]
			if v > h.threshold {
				v = h.threshold
			} else if v < -h.threshold {
				v = -h.threshold
			}

			dst[f] = v
		}
	}
}

func (h *Hardclip) ProcessEvents(events []midi.Event) {}

func (h *Hardclip) Close() error { return nil }
