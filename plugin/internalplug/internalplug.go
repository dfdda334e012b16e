// SPDX-License-Identifier: EPL-2.0

package internalplug

import (
	"fmt"

	"github.com/ik5/plughost/plugin"
)

// Names of the builtin units, as used in chain references
// ("internal:passthru").
const (
	NamePassthru  = "passthru"
	NameGain      = "gain"
	NameHardclip  = "hardclip"
	NameSineSynth = "sinesynth"
)

// New constructs a builtin unit by name. sampleRate is needed by units that
// generate audio.
func New(name string, sampleRate float64) (plugin.Plugin, error) {
	switch name {
	case NamePassthru:
		return NewPassthru(), nil
	case NameGain:
		return NewGain(defaultGain), nil
	case NameHardclip:
		return NewHardclip(defaultThreshold), nil
	case NameSineSynth:
		return NewSineSynth(sampleRate), nil
	default:
		return nil, fmt.Errorf("%w: internal:%s", plugin.ErrUnknownReference, name)
	}
}

// Names lists the builtin unit names.
func Names() []string {
	return []string{NamePassthru, NameGain, NameHardclip, NameSineSynth}
}
