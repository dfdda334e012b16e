// SPDX-License-Identifier: EPL-2.0

package host

import (
	"fmt"
	"strings"

	"github.com/ik5/plughost/plugin"
	"github.com/ik5/plughost/plugin/internalplug"
	"github.com/ik5/plughost/plugin/vst2"
)

// internalPrefix marks chain references resolved to builtin units instead
// of native binaries.
const internalPrefix = "internal:"

// NewChainFromArg builds a chain from a comma-separated reference list in
// signal-flow order, e.g. "internal:sinesynth,internal:gain" or
// "/path/to/synth.so,/path/to/comp.so". References with the internal:
// prefix name builtin units; everything else is treated as a VST 2.x
// binary path. Nothing is opened here; Initialize does that.
func NewChainFromArg(arg string, settings Settings) (*Chain, error) {
	var units []plugin.Plugin

	for _, ref := range strings.Split(arg, ",") {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}

		if name, ok := strings.CutPrefix(ref, internalPrefix); ok {
			unit, err := internalplug.New(name, settings.SampleRate)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPluginChain, err)
			}

			units = append(units, unit)

			continue
		}

		units = append(units, vst2.New(ref, settings.SampleRate, settings.Channels, settings.Blocksize))
	}

	return NewChain(units, settings), nil
}
