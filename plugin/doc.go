// SPDX-License-Identifier: EPL-2.0

// Package plugin defines the capability contract for signal-processing
// units hosted in a chain: open, process audio, take MIDI, close.
//
// Implementations live in subpackages: vst2 hosts native VST 2.x binaries,
// internalplug provides builtin units (passthru, gain, hardclip, sinesynth)
// that need no native code. The host package routes blocks and MIDI through
// any mix of them.
package plugin
