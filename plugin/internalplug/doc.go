// SPDX-License-Identifier: EPL-2.0

// Package internalplug provides builtin signal-processing units that load
// without any native binary: passthru, gain, hardclip (effects) and
// sinesynth (instrument).
//
// They are addressed in chain references with the internal: prefix, e.g.
//
//	plughost -plugin "internal:sinesynth,internal:gain" ...
//
// Gain and hardclip do not commute, so they double as a way to verify that
// chain order changes the rendered output.
package internalplug
