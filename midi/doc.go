// SPDX-License-Identifier: EPL-2.0

// Package midi holds the in-memory MIDI performance model: timestamped
// events and the frame-range query the render loop dispatches from.
//
// Sequences are bulk-loaded at startup (see formats/smf) and immutable
// afterwards; streaming MIDI input is not supported.
package midi
