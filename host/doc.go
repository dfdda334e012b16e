// SPDX-License-Identifier: EPL-2.0

// Package host runs a plugin chain over blocks of audio. It holds the
// pieces an offline render needs around the chain itself: the frame clock
// that timestamps MIDI delivery, the per-task timer behind the post-run
// report, run settings, and the Engine that ties a source, a chain and a
// sink into a single deterministic loop.
package host
