// SPDX-License-Identifier: EPL-2.0

// Package plughost renders audio offline through a chain of plugins. It
// reads a sample source (wav, aiff, mp3 or ogg/vorbis), optionally drives
// an instrument from a standard MIDI file, runs every block through the
// chain in order and writes the result to a wav file. The same inputs
// always produce the same output: processing is single-threaded,
// block-sequential and free of wall-clock dependence in the signal path.
//
// The root package wires files to the engine: picking a decoder by file
// extension, adapting the input's channel count and sample rate to the run
// configuration, and loading MIDI files against the run's sample rate. The
// actual processing lives in the host package.
package plughost
