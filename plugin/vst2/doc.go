// SPDX-License-Identifier: EPL-2.0

// Package vst2 hosts native VST 2.x plugins behind the plugin.Plugin
// contract.
//
// It uses pipelined.dev/audio/vst2 for the native ABI: library loading,
// instance dispatch, double-precision processing buffers and the host
// callback. The unit reports itself as an instrument when the plugin's
// category is synth, which drives the host's MIDI routing and input
// defaulting.
//
// Process calls zero-pad a partial final block to the configured blocksize;
// only the true frame count is copied back out.
package vst2
