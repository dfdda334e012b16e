// SPDX-License-Identifier: EPL-2.0

// Package audio defines the block-oriented sample stream abstractions used
// by the render pipeline.
//
// A Source delivers planar float32 blocks ([-1, 1] range) through ReadBlock;
// a Sink accepts them through WriteBlock. Format decoders (see the formats
// subpackages) adapt on-disk audio files to Source; the SilenceSource
// variant generates zero blocks forever and backs instrument-only runs.
//
// Two stream adapters reconcile a file's properties with the host
// configuration:
//
//	// 48kHz stereo file, host configured for 44.1kHz mono
//	src, _ := wav.Decoder{}.Decode(file)
//	src = audio.NewResampler(src, 44100)
//	src, _ = audio.NewChannelMapper(src, 1)
//
// ReadBlock returning 0 with io.EOF is the nominal end-of-stream signal,
// not an error; callers use it to terminate their block loop.
package audio
