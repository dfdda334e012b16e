// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis input decoding for the render host.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Vorbis
// streams into planar float32 blocks:
//
//	file, _ := os.Open("input.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//
// The channel count and sample rate come from the stream; wrap the source
// in audio.NewChannelMapper / audio.NewResampler to match the host
// configuration. Encoding is not supported.
package vorbis
