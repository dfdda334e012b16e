// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF input decoding for the render host.
//
// This package uses github.com/go-audio/aiff to decode 16-bit PCM AIFF
// files into planar float32 blocks:
//
//	file, _ := os.Open("input.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//
// Encoding is not supported; only 16-bit PCM input is accepted.
package aiff
