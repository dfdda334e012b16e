// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 input decoding for the render host.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 streams
// into planar float32 blocks:
//
//	file, _ := os.Open("input.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := audio.NewBuffer(src.Channels(), 512)
//	n, err := src.ReadBlock(buf)
//
// Output is always stereo at the file's native sample rate; wrap the source
// in audio.NewChannelMapper / audio.NewResampler to match the host
// configuration. MP3 writing is not supported (decoding only).
package mp3
