// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV file reading and writing for the render host.
//
// It uses the github.com/go-audio library for robust WAV file handling.
// The Decoder adapts a WAV file to an audio.Source delivering planar
// float32 blocks; the Sink writes rendered blocks back out as 16-bit PCM.
//
// # Reading
//
//	file, _ := os.Open("input.wav")
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := audio.NewBuffer(src.Channels(), 512)
//	n, err := src.ReadBlock(buf)
//
// 8, 16, 24 and 32-bit PCM input is supported; samples are normalized to
// float32 in [-1.0, 1.0].
//
// # Writing
//
//	out, _ := os.Create("bounce.wav")
//	sink := wav.NewSink(out, 44100, 2)
//	sink.WriteBlock(buf, n)
//	sink.Close() // patches RIFF sizes; mandatory
//
// Output is always 16-bit PCM. The sink requires an io.WriteSeeker because
// go-audio rewrites the header on Close.
package wav
