// SPDX-License-Identifier: EPL-2.0

package plughost

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/formats/aiff"
	"github.com/ik5/plughost/formats/mp3"
	"github.com/ik5/plughost/formats/smf"
	"github.com/ik5/plughost/formats/vorbis"
	"github.com/ik5/plughost/formats/wav"
	"github.com/ik5/plughost/host"
	"github.com/ik5/plughost/midi"
)

// DefaultRegistry returns a decoder registry with every builtin format
// registered under its file extension.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

// fileSource ties a decoded source to the file backing it so a single
// Close releases both.
type fileSource struct {
	audio.Source
	file *os.File
}

func (f *fileSource) Close() error {
	err := f.Source.Close()

	ferr := f.file.Close()
	if err == nil {
		err = ferr
	}

	return err
}

// fileSink is the write-side counterpart of fileSource.
type fileSink struct {
	audio.Sink
	file *os.File
}

func (f *fileSink) Close() error {
	err := f.Sink.Close()

	ferr := f.file.Close()
	if err == nil {
		err = ferr
	}

	return err
}

// extKey lowercases path's extension and strips the dot.
func extKey(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// OpenInput opens path with the decoder matching its extension and adapts
// the stream to the run configuration: mono/stereo mapping first, then
// resampling to the configured rate. The returned source closes the
// underlying file.
func OpenInput(path string, settings host.Settings) (audio.Source, error) {
	return openInput(DefaultRegistry(), path, settings)
}

func openInput(reg *audio.Registry, path string, settings host.Settings) (audio.Source, error) {
	decoder, ok := reg.Get(extKey(path))
	if !ok {
		return nil, fmt.Errorf("%w: unsupported input format %q", host.ErrConfiguration, extKey(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", host.ErrResourceOpen, err)
	}

	src, err := decoder.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", host.ErrResourceOpen, path, err)
	}

	wrapped := audio.Source(&fileSource{Source: src, file: f})

	if wrapped.Channels() != settings.Channels {
		wrapped, err = audio.NewChannelMapper(wrapped, settings.Channels)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s: %v", host.ErrConfiguration, path, err)
		}
	}

	if wrapped.SampleRate() != int(settings.SampleRate) {
		wrapped = audio.NewResampler(wrapped, int(settings.SampleRate))
	}

	return wrapped, nil
}

// OpenOutput creates path as a 16-bit PCM wav file matching the run
// configuration. The returned sink finalizes the wav header and closes the
// file on Close.
func OpenOutput(path string, settings host.Settings) (audio.Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", host.ErrResourceOpen, err)
	}

	sink := wav.NewSink(f, int(settings.SampleRate), settings.Channels)

	return &fileSink{Sink: sink, file: f}, nil
}

// LoadMIDI reads a standard MIDI file and resolves its events to absolute
// frames at the run's sample rate.
func LoadMIDI(path string, settings host.Settings) (*midi.Sequence, error) {
	seq, err := smf.LoadFile(path, settings.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", host.ErrResourceOpen, path, err)
	}

	return seq, nil
}
