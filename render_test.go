// SPDX-License-Identifier: EPL-2.0

package plughost

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/host"
)

func TestDefaultRegistryFormats(t *testing.T) {
	t.Parallel()

	formats := DefaultRegistry().Formats()
	slices.Sort(formats)

	want := []string{"aif", "aiff", "mp3", "ogg", "wav"}
	if !slices.Equal(formats, want) {
		t.Errorf("Formats() = %v, expected %v", formats, want)
	}
}

func TestOpenInputUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := OpenInput("song.flac", host.DefaultSettings())
	if !errors.Is(err, host.ErrConfiguration) {
		t.Errorf("unsupported format error = %v, expected ErrConfiguration", err)
	}
}

func TestOpenInputMissingFile(t *testing.T) {
	t.Parallel()

	_, err := OpenInput(filepath.Join(t.TempDir(), "missing.wav"), host.DefaultSettings())
	if !errors.Is(err, host.ErrResourceOpen) {
		t.Errorf("missing file error = %v, expected ErrResourceOpen", err)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	t.Parallel()

	settings := host.Settings{SampleRate: 44100, Channels: 2, Blocksize: 128}
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")

	// Write a short constant-level input file.
	writeSink, err := OpenOutput(inPath, settings)
	if err != nil {
		t.Fatalf("OpenOutput: %v", err)
	}

	block := audio.NewBuffer(settings.Channels, settings.Blocksize)
	for ch := range block.Channels() {
		for i := range block.Channel(ch) {
			block.Channel(ch)[i] = 0.5
		}
	}

	for range 4 {
		if err := writeSink.WriteBlock(block, settings.Blocksize); err != nil {
			t.Fatalf("WriteBlock: %v", err)
		}
	}

	if err := writeSink.Close(); err != nil {
		t.Fatalf("closing input file: %v", err)
	}

	// Render it through the builtin gain plugin.
	input, err := OpenInput(inPath, settings)
	if err != nil {
		t.Fatalf("OpenInput: %v", err)
	}

	output, err := OpenOutput(outPath, settings)
	if err != nil {
		t.Fatalf("OpenOutput: %v", err)
	}

	chain, err := host.NewChainFromArg("internal:gain", settings)
	if err != nil {
		t.Fatalf("NewChainFromArg: %v", err)
	}

	engine := host.NewEngine(settings, input, output, nil, chain)

	report, err := engine.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.FramesWritten != 4*uint64(settings.Blocksize) {
		t.Fatalf("frames written = %d, expected %d", report.FramesWritten, 4*settings.Blocksize)
	}

	if err := input.Close(); err != nil {
		t.Errorf("closing input: %v", err)
	}

	if err := output.Close(); err != nil {
		t.Fatalf("closing output: %v", err)
	}

	// Read the rendered file back and check the gain was applied.
	rendered, err := OpenInput(outPath, settings)
	if err != nil {
		t.Fatalf("OpenInput on render: %v", err)
	}
	defer rendered.Close()

	buf := audio.NewBuffer(settings.Channels, settings.Blocksize)

	n, err := rendered.ReadBlock(buf)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}

	if n == 0 {
		t.Fatal("rendered file is empty")
	}

	// 0.5 input through the default 0.5 gain: about 0.25 after the 16-bit
	// round trip.
	got := buf.Channel(0)[0]
	if got < 0.24 || got > 0.26 {
		t.Errorf("rendered sample = %v, expected about 0.25", got)
	}
}
