// SPDX-License-Identifier: EPL-2.0

package host

import (
	"errors"
	"strings"
	"testing"

	"github.com/ik5/plughost/internal/audiotest"
	"github.com/ik5/plughost/midi"
	"github.com/ik5/plughost/plugin"
)

func passthruChain(settings Settings, names ...string) (*Chain, []*audiotest.Plugin) {
	mocks := make([]*audiotest.Plugin, len(names))
	units := make([]plugin.Plugin, len(names))

	for i, name := range names {
		mocks[i] = &audiotest.Plugin{Name: name}
		units[i] = mocks[i]
	}

	return NewChain(units, settings), mocks
}

func TestEngineEmptyChainAbortsBeforeIO(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	source := audiotest.NewSource(44100, 1, 1000, audiotest.Silent)
	sink := &audiotest.Sink{}
	chain, _ := passthruChain(settings)

	engine := NewEngine(settings, source, sink, nil, chain)

	_, err := engine.Run()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Run error = %v, expected ErrConfiguration", err)
	}

	if len(source.ReadSizes) != 0 {
		t.Error("input read before configuration validation failed")
	}

	if len(sink.Blocks) != 0 {
		t.Error("output written before configuration validation failed")
	}
}

func TestEngineInstrumentWithoutMIDI(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	synth := &audiotest.Plugin{Name: "synth", Kind: plugin.RoleInstrument}
	chain := NewChain([]plugin.Plugin{synth}, settings)

	engine := NewEngine(settings, nil, &audiotest.Sink{}, nil, chain)

	_, err := engine.Run()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Run error = %v, expected ErrConfiguration", err)
	}

	if !strings.Contains(err.Error(), "MIDI") {
		t.Errorf("error %q does not point at the missing MIDI source", err)
	}
}

func TestEngineNoInputNoInstrument(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	chain, _ := passthruChain(settings, "effect")

	engine := NewEngine(settings, nil, &audiotest.Sink{}, nil, chain)

	_, err := engine.Run()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Run error = %v, expected ErrConfiguration", err)
	}
}

func TestEngineMIDIWithoutInstrument(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	source := audiotest.NewSource(44100, 1, 1000, audiotest.Silent)
	chain, _ := passthruChain(settings, "effect")
	sequence := midi.NewSequence([]midi.Event{{Frame: 0, Data: []byte{0x90, 60, 100}}})

	engine := NewEngine(settings, source, &audiotest.Sink{}, sequence, chain)

	_, err := engine.Run()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Run error = %v, expected ErrConfiguration", err)
	}
}

func TestEnginePartialFinalBlock(t *testing.T) {
	t.Parallel()

	settings := Settings{SampleRate: 44100, Channels: 1, Blocksize: 256}
	source := audiotest.NewSource(44100, 1, 1000, audiotest.Constant(0.25))
	sink := &audiotest.Sink{}
	chain, mocks := passthruChain(settings, "effect")

	engine := NewEngine(settings, source, sink, nil, chain)

	report, err := engine.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 1000 frames at blocksize 256: three full blocks and a 232-frame tail.
	want := []int{256, 256, 256, 232}

	if len(sink.Blocks) != len(want) {
		t.Fatalf("sink got %d blocks %v, expected %v", len(sink.Blocks), sink.Blocks, want)
	}

	for i, n := range want {
		if sink.Blocks[i] != n {
			t.Errorf("block %d carried %d frames, expected %d", i, sink.Blocks[i], n)
		}
	}

	if report.FramesRead != 1000 || report.FramesWritten != 1000 {
		t.Errorf("frames read/written = %d/%d, expected 1000/1000", report.FramesRead, report.FramesWritten)
	}

	// The plugin sees the same partial tail the sink does.
	if got := mocks[0].Processed; len(got) != 4 || got[3] != 232 {
		t.Errorf("plugin processed blocks %v, expected a 232-frame tail", got)
	}

	if !engine.Clock().Stopped() {
		t.Error("clock not stopped after run")
	}
}

func TestEngineMIDIWindowPerBlock(t *testing.T) {
	t.Parallel()

	settings := Settings{SampleRate: 44100, Channels: 1, Blocksize: 256}
	synth := &audiotest.Plugin{Name: "synth", Kind: plugin.RoleInstrument}
	chain := NewChain([]plugin.Plugin{synth}, settings)

	events := []midi.Event{
		{Frame: 0, Data: []byte{0x90, 60, 100}},
		{Frame: 300, Data: []byte{0x90, 64, 100}},
		{Frame: 600, Data: []byte{0x80, 60, 0}},
	}
	sequence := midi.NewSequence(events)

	sink := &audiotest.Sink{}
	engine := NewEngine(settings, nil, sink, sequence, chain)

	report, err := engine.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Frames 0, 300 and 600 land in blocks [0,256), [256,512) and
	// [512,768): one event per block, in order.
	if len(synth.Events) != 3 {
		t.Fatalf("instrument got %d events, expected 3", len(synth.Events))
	}

	for i, ev := range synth.Events {
		if ev.Frame != events[i].Frame {
			t.Errorf("event %d at frame %d, expected %d", i, ev.Frame, events[i].Frame)
		}
	}

	// The silence-backed run lasts exactly the three blocks the sequence
	// spans.
	if len(sink.Blocks) != 3 {
		t.Errorf("sink got %d blocks, expected 3", len(sink.Blocks))
	}

	if report.FramesWritten != 768 {
		t.Errorf("frames written = %d, expected 768", report.FramesWritten)
	}
}

func TestEngineSequenceOutlivesInput(t *testing.T) {
	t.Parallel()

	settings := Settings{SampleRate: 44100, Channels: 1, Blocksize: 256}
	synth := &audiotest.Plugin{Name: "synth", Kind: plugin.RoleInstrument}
	chain := NewChain([]plugin.Plugin{synth}, settings)

	// Input dries up after one block, but the sequence reaches frame 600:
	// the sequence decides when the run is over.
	source := audiotest.NewSource(44100, 1, 256, audiotest.Silent)
	sequence := midi.NewSequence([]midi.Event{
		{Frame: 0, Data: []byte{0x90, 60, 100}},
		{Frame: 600, Data: []byte{0x80, 60, 0}},
	})

	sink := &audiotest.Sink{}
	engine := NewEngine(settings, source, sink, sequence, chain)

	_, err := engine.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(sink.Blocks) != 3 {
		t.Errorf("sink got %d blocks, expected 3", len(sink.Blocks))
	}
}

func TestEngineDeterministic(t *testing.T) {
	t.Parallel()

	run := func() []float32 {
		settings := Settings{SampleRate: 44100, Channels: 2, Blocksize: 64}
		source := audiotest.NewSource(44100, 2, 500, audiotest.Sine(440, 44100))
		sink := &audiotest.Sink{}
		chain, _ := passthruChain(settings, "a", "b")

		engine := NewEngine(settings, source, sink, nil, chain)

		_, err := engine.Run()
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		return sink.Samples
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("runs produced %d and %d samples", len(first), len(second))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestEngineWriteFailure(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	source := audiotest.NewSource(44100, 1, 1000, audiotest.Silent)
	sink := &audiotest.Sink{WriteErr: errors.New("disk full")}
	chain, mocks := passthruChain(settings, "effect")

	engine := NewEngine(settings, source, sink, nil, chain)

	report, err := engine.Run()
	if !errors.Is(err, ErrRuntimeIO) {
		t.Fatalf("Run error = %v, expected ErrRuntimeIO", err)
	}

	if report == nil {
		t.Fatal("no report returned for a failed run")
	}

	if !mocks[0].ClosedCalled {
		t.Error("plugin not closed after a failed run")
	}
}

func TestEngineTeardownErrorDoesNotFailRun(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	source := audiotest.NewSource(44100, 1, 16, audiotest.Silent)
	stuck := &audiotest.Plugin{Name: "stuck", CloseErr: errors.New("refused")}
	chain := NewChain([]plugin.Plugin{stuck}, settings)

	engine := NewEngine(settings, source, &audiotest.Sink{}, nil, chain)

	report, err := engine.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.TeardownErr == nil {
		t.Error("teardown error not recorded in report")
	}
}

func TestEngineReportTasks(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	source := audiotest.NewSource(44100, 1, 64, audiotest.Silent)
	chain, _ := passthruChain(settings, "alpha", "beta")

	engine := NewEngine(settings, source, &audiotest.Sink{}, nil, chain)

	report, err := engine.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	names := make([]string, len(report.Tasks))
	for i, task := range report.Tasks {
		names[i] = task.Name
	}

	want := []string{"alpha", "beta", "plughost"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("task %d named %q, expected %q", i, names[i], name)
		}
	}

	var sum int64
	for _, task := range report.Tasks {
		sum += int64(task.Duration)
	}

	if int64(report.TotalDuration) != sum {
		t.Errorf("TotalDuration %v != task sum %v", report.TotalDuration, sum)
	}
}
