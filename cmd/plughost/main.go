// SPDX-License-Identifier: EPL-2.0

// Command plughost renders an audio or MIDI input through a plugin chain
// into a wav file, offline and deterministically.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/ik5/plughost"
	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/host"
	"github.com/ik5/plughost/midi"
	"github.com/ik5/plughost/plugin/internalplug"
)

const version = "0.1.0"

// Exit codes, chosen so scripts can tell configuration mistakes from
// plugin failures and I/O failures.
const (
	exitOK = iota
	exitInvalidArgument
	exitMissingResource
	exitPluginChain
	exitRuntimeIO
)

type options struct {
	input      string
	output     string
	midiFile   string
	plugins    string
	blocksize  int
	channels   int
	sampleRate float64

	verbose     bool
	quiet       bool
	showVersion bool
	listFormats bool
	displayInfo bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("plughost", flag.ContinueOnError)
	fs.StringVar(&opts.input, "input", "", "input audio file (wav, aiff, mp3, ogg)")
	fs.StringVar(&opts.output, "output", "out.wav", "output wav file")
	fs.StringVar(&opts.midiFile, "midi", "", "standard MIDI file driving the lead instrument")
	fs.StringVar(&opts.plugins, "plugin", "", "comma-separated plugin chain in signal-flow order")
	fs.IntVar(&opts.blocksize, "blocksize", host.DefaultBlocksize, "processing block size in frames")
	fs.IntVar(&opts.channels, "channels", host.DefaultChannels, "channel count")
	fs.Float64Var(&opts.sampleRate, "samplerate", host.DefaultSampleRate, "sample rate in Hz")
	fs.BoolVar(&opts.verbose, "verbose", false, "log per-block detail")
	fs.BoolVar(&opts.quiet, "quiet", false, "log errors only")
	fs.BoolVar(&opts.showVersion, "version", false, "print the version and exit")
	fs.BoolVar(&opts.listFormats, "list-formats", false, "list supported input formats and builtin plugins, then exit")
	fs.BoolVar(&opts.displayInfo, "display-info", false, "open the plugin chain, print plugin details, then exit")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}

	return opts, nil
}

func newLogger(opts *options) *slog.Logger {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}

	if opts.quiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func listFormats(reg *audio.Registry) {
	formats := reg.Formats()
	sort.Strings(formats)

	fmt.Printf("input formats: %s\n", strings.Join(formats, ", "))
	fmt.Println("output formats: wav")
	fmt.Printf("builtin plugins: internal:%s\n", strings.Join(internalplug.Names(), ", internal:"))
}

func displayInfo(chain *host.Chain) error {
	err := chain.Initialize()
	if err != nil {
		return err
	}

	for i, unit := range chain.Units() {
		info := unit.Info()
		fmt.Printf("%d: %s (%s) [%s]\n", i, info.Name, info.Vendor, unit.Role())

		for p, name := range info.ParamNames {
			fmt.Printf("   param %d: %s\n", p, name)
		}
	}

	return chain.Close()
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, host.ErrConfiguration), errors.Is(err, host.ErrResourceOpen):
		return exitMissingResource
	case errors.Is(err, host.ErrPluginChain):
		return exitPluginChain
	case errors.Is(err, host.ErrRuntimeIO):
		return exitRuntimeIO
	default:
		return exitInvalidArgument
	}
}

func run(opts *options, logger *slog.Logger) error {
	settings := host.Settings{
		SampleRate: opts.sampleRate,
		Channels:   opts.channels,
		Blocksize:  opts.blocksize,
	}

	err := settings.Validate()
	if err != nil {
		return err
	}

	chain, err := host.NewChainFromArg(opts.plugins, settings)
	if err != nil {
		return err
	}

	if opts.displayInfo {
		return displayInfo(chain)
	}

	// Refuse an empty chain before touching any file.
	if chain.Len() == 0 {
		return fmt.Errorf("%w: no plugins loaded", host.ErrConfiguration)
	}

	var input audio.Source
	if opts.input != "" {
		input, err = plughost.OpenInput(opts.input, settings)
		if err != nil {
			return err
		}
		defer input.Close()
	}

	var sequence *midi.Sequence
	if opts.midiFile != "" {
		sequence, err = plughost.LoadMIDI(opts.midiFile, settings)
		if err != nil {
			return err
		}

		logger.Debug("loaded MIDI file",
			slog.String("path", opts.midiFile),
			slog.Int("events", sequence.Len()),
			slog.Uint64("end_frame", sequence.EndFrame()))
	}

	output, err := plughost.OpenOutput(opts.output, settings)
	if err != nil {
		return err
	}

	logger.Info("starting render",
		slog.String("output", opts.output),
		slog.Float64("samplerate", settings.SampleRate),
		slog.Int("channels", settings.Channels),
		slog.Int("blocksize", settings.Blocksize))

	engine := host.NewEngine(settings, input, output, sequence, chain)

	report, runErr := engine.Run()

	closeErr := output.Close()

	if report != nil {
		logReport(logger, report)
	}

	if runErr != nil {
		return runErr
	}

	if closeErr != nil {
		return fmt.Errorf("%w: finalizing output: %v", host.ErrRuntimeIO, closeErr)
	}

	return nil
}

func logReport(logger *slog.Logger, report *host.Report) {
	for _, task := range report.Tasks {
		logger.Info("task time",
			slog.String("task", task.Name),
			slog.Duration("duration", task.Duration))
	}

	logger.Info("render finished",
		slog.Duration("total", report.TotalDuration),
		slog.Uint64("frames_read", report.FramesRead),
		slog.Uint64("frames_written", report.FramesWritten))

	if report.TeardownErr != nil {
		logger.Warn("plugin teardown failed", slog.Any("error", report.TeardownErr))
	}
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(exitInvalidArgument)
	}

	if opts.showVersion {
		fmt.Printf("plughost %s\n", version)
		os.Exit(exitOK)
	}

	if opts.listFormats {
		listFormats(plughost.DefaultRegistry())
		os.Exit(exitOK)
	}

	logger := newLogger(opts)

	err = run(opts, logger)
	if err != nil {
		logger.Error("render failed", slog.Any("error", err))
		os.Exit(exitCode(err))
	}
}
