// SPDX-License-Identifier: EPL-2.0

package vst2

import (
	"bytes"
	"fmt"
	"unsafe"

	vst2sdk "pipelined.dev/audio/vst2"
	"pipelined.dev/signal"

	"github.com/ik5/plughost/audio"
	"github.com/ik5/plughost/midi"
	"github.com/ik5/plughost/plugin"
)

// effGetPlugCategory / kPlugCategSynth from the VST 2.x ABI.
const (
	opGetPlugCategory = 35
	categorySynth     = 2
)

// Unit hosts one native VST 2.x plugin instance. The native library is
// loaded on Open and released on Close; process calls bridge planar
// float32 blocks to the plugin's double-precision buffers.
type Unit struct {
	path       string
	sampleRate float64
	channels   int
	blocksize  int

	vst  *vst2sdk.VST
	plug *vst2sdk.Plugin
	role plugin.Role

	bufIn  vst2sdk.DoubleBuffer
	bufOut vst2sdk.DoubleBuffer
	sigIn  signal.Floating
	sigOut signal.Floating

	timeInfo *vst2sdk.TimeInfo
	frame    uint64
	opened   bool
}

// New prepares a VST 2.x unit for the binary at path. Nothing native is
// touched until Open.
func New(path string, sampleRate float64, channels, blocksize int) *Unit {
	return &Unit{
		path:       path,
		sampleRate: sampleRate,
		channels:   channels,
		blocksize:  blocksize,
	}
}

func (u *Unit) hostCallback(op vst2sdk.HostOpcode, index int32, value int64, ptr unsafe.Pointer, opt float32) int64 {
	switch op {
	case vst2sdk.HostGetSampleRate:
		return int64(u.sampleRate)
	case vst2sdk.HostGetBufferSize:
		return int64(u.blocksize)
	case vst2sdk.HostGetCurrentProcessLevel:
		// Offline processing level.
		return 4
	case vst2sdk.HostGetTime:
		return int64(uintptr(unsafe.Pointer(u.timeInfo)))
	case vst2sdk.HostGetVendorVersion:
		return 1
	default:
		return 0
	}
}

func (u *Unit) Open() error {
	vst, err := vst2sdk.Open(u.path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", plugin.ErrOpenFailed, u.path, err)
	}

	u.timeInfo = &vst2sdk.TimeInfo{
		SampleRate: u.sampleRate,
		Tempo:      120,
		Flags:      vst2sdk.TempoValid,
	}

	plug := vst.Plugin(u.hostCallback)
	if plug == nil {
		vst.Close()
		return fmt.Errorf("%w: %q: instantiation refused", plugin.ErrOpenFailed, u.path)
	}

	plug.SetSampleRate(signal.Frequency(int(u.sampleRate)))
	plug.SetBufferSize(u.blocksize)
	plug.Start()

	u.vst = vst
	u.plug = plug

	u.role = plugin.RoleEffect
	if plug.Dispatch(vst2sdk.PluginOpcode(opGetPlugCategory), 0, 0, nil, 0) == categorySynth {
		u.role = plugin.RoleInstrument
	}

	u.bufIn = vst2sdk.NewDoubleBuffer(u.channels, u.blocksize)
	u.bufOut = vst2sdk.NewDoubleBuffer(u.channels, u.blocksize)

	alloc := signal.Allocator{
		Channels: u.channels,
		Length:   u.blocksize,
		Capacity: u.blocksize,
	}
	u.sigIn = alloc.Float64()
	u.sigOut = alloc.Float64()

	u.opened = true

	return nil
}

func (u *Unit) Info() plugin.Info {
	info := plugin.Info{Name: u.path}
	if !u.opened {
		return info
	}

	info.Name = u.vst.Name

	params := u.plug.NumParams()
	info.ParamNames = make([]string, 0, params)

	for i := range params {
		info.ParamNames = append(info.ParamNames, u.plug.ParamName(i))
	}

	var buf [256]byte
	u.plug.Dispatch(vst2sdk.PlugGetVendorString, 0, 0, unsafe.Pointer(&buf[0]), 0)
	info.Vendor = string(bytes.TrimRight(buf[:], "\x00"))

	return info
}

func (u *Unit) Role() plugin.Role { return u.role }

func (u *Unit) ProcessAudio(in, out *audio.Buffer, frames int) {
	if !u.opened {
		return
	}

	for ch := range u.channels {
		src := in.Channel(ch)
		for f := range u.blocksize {
			v := float64(0)
			if f < frames {
				v = float64(src[f])
			}

			u.sigIn.SetSample(u.sigIn.BufferIndex(ch, f), v)
		}
	}

	u.bufIn.Write(u.sigIn)
	u.plug.ProcessDouble(u.bufIn, u.bufOut)
	u.bufOut.Read(u.sigOut)

	for ch := range u.channels {
		dst := out.Channel(ch)
		for f := range frames {
			dst[f] = float32(u.sigOut.Sample(u.sigOut.BufferIndex(ch, f)))
		}
	}

	u.frame += uint64(frames)
	u.timeInfo.SamplePos = float64(u.frame)
}

func (u *Unit) ProcessEvents(events []midi.Event) {
	if !u.opened || len(events) == 0 {
		return
	}

	midiEvents := make([]vst2sdk.Event, 0, len(events))

	for _, ev := range events {
		if len(ev.Data) == 0 || len(ev.Data) > 3 {
			// SysEx and empty messages are not delivered.
			continue
		}

		var data [3]byte
		copy(data[:], ev.Data)

		midiEvents = append(midiEvents, &vst2sdk.MIDIEvent{
			DeltaFrames: int32(ev.Frame - u.frame),
			Data:        data,
		})
	}

	if len(midiEvents) == 0 {
		return
	}

	ptr := vst2sdk.Events(midiEvents...)
	defer ptr.Free()

	u.plug.Dispatch(vst2sdk.PlugProcessEvents, 0, 0, unsafe.Pointer(ptr), 0)
}

func (u *Unit) Close() error {
	if !u.opened {
		return nil
	}
	u.opened = false

	u.plug.Suspend()

	u.bufIn.Free()
	u.bufOut.Free()

	u.plug.Close()
	u.vst.Close()

	return nil
}

var _ plugin.Plugin = (*Unit)(nil)
