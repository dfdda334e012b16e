// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper adapts a Source's channel count to the host configuration.
// Multi-channel input is down-mixed to mono by averaging; mono input is
// duplicated across the requested channels. Equal counts pass through.
type ChannelMapper struct {
	src      Source
	channels int
	tmp      *Buffer
}

// NewChannelMapper wraps src so it reads as channels channels.
// Returns the source unchanged when no mapping is needed.
func NewChannelMapper(src Source, channels int) (Source, error) {
	if src.Channels() == channels {
		return src, nil
	}

	if src.Channels() != 1 && channels != 1 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrChannelMapUnsupported, src.Channels(), channels)
	}

	return &ChannelMapper{src: src, channels: channels}, nil
}

func (m *ChannelMapper) SampleRate() int         { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int           { return m.channels }
func (m *ChannelMapper) FramesProcessed() uint64 { return m.src.FramesProcessed() }

func (m *ChannelMapper) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMapper) ReadBlock(buf *Buffer) (int, error) {
	if m.tmp == nil || m.tmp.Frames() < buf.Frames() {
		m.tmp = NewBuffer(m.src.Channels(), buf.Frames())
	}

	frames, err := m.src.ReadBlock(m.tmp)
	if frames == 0 {
		return 0, err
	}

	if m.channels == 1 {
		// Down-mix by averaging all source channels.
		srcChannels := m.src.Channels()
		inv := float32(1.0) / float32(srcChannels)
		out := buf.Channel(0)

		for f := range frames {
			sum := float32(0)
			for ch := range srcChannels {
				sum += m.tmp.Channel(ch)[f]
			}

			out[f] = sum * inv
		}
	} else {
		// Mono up-mix: duplicate the single source channel.
		in := m.tmp.Channel(0)
		for ch := range m.channels {
			copy(buf.Channel(ch)[:frames], in[:frames])
		}
	}

	return frames, err
}
