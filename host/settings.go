// SPDX-License-Identifier: EPL-2.0

package host

import "fmt"

const (
	DefaultSampleRate = 44100.0
	DefaultChannels   = 2
	DefaultBlocksize  = 512
)

// Settings is the resolved run configuration, fixed before any source or
// plugin is opened.
type Settings struct {
	SampleRate float64
	Channels   int
	Blocksize  int
}

func DefaultSettings() Settings {
	return Settings{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Blocksize:  DefaultBlocksize,
	}
}

func (s Settings) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v must be positive", ErrConfiguration, s.SampleRate)
	}

	if s.Channels <= 0 {
		return fmt.Errorf("%w: channel count %d must be positive", ErrConfiguration, s.Channels)
	}

	if s.Blocksize <= 0 {
		return fmt.Errorf("%w: blocksize %d must be positive", ErrConfiguration, s.Blocksize)
	}

	return nil
}
