// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Source is a block-oriented readable sample stream.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadBlock fills up to buf.Frames() frames and returns the count
	// actually filled. A return of 0 with io.EOF marks end-of-stream;
	// that is the nominal termination condition, not an error.
	ReadBlock(buf *Buffer) (int, error)
	// FramesProcessed reports the total frames read so far.
	FramesProcessed() uint64
	// Close releases any resources. Idempotent.
	Close() error
}

// Sink is a block-oriented writable sample stream.
type Sink interface {
	// WriteBlock writes exactly frames frames from buf. Write failures
	// (disk full, closed descriptor) are surfaced, never dropped.
	WriteBlock(buf *Buffer, frames int) error
	// FramesProcessed reports the total frames written so far.
	FramesProcessed() uint64
	// Close flushes pending writes and releases the resource. Idempotent.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (file extensions such as "wav", "mp3") to
// decoders.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	formats := make([]string, 0, len(r.codecs))
	for format := range r.codecs {
		formats = append(formats, format)
	}

	return formats
}
