// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/ik5/plughost/audio"
)

// mockMp3Reader serves canned 16-bit PCM bytes in deliberately short reads
// to exercise the refill loop.
type mockMp3Reader struct {
	data     []byte
	pos      int
	readSize int
}

func (m *mockMp3Reader) SampleRate() int { return 44100 }

func (m *mockMp3Reader) Read(p []byte) (int, error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}

	limit := len(p)
	if m.readSize > 0 && m.readSize < limit {
		limit = m.readSize
	}

	n := copy(p[:limit], m.data[m.pos:])
	m.pos += n

	return n, nil
}

func pcmBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}

	return buf
}

func TestSource_ReadBlock_ShortReads(t *testing.T) {
	t.Parallel()

	// 4 stereo frames, delivered 3 bytes at a time.
	samples := []int16{
		16384, -16384,
		16384, -16384,
		16384, -16384,
		16384, -16384,
	}
	mock := &mockMp3Reader{data: pcmBytes(samples), readSize: 3}
	src := &source{dec: mock, sampleRate: 44100, channels: 2}

	buf := audio.NewBuffer(2, 4)

	n, err := src.ReadBlock(buf)
	if err != nil {
		t.Fatalf("ReadBlock() error: %v", err)
	}

	if n != 4 {
		t.Fatalf("ReadBlock() = %d frames, want 4", n)
	}

	for f := range 4 {
		if got := buf.Channel(0)[f]; got != 0.5 {
			t.Errorf("left frame %d = %v, want 0.5", f, got)
		}

		if got := buf.Channel(1)[f]; got != -0.5 {
			t.Errorf("right frame %d = %v, want -0.5", f, got)
		}
	}
}

func TestSource_EndOfStream(t *testing.T) {
	t.Parallel()

	// 3 stereo frames, block size 2: expect 2, then 1+EOF or 1 then EOF.
	mock := &mockMp3Reader{data: pcmBytes(make([]int16, 6))}
	src := &source{dec: mock, sampleRate: 44100, channels: 2}

	buf := audio.NewBuffer(2, 2)

	n, err := src.ReadBlock(buf)
	if n != 2 || err != nil {
		t.Fatalf("first ReadBlock() = (%d, %v), want (2, nil)", n, err)
	}

	n, err = src.ReadBlock(buf)
	if n != 1 || err != io.EOF {
		t.Fatalf("second ReadBlock() = (%d, %v), want (1, EOF)", n, err)
	}

	if src.FramesProcessed() != 3 {
		t.Errorf("FramesProcessed() = %d, want 3", src.FramesProcessed())
	}
}

func TestDecode_NotMp3(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not an mp3 stream")))
	if err == nil {
		t.Error("Decode() accepted garbage input")
	}
}
