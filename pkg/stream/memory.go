package stream

import (
	"fmt"
	"io"
)

// Memory is a Stream backed by a growable byte slice.
// Writing past the end extends it; a gap left by seeking is zero-filled.
type Memory struct {
	buf    []byte
	pos    int64
	closed bool
}

// NewMemory returns a stream positioned at the start of a copy of data.
func NewMemory(data []byte) *Memory {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Memory{buf: buf}
}

func (m *Memory) Read(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *Memory) Write(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		if end > int64(cap(m.buf)) {
			grown := make([]byte, end, 2*end)
			copy(grown, m.buf)
			m.buf = grown
		} else {
			m.buf = m.buf[:end]
		}
	}
	n := copy(m.buf[m.pos:], p)
	m.pos += int64(n)
	return n, nil
}

func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = m.pos + offset
	case io.SeekEnd:
		next = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if next < 0 {
		return 0, ErrNegativePosition
	}
	m.pos = next
	return next, nil
}

// Close marks the stream closed. The contents remain available through Bytes.
func (m *Memory) Close() error {
	m.closed = true
	return nil
}

func (m *Memory) Len() (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return int64(len(m.buf)), nil
}

func (m *Memory) Position() (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return m.pos, nil
}

// Bytes returns a copy of the whole stream content.
func (m *Memory) Bytes() []byte {
	out := make([]byte, len(m.buf))
	copy(out, m.buf)
	return out
}
