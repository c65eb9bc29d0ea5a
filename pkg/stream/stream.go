// Package stream defines the seekable byte-stream abstraction consumed by the
// persistence layer, with in-memory and file-backed implementations.
package stream

import (
	"errors"
	"io"
)

// ErrClosed is returned by operations on a closed stream.
var ErrClosed = errors.New("stream is closed")

// ErrNegativePosition is returned when a seek would move before the start.
var ErrNegativePosition = errors.New("negative stream position")

// Stream is a seekable, readable and writable sequence of bytes.
type Stream interface {
	io.ReadWriteSeeker
	io.Closer

	// Len returns the current length of the stream in bytes.
	Len() (int64, error)

	// Position returns the offset of the next read or write.
	Position() (int64, error)
}
