package stream

import (
	"fmt"
	"io"
	"os"
)

// File is a Stream backed by an operating system file.
type File struct {
	f        *os.File
	writable bool
}

// OpenFile opens path for reading.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stream %s: %w", path, err)
	}
	return &File{f: f}, nil
}

// CreateFile creates or truncates path for reading and writing.
func CreateFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create stream %s: %w", path, err)
	}
	return &File{f: f, writable: true}, nil
}

// Name returns the path of the underlying file.
func (s *File) Name() string {
	return s.f.Name()
}

func (s *File) Read(p []byte) (int, error) {
	return s.f.Read(p)
}

func (s *File) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

func (s *File) Seek(offset int64, whence int) (int64, error) {
	return s.f.Seek(offset, whence)
}

// Close syncs written data to disk and closes the file.
func (s *File) Close() error {
	if s.writable {
		if err := s.f.Sync(); err != nil {
			_ = s.f.Close()
			return fmt.Errorf("sync stream: %w", err)
		}
	}
	return s.f.Close()
}

func (s *File) Len() (int64, error) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *File) Position() (int64, error) {
	return s.f.Seek(0, io.SeekCurrent)
}
