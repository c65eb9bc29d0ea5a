package urakawa

import (
	_ "embed"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aretw0/urakawa/pkg/core"
	"github.com/aretw0/urakawa/pkg/stream"
	"github.com/aretw0/urakawa/pkg/xuk"
)

//go:embed VERSION
var version string

// Version returns the library version.
func Version() string {
	return strings.TrimSpace(version)
}

// Encode writes pr to w as a XUK document.
func Encode(w io.Writer, pr *core.Project, opts ...xuk.Option) error {
	if pr == nil {
		return fmt.Errorf("%w: project", core.ErrNilArgument)
	}
	return xuk.WriteDocument(w, pr, opts...)
}

// Decode reads a XUK document into a new project.
func Decode(r io.Reader, opts ...xuk.Option) (*core.Project, error) {
	pr := core.NewProject()
	if err := xuk.ReadDocument(r, pr, opts...); err != nil {
		return nil, err
	}
	return pr, nil
}

// Marshal encodes pr into memory.
func Marshal(pr *core.Project, opts ...xuk.Option) ([]byte, error) {
	buf := stream.NewMemory(nil)
	if err := Encode(buf, pr, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a document held in memory.
func Unmarshal(data []byte, opts ...xuk.Option) (*core.Project, error) {
	return Decode(stream.NewMemory(data), opts...)
}

// FileURI returns the file URL of path, for use as a base URI.
func FileURI(path string) (*url.URL, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}, nil
}

// ReadFile decodes the document at path. Relative media references are
// resolved against the file's location unless opts set another base.
func ReadFile(path string, opts ...xuk.Option) (*core.Project, error) {
	base, err := FileURI(path)
	if err != nil {
		return nil, err
	}
	f, err := stream.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, append([]xuk.Option{xuk.WithBaseURI(base)}, opts...)...)
}

// WriteFile encodes pr to path, replacing the file. Media references below
// the file's directory are written relative to it.
func WriteFile(path string, pr *core.Project, opts ...xuk.Option) (err error) {
	base, err := FileURI(path)
	if err != nil {
		return err
	}
	f, err := stream.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, pr, append([]xuk.Option{xuk.WithBaseURI(base)}, opts...)...)
}
