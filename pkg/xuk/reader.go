package xuk

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
)

var errNilAble = errors.New("nil object")

func fmtMismatch(want QName, got xml.Name) error {
	return fmt.Errorf("expected element %s, found %s", want, QNameOf(got))
}

// Reader is a cursor over a XUK token stream.
type Reader struct {
	dec   *xml.Decoder
	opts  options
	depth int
}

// NewReader returns a Reader consuming src.
func NewReader(src io.Reader, opts ...Option) *Reader {
	dec := xml.NewDecoder(src)
	dec.Strict = true
	return &Reader{dec: dec, opts: buildOptions(opts)}
}

// BaseURI returns the URI relative references are resolved against, or nil.
func (r *Reader) BaseURI() *url.URL {
	return r.opts.baseURI
}

// Strict reports whether unknown elements are errors.
func (r *Reader) Strict() bool {
	return r.opts.strict
}

// Logger returns the reader's logger.
func (r *Reader) Logger() *slog.Logger {
	return r.opts.logger
}

// Depth returns the number of currently open elements.
func (r *Reader) Depth() int {
	return r.depth
}

func (r *Reader) checkCancel() error {
	if cancelled(r.opts.progress) {
		return fmt.Errorf("%w: %w", ErrDeserializationFailed, ErrProgressCancelled)
	}
	return nil
}

func (r *Reader) token() (xml.Token, error) {
	tok, err := r.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: unexpected end of input at depth %d", ErrDeserializationFailed, r.depth)
		}
		return nil, readError(err)
	}
	switch tok.(type) {
	case xml.StartElement:
		r.depth++
	case xml.EndElement:
		r.depth--
	}
	return tok, nil
}

// NextStart advances to the next start tag, skipping prolog, comments and
// whitespace. It fails if an end tag or non-blank text comes first.
func (r *Reader) NextStart() (xml.StartElement, error) {
	for {
		tok, err := r.token()
		if err != nil {
			return xml.StartElement{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t.Copy(), nil
		case xml.EndElement:
			return xml.StartElement{}, fmt.Errorf("%w: unexpected end tag %s", ErrDeserializationFailed, t.Name.Local)
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return xml.StartElement{}, fmt.Errorf("%w: unexpected text outside of an element", ErrDeserializationFailed)
			}
		}
	}
}

// Children iterates over the child elements of the element opened by start,
// calling fn for each one. fn must consume the child entirely. On return the
// end tag of start has been consumed.
func (r *Reader) Children(start xml.StartElement, fn func(child xml.StartElement) error) error {
	level := r.depth
	for {
		tok, err := r.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := r.checkCancel(); err != nil {
				return err
			}
			if err := fn(t.Copy()); err != nil {
				return readError(err)
			}
			if r.depth != level {
				return fmt.Errorf("%w: element %s inside %s was not fully consumed",
					ErrDeserializationFailed, t.Name.Local, start.Name.Local)
			}
		case xml.EndElement:
			if r.depth < level {
				return nil
			}
		}
	}
}

// Skip consumes the remainder of the element whose start tag was just read.
func (r *Reader) Skip() error {
	level := r.depth
	for r.depth >= level {
		if _, err := r.token(); err != nil {
			return err
		}
	}
	return nil
}

// Unknown handles a child element nobody recognises. In strict mode it fails
// with ErrUnknownQName, otherwise it logs and skips the subtree.
func (r *Reader) Unknown(start xml.StartElement) error {
	if r.opts.strict {
		return fmt.Errorf("%w: %w %s", ErrDeserializationFailed, ErrUnknownQName, QNameOf(start.Name))
	}
	r.opts.logger.Warn("skipping unknown xuk element", "element", QNameOf(start.Name).String(), "depth", r.depth)
	return r.Skip()
}

// Text reads the character data of the element whose start tag was just read,
// up to and including its end tag. Nested elements are an error.
func (r *Reader) Text() (string, error) {
	var sb strings.Builder
	level := r.depth
	for {
		tok, err := r.token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			return "", fmt.Errorf("%w: unexpected element %s in text content", ErrDeserializationFailed, t.Name.Local)
		case xml.EndElement:
			if r.depth < level {
				return sb.String(), nil
			}
		}
	}
}

// Resolve resolves a reference read from the document against the base URI.
func (r *Reader) Resolve(ref string) string {
	return ResolveURI(r.opts.baseURI, ref)
}
