package xuk

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"unicode/utf8"
)

// Writer emits XUK elements to an underlying stream.
type Writer struct {
	enc  *xml.Encoder
	opts options

	// spaces holds the default namespace in scope for each open element.
	spaces []string
}

// NewWriter returns a Writer producing XML on dst.
func NewWriter(dst io.Writer, opts ...Option) *Writer {
	w := &Writer{enc: xml.NewEncoder(dst), opts: buildOptions(opts)}
	if w.opts.indent != "" {
		w.enc.Indent("", w.opts.indent)
	}
	return w
}

// BaseURI returns the URI external references are written relative to, or nil.
func (w *Writer) BaseURI() *url.URL {
	return w.opts.baseURI
}

// Relativize rewrites ref relative to the writer's base URI when possible.
func (w *Writer) Relativize(ref string) string {
	return RelativeURI(w.opts.baseURI, ref)
}

// Flush writes any buffered output to the underlying stream.
func (w *Writer) Flush() error {
	if err := w.enc.Flush(); err != nil {
		return writeError(err)
	}
	return nil
}

func (w *Writer) checkCancel() error {
	if cancelled(w.opts.progress) {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, ErrProgressCancelled)
	}
	return nil
}

func (w *Writer) currentSpace() string {
	if len(w.spaces) == 0 {
		return ""
	}
	return w.spaces[len(w.spaces)-1]
}

// startElement builds a start tag for qn, declaring the namespace only when it
// differs from the one already in scope.
func (w *Writer) startElement(qn QName) xml.StartElement {
	name := xml.Name{Local: qn.Local}
	if qn.Space != w.currentSpace() {
		name.Space = qn.Space
	}
	return xml.StartElement{Name: name}
}

func (w *Writer) spaceOf(start xml.StartElement) string {
	if start.Name.Space != "" {
		return start.Name.Space
	}
	return w.currentSpace()
}

func (w *Writer) open(start xml.StartElement) error {
	for _, a := range start.Attr {
		if err := checkChars(a.Value); err != nil {
			return writeError(fmt.Errorf("attribute %s of %s: %w", a.Name.Local, start.Name.Local, err))
		}
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return writeError(err)
	}
	w.spaces = append(w.spaces, w.spaceOf(start))
	return nil
}

func (w *Writer) close(start xml.StartElement) error {
	if err := w.enc.EncodeToken(start.End()); err != nil {
		return writeError(err)
	}
	w.spaces = w.spaces[:len(w.spaces)-1]
	return nil
}

// Group writes a wrapper element named local in the XUK namespace around the
// output of fn. Cancellation is checked before the wrapper is opened.
func (w *Writer) Group(local string, fn func() error) error {
	return w.GroupAttrs(local, nil, fn)
}

// GroupAttrs is Group with attributes on the wrapper element.
func (w *Writer) GroupAttrs(local string, attrs []xml.Attr, fn func() error) error {
	if err := w.checkCancel(); err != nil {
		return err
	}
	start := w.startElement(NewQName(local))
	start.Attr = attrs
	if err := w.open(start); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return writeError(err)
	}
	return w.close(start)
}

// Element writes an empty element in the XUK namespace with the given attributes.
func (w *Writer) Element(local string, attrs ...xml.Attr) error {
	if err := w.checkCancel(); err != nil {
		return err
	}
	start := w.startElement(NewQName(local))
	start.Attr = attrs
	if err := w.open(start); err != nil {
		return err
	}
	return w.close(start)
}

// Text writes an element in the XUK namespace holding character data.
func (w *Writer) Text(local, text string) error {
	if err := w.checkCancel(); err != nil {
		return err
	}
	if err := checkChars(text); err != nil {
		return writeError(fmt.Errorf("%s: %w", local, err))
	}
	start := w.startElement(NewQName(local))
	if err := w.open(start); err != nil {
		return err
	}
	if text != "" {
		if err := w.enc.EncodeToken(xml.CharData(text)); err != nil {
			return writeError(err)
		}
	}
	return w.close(start)
}

// checkChars rejects text that XML 1.0 cannot carry. encoding/xml would
// otherwise replace such characters with U+FFFD.
func checkChars(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidCharacter
	}
	for i, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("%w: %U at offset %d", ErrInvalidCharacter, r, i)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
