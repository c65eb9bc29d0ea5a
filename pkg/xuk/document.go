package xuk

import (
	"encoding/xml"
	"fmt"
	"io"
)

// DocumentQName is the envelope element wrapping the top-level object.
var DocumentQName = NewQName("Xuk")

// WriteDocument writes root wrapped in the XUK envelope, preceded by the XML header.
func WriteDocument(dst io.Writer, root Able, opts ...Option) error {
	if root == nil {
		return writeError(errNilAble)
	}
	if _, err := io.WriteString(dst, xml.Header); err != nil {
		return writeError(err)
	}
	w := NewWriter(dst, opts...)
	start := w.startElement(DocumentQName)
	if err := w.open(start); err != nil {
		return err
	}
	if err := Out(w, root); err != nil {
		return err
	}
	if err := w.close(start); err != nil {
		return err
	}
	return w.Flush()
}

// ReadDocument reads a XUK envelope from src into root. The envelope must
// contain exactly one element, whose name must be root's QName.
func ReadDocument(src io.Reader, root Able, opts ...Option) error {
	if root == nil {
		return readError(errNilAble)
	}
	r := NewReader(src, opts...)
	start, err := r.NextStart()
	if err != nil {
		return err
	}
	if !DocumentQName.Is(start.Name) {
		return readError(fmtMismatch(DocumentQName, start.Name))
	}

	found := false
	err = r.Children(start, func(child xml.StartElement) error {
		if found {
			return fmt.Errorf("more than one top-level element: %s", QNameOf(child.Name))
		}
		found = true
		return In(r, root, child)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: empty document, expected %s", ErrDeserializationFailed, root.XukQName())
	}
	return nil
}
