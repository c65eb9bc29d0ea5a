package xuk

import "encoding/xml"

// Able is implemented by every object that can be persisted in XUK.
//
// The hooks are called by [In] and [Out]; they are not meant to be called directly.
type Able interface {
	// XukQName is the fixed element name of the object.
	XukQName() QName

	// XukClear resets the object before it is read.
	XukClear()

	// XukInAttributes reads scalar state from the attributes of start.
	XukInAttributes(r *Reader, start xml.StartElement) error

	// XukInChild reads one child element. It must consume the whole element,
	// either by reading it or by calling [Reader.Skip] or [Reader.Unknown].
	XukInChild(r *Reader, start xml.StartElement) error

	// XukOutAttributes appends scalar state to start.
	XukOutAttributes(w *Writer, start *xml.StartElement) error

	// XukOutChildren writes nested objects and collections.
	XukOutChildren(w *Writer) error
}

// In reads a into memory from r. The start tag has already been consumed by the
// caller, and on success the matching end tag has been consumed too.
func In(r *Reader, a Able, start xml.StartElement) error {
	if a == nil {
		return readError(errNilAble)
	}
	if want := a.XukQName(); !want.Is(start.Name) {
		return readError(fmtMismatch(want, start.Name))
	}
	if err := r.checkCancel(); err != nil {
		return err
	}
	a.XukClear()
	if err := a.XukInAttributes(r, start); err != nil {
		return readError(err)
	}
	return r.Children(start, func(child xml.StartElement) error {
		return a.XukInChild(r, child)
	})
}

// Out writes a to w as one element with its attributes and children.
func Out(w *Writer, a Able) error {
	if a == nil {
		return writeError(errNilAble)
	}
	if err := w.checkCancel(); err != nil {
		return err
	}
	start := w.startElement(a.XukQName())
	if err := a.XukOutAttributes(w, &start); err != nil {
		return writeError(err)
	}
	if err := w.open(start); err != nil {
		return err
	}
	if err := a.XukOutChildren(w); err != nil {
		return writeError(err)
	}
	return w.close(start)
}

// AppendAttr adds an unqualified attribute to start. Empty values are skipped.
func AppendAttr(start *xml.StartElement, local, value string) {
	if value == "" {
		return
	}
	start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}

// NewAttr builds an unqualified attribute, keeping empty values.
func NewAttr(local, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: local}, Value: value}
}

// Attr returns the value of the unqualified attribute local on start.
func Attr(start xml.StartElement, local string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
