package xuk

import "encoding/xml"

// Namespace is the XML namespace of every element defined by the XUK format.
const Namespace = "http://www.daisy.org/urakawa/xuk/2.0"

// QName identifies a serializable type by namespace URI and local name.
type QName struct {
	Space string
	Local string
}

// NewQName returns a QName in the XUK namespace.
func NewQName(local string) QName {
	return QName{Space: Namespace, Local: local}
}

// QNameOf returns the QName of an XML element name.
func QNameOf(name xml.Name) QName {
	return QName{Space: name.Space, Local: name.Local}
}

// Is reports whether name refers to q.
func (q QName) Is(name xml.Name) bool {
	return q.Space == name.Space && q.Local == name.Local
}

func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return "{" + q.Space + "}" + q.Local
}
