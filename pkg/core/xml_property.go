package core

import (
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/aretw0/urakawa/pkg/xuk"
)

// XmlAttribute is one attribute of the element an XmlProperty describes.
type XmlAttribute struct {
	LocalName    string
	NamespaceURI string
	Value        string
}

// XmlProperty gives a node the identity of an XML element: a qualified name
// and a list of attributes.
type XmlProperty struct {
	PropertyBase
	localName    string
	namespaceURI string
	attributes   []XmlAttribute
}

// LocalName returns the element's local name.
func (p *XmlProperty) LocalName() string { return p.localName }

// NamespaceURI returns the element's namespace.
func (p *XmlProperty) NamespaceURI() string { return p.namespaceURI }

// SetQName sets the element name. The local name must not be empty.
func (p *XmlProperty) SetQName(localName, namespaceURI string) error {
	if localName == "" {
		return fmt.Errorf("%w: local name", ErrNilArgument)
	}
	p.localName, p.namespaceURI = localName, namespaceURI
	return nil
}

// Attributes returns a copy of the attributes in insertion order.
func (p *XmlProperty) Attributes() []XmlAttribute {
	return slices.Clone(p.attributes)
}

func (p *XmlProperty) indexOf(localName, namespaceURI string) int {
	return slices.IndexFunc(p.attributes, func(a XmlAttribute) bool {
		return a.LocalName == localName && a.NamespaceURI == namespaceURI
	})
}

// Attribute looks an attribute up by name.
func (p *XmlProperty) Attribute(localName, namespaceURI string) (XmlAttribute, bool) {
	if i := p.indexOf(localName, namespaceURI); i >= 0 {
		return p.attributes[i], true
	}
	return XmlAttribute{}, false
}

// SetAttribute adds or replaces an attribute.
func (p *XmlProperty) SetAttribute(localName, namespaceURI, value string) error {
	if localName == "" {
		return fmt.Errorf("%w: attribute local name", ErrNilArgument)
	}
	ev := XmlAttributeChanged{Property: p, LocalName: localName, NamespaceURI: namespaceURI, Value: value}
	if i := p.indexOf(localName, namespaceURI); i >= 0 {
		ev.Previous, ev.Existed = p.attributes[i].Value, true
		p.attributes[i].Value = value
	} else {
		p.attributes = append(p.attributes, XmlAttribute{LocalName: localName, NamespaceURI: namespaceURI, Value: value})
	}
	p.publish(ev)
	return nil
}

// RemoveAttribute deletes an attribute and reports whether it existed.
func (p *XmlProperty) RemoveAttribute(localName, namespaceURI string) bool {
	i := p.indexOf(localName, namespaceURI)
	if i < 0 {
		return false
	}
	prev := p.attributes[i].Value
	p.attributes = slices.Delete(p.attributes, i, i+1)
	p.publish(XmlAttributeChanged{
		Property: p, LocalName: localName, NamespaceURI: namespaceURI,
		Previous: prev, Existed: true, Removed: true,
	})
	return true
}

func (p *XmlProperty) publish(e Event) {
	if p.presentation != nil {
		p.presentation.publish(e)
	}
}

// CanBeAddedTo accepts nodes without an XmlProperty.
func (p *XmlProperty) CanBeAddedTo(n *TreeNode) bool {
	_, exists := PropertyOf[*XmlProperty](n)
	return !exists
}

func (p *XmlProperty) Copy() Property {
	return &XmlProperty{
		PropertyBase: PropertyBase{presentation: p.presentation},
		localName:    p.localName,
		namespaceURI: p.namespaceURI,
		attributes:   slices.Clone(p.attributes),
	}
}

// ValueEquals compares names and attributes; attribute order is irrelevant.
func (p *XmlProperty) ValueEquals(other Property) bool {
	o, ok := other.(*XmlProperty)
	if !ok || o.localName != p.localName || o.namespaceURI != p.namespaceURI ||
		len(o.attributes) != len(p.attributes) {
		return false
	}
	for _, a := range p.attributes {
		b, found := o.Attribute(a.LocalName, a.NamespaceURI)
		if !found || b.Value != a.Value {
			return false
		}
	}
	return true
}

func (p *XmlProperty) XukQName() xuk.QName { return QNameXmlProperty }

func (p *XmlProperty) XukClear() {
	p.localName, p.namespaceURI = "", ""
	p.attributes = nil
}

func (p *XmlProperty) XukInAttributes(_ *xuk.Reader, start xml.StartElement) error {
	p.localName, _ = xuk.Attr(start, "LocalName")
	p.namespaceURI, _ = xuk.Attr(start, "NamespaceUri")
	return nil
}

func (p *XmlProperty) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	if !xuk.NewQName(groupXmlAttributes).Is(start.Name) {
		return r.Unknown(start)
	}
	return r.Children(start, func(child xml.StartElement) error {
		if !xuk.NewQName(elemXmlAttribute).Is(child.Name) {
			return r.Unknown(child)
		}
		var a XmlAttribute
		a.LocalName, _ = xuk.Attr(child, "LocalName")
		a.NamespaceURI, _ = xuk.Attr(child, "NamespaceUri")
		a.Value, _ = xuk.Attr(child, "Value")
		if a.LocalName == "" {
			return fmt.Errorf("%w: XmlAttribute without LocalName", ErrNilArgument)
		}
		if err := r.Skip(); err != nil {
			return err
		}
		if i := p.indexOf(a.LocalName, a.NamespaceURI); i >= 0 {
			p.attributes[i] = a
		} else {
			p.attributes = append(p.attributes, a)
		}
		return nil
	})
}

func (p *XmlProperty) XukOutAttributes(_ *xuk.Writer, start *xml.StartElement) error {
	xuk.AppendAttr(start, "LocalName", p.localName)
	xuk.AppendAttr(start, "NamespaceUri", p.namespaceURI)
	return nil
}

func (p *XmlProperty) XukOutChildren(w *xuk.Writer) error {
	if len(p.attributes) == 0 {
		return nil
	}
	return w.Group(groupXmlAttributes, func() error {
		for _, a := range p.attributes {
			attrs := []xml.Attr{xuk.NewAttr("LocalName", a.LocalName)}
			if a.NamespaceURI != "" {
				attrs = append(attrs, xuk.NewAttr("NamespaceUri", a.NamespaceURI))
			}
			attrs = append(attrs, xuk.NewAttr("Value", a.Value))
			if err := w.Element(elemXmlAttribute, attrs...); err != nil {
				return err
			}
		}
		return nil
	})
}
