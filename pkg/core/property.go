package core

import "github.com/aretw0/urakawa/pkg/xuk"

// Property is an attachable facet of a TreeNode. A property has at most one
// owner at a time; only TreeNode.AddProperty and TreeNode.RemoveProperty
// change it.
//
// New property types embed PropertyBase, which provides the bookkeeping
// the interface requires.
type Property interface {
	xuk.Able

	// Owner returns the node the property is attached to, or nil.
	Owner() *TreeNode

	// Presentation returns the presentation that created the property.
	Presentation() *Presentation

	// CanBeAddedTo reports whether the property accepts n as its owner.
	CanBeAddedTo(n *TreeNode) bool

	// Copy returns an unattached deep copy.
	Copy() Property

	// ValueEquals compares content, ignoring ownership.
	ValueEquals(other Property) bool

	base() *PropertyBase
}

// PropertyBase holds the owner and presentation of a property.
type PropertyBase struct {
	owner        *TreeNode
	presentation *Presentation
}

// NewPropertyBase returns a base bound to p, for use by property types
// defined outside this package.
func NewPropertyBase(p *Presentation) PropertyBase {
	return PropertyBase{presentation: p}
}

func (b *PropertyBase) Owner() *TreeNode            { return b.owner }
func (b *PropertyBase) Presentation() *Presentation { return b.presentation }
func (b *PropertyBase) base() *PropertyBase         { return b }

// PropertyOf returns the property of type T attached to n.
func PropertyOf[T Property](n *TreeNode) (T, bool) {
	for _, p := range n.properties {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// PropertiesOf returns every property of type T attached to n. T may be an
// interface satisfied by several property types.
func PropertiesOf[T Property](n *TreeNode) []T {
	var out []T
	for _, p := range n.properties {
		if t, ok := p.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
