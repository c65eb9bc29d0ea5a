package core

import (
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/aretw0/urakawa/pkg/xuk"
)

// TreeNode is a node of the document tree. A node has at most one parent and
// an ordered list of children; the parent links and child lists of a tree
// always agree.
type TreeNode struct {
	presentation *Presentation
	parent       *TreeNode
	children     []*TreeNode
	properties   []Property
}

// Presentation returns the presentation that created the node.
func (n *TreeNode) Presentation() *Presentation { return n.presentation }

// Parent returns the parent node, or nil for a root or detached node.
func (n *TreeNode) Parent() *TreeNode { return n.parent }

// Root returns the topmost ancestor, which is n itself when it has no parent.
func (n *TreeNode) Root() *TreeNode {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// ChildCount returns the number of children.
func (n *TreeNode) ChildCount() int { return len(n.children) }

// Child returns the child at index.
func (n *TreeNode) Child(index int) (*TreeNode, error) {
	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, index, len(n.children))
	}
	return n.children[index], nil
}

// Children returns a copy of the child list.
func (n *TreeNode) Children() []*TreeNode {
	return slices.Clone(n.children)
}

// IndexOf returns the position of child, or -1 when it is not a child of n.
func (n *TreeNode) IndexOf(child *TreeNode) int {
	if child == nil || child.parent != n {
		return -1
	}
	return slices.Index(n.children, child)
}

// NextSibling returns the following sibling, or nil.
func (n *TreeNode) NextSibling() *TreeNode {
	if n.parent == nil {
		return nil
	}
	i := n.parent.IndexOf(n)
	if i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// PreviousSibling returns the preceding sibling, or nil.
func (n *TreeNode) PreviousSibling() *TreeNode {
	if n.parent == nil {
		return nil
	}
	i := n.parent.IndexOf(n)
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// IsAncestorOf reports whether n is a proper ancestor of other.
func (n *TreeNode) IsAncestorOf(other *TreeNode) bool {
	if other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// IsDescendantOf reports whether n is a proper descendant of other.
func (n *TreeNode) IsDescendantOf(other *TreeNode) bool {
	return other != nil && other.IsAncestorOf(n)
}

// IsSiblingOf reports whether n and other share a parent.
func (n *TreeNode) IsSiblingOf(other *TreeNode) bool {
	return other != nil && other != n && n.parent != nil && n.parent == other.parent
}

// AppendChild inserts child after the last child.
func (n *TreeNode) AppendChild(child *TreeNode) error {
	return n.Insert(child, len(n.children))
}

// Insert places child at index, shifting later children right. index may equal
// ChildCount. child must be detached, must come from the same presentation and
// must not be n or an ancestor of n.
func (n *TreeNode) Insert(child *TreeNode, index int) error {
	if err := n.checkInsertable(child); err != nil {
		return err
	}
	if index < 0 || index > len(n.children) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfBounds, index, len(n.children))
	}
	n.children = slices.Insert(n.children, index, child)
	child.parent = n
	n.presentation.publish(ChildAdded{Parent: n, Child: child, Index: index})
	return nil
}

func (n *TreeNode) checkInsertable(child *TreeNode) error {
	switch {
	case child == nil:
		return ErrNilArgument
	case child.presentation != n.presentation:
		return ErrPresentationMismatch
	case child.parent != nil:
		return ErrNodeAlreadyHasParent
	case child == n || child.IsAncestorOf(n):
		return ErrNodeIsAncestor
	}
	return nil
}

// RemoveAt detaches and returns the child at index.
func (n *TreeNode) RemoveAt(index int) (*TreeNode, error) {
	child, err := n.Child(index)
	if err != nil {
		return nil, err
	}
	n.children = slices.Delete(n.children, index, index+1)
	child.parent = nil
	n.presentation.publish(ChildRemoved{Parent: n, Child: child, Index: index})
	return child, nil
}

// RemoveChild detaches child from n.
func (n *TreeNode) RemoveChild(child *TreeNode) error {
	i := n.IndexOf(child)
	if i < 0 {
		return ErrNodeNotChild
	}
	_, err := n.RemoveAt(i)
	return err
}

// ReplaceAt puts replacement at index and returns the node it displaced.
func (n *TreeNode) ReplaceAt(replacement *TreeNode, index int) (*TreeNode, error) {
	if _, err := n.Child(index); err != nil {
		return nil, err
	}
	if err := n.checkInsertable(replacement); err != nil {
		return nil, err
	}
	old, err := n.RemoveAt(index)
	if err != nil {
		return nil, err
	}
	return old, n.Insert(replacement, index)
}

// ReplaceChild puts replacement where old is.
func (n *TreeNode) ReplaceChild(replacement, old *TreeNode) error {
	i := n.IndexOf(old)
	if i < 0 {
		return ErrNodeNotChild
	}
	_, err := n.ReplaceAt(replacement, i)
	return err
}

// Detach removes n from its parent, if any.
func (n *TreeNode) Detach() error {
	if n.parent == nil {
		return nil
	}
	return n.parent.RemoveChild(n)
}

// Properties returns a copy of the attached properties in attachment order.
func (n *TreeNode) Properties() []Property {
	return slices.Clone(n.properties)
}

// PropertyCount returns the number of attached properties.
func (n *TreeNode) PropertyCount() int { return len(n.properties) }

// HasProperty reports whether p is attached to n.
func (n *TreeNode) HasProperty(p Property) bool {
	return p != nil && p.Owner() == n
}

// AddProperty attaches p to n.
func (n *TreeNode) AddProperty(p Property) error {
	if p == nil {
		return ErrNilArgument
	}
	b := p.base()
	if b.owner != nil {
		return ErrPropertyAlreadyHasOwner
	}
	if b.presentation != n.presentation {
		return ErrPresentationMismatch
	}
	if !p.CanBeAddedTo(n) {
		return fmt.Errorf("%w: %s", ErrPropertyCannotBeAddedToTreeNode, p.XukQName().Local)
	}
	n.properties = append(n.properties, p)
	b.owner = n
	n.presentation.publish(PropertyAdded{Node: n, Property: p})
	return nil
}

// RemoveProperty detaches p and reports whether it was attached to n.
func (n *TreeNode) RemoveProperty(p Property) bool {
	if p == nil {
		return false
	}
	i := slices.Index(n.properties, p)
	if i < 0 {
		return false
	}
	n.properties = slices.Delete(n.properties, i, i+1)
	p.base().owner = nil
	n.presentation.publish(PropertyRemoved{Node: n, Property: p})
	return true
}

// XmlProperty returns the attached XmlProperty, if any.
func (n *TreeNode) XmlProperty() (*XmlProperty, bool) {
	return PropertyOf[*XmlProperty](n)
}

// ChannelsProperty returns the attached ChannelsProperty, if any.
func (n *TreeNode) ChannelsProperty() (*ChannelsProperty, bool) {
	return PropertyOf[*ChannelsProperty](n)
}

// Copy returns a detached copy of n. With deep, descendants are copied too;
// with withProperties, properties are copied and attached to the copies.
func (n *TreeNode) Copy(deep, withProperties bool) *TreeNode {
	c := n.presentation.NewTreeNode()
	if withProperties {
		for _, p := range n.properties {
			pc := p.Copy()
			pc.base().owner = c
			c.properties = append(c.properties, pc)
		}
	}
	if deep {
		for _, child := range n.children {
			cc := child.Copy(true, withProperties)
			cc.parent = c
			c.children = append(c.children, cc)
		}
	}
	return c
}

// ValueEquals compares properties and children recursively. Properties must
// match pairwise in order.
func (n *TreeNode) ValueEquals(other *TreeNode) bool {
	if other == nil || len(n.properties) != len(other.properties) || len(n.children) != len(other.children) {
		return false
	}
	for i, p := range n.properties {
		if !p.ValueEquals(other.properties[i]) {
			return false
		}
	}
	for i, c := range n.children {
		if !c.ValueEquals(other.children[i]) {
			return false
		}
	}
	return true
}

// Walk visits n and its descendants depth first in document order. When fn
// returns false the children of the visited node are skipped.
func (n *TreeNode) Walk(fn func(*TreeNode) bool) {
	if !fn(n) {
		return
	}
	for _, c := range slices.Clone(n.children) {
		c.Walk(fn)
	}
}

// Path returns the child indices leading from the root to n.
func (n *TreeNode) Path() []int {
	var path []int
	for c := n; c.parent != nil; c = c.parent {
		path = append(path, c.parent.IndexOf(c))
	}
	slices.Reverse(path)
	return path
}

// NodeAt follows path from n, as returned by Path.
func (n *TreeNode) NodeAt(path []int) (*TreeNode, error) {
	cur := n
	for _, i := range path {
		next, err := cur.Child(i)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (n *TreeNode) XukQName() xuk.QName { return QNameTreeNode }

// XukClear drops children and properties without publishing events.
func (n *TreeNode) XukClear() {
	for _, c := range n.children {
		c.parent = nil
	}
	for _, p := range n.properties {
		p.base().owner = nil
	}
	n.children = nil
	n.properties = nil
}

func (n *TreeNode) XukInAttributes(*xuk.Reader, xml.StartElement) error { return nil }

func (n *TreeNode) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	switch {
	case xuk.NewQName(groupProperties).Is(start.Name):
		return r.Children(start, func(child xml.StartElement) error {
			p, ok := n.presentation.propertyFactory.New(xuk.QNameOf(child.Name))
			if !ok {
				return r.Unknown(child)
			}
			if err := xuk.In(r, p, child); err != nil {
				return err
			}
			return n.AddProperty(p)
		})
	case xuk.NewQName(groupChildren).Is(start.Name):
		return r.Children(start, func(child xml.StartElement) error {
			if !QNameTreeNode.Is(child.Name) {
				return r.Unknown(child)
			}
			c := n.presentation.NewTreeNode()
			if err := xuk.In(r, c, child); err != nil {
				return err
			}
			return n.AppendChild(c)
		})
	}
	return r.Unknown(start)
}

func (n *TreeNode) XukOutAttributes(*xuk.Writer, *xml.StartElement) error { return nil }

func (n *TreeNode) XukOutChildren(w *xuk.Writer) error {
	if len(n.properties) > 0 {
		err := w.Group(groupProperties, func() error {
			for _, p := range n.properties {
				if err := xuk.Out(w, p); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	if len(n.children) == 0 {
		return nil
	}
	return w.Group(groupChildren, func() error {
		for _, c := range n.children {
			if err := xuk.Out(w, c); err != nil {
				return err
			}
		}
		return nil
	})
}
