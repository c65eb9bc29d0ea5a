package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/urakawa/pkg/core"
)

// tree builds root -> [a -> [a1], b] and returns the nodes.
func tree(t *testing.T, p *core.Presentation) (root, a, a1, b *core.TreeNode) {
	t.Helper()
	root = p.RootNode()
	a, a1, b = p.NewTreeNode(), p.NewTreeNode(), p.NewTreeNode()
	require.NoError(t, root.AppendChild(a))
	require.NoError(t, root.AppendChild(b))
	require.NoError(t, a.AppendChild(a1))
	return root, a, a1, b
}

func TestTreeNode_Structure(t *testing.T) {
	p := core.NewPresentation()
	root, a, a1, b := tree(t, p)

	assert.Equal(t, 2, root.ChildCount())
	assert.Same(t, root, a.Parent())
	assert.Same(t, root, a1.Root())
	assert.Same(t, b, a.NextSibling())
	assert.Same(t, a, b.PreviousSibling())
	assert.Nil(t, b.NextSibling())
	assert.Nil(t, root.PreviousSibling())
	assert.True(t, root.IsAncestorOf(a1))
	assert.True(t, a1.IsDescendantOf(root))
	assert.False(t, a.IsAncestorOf(b))
	assert.True(t, a.IsSiblingOf(b))
	assert.Equal(t, []int{0, 0}, a1.Path())

	got, err := root.NodeAt(a1.Path())
	require.NoError(t, err)
	assert.Same(t, a1, got)

	_, err = root.Child(2)
	assert.ErrorIs(t, err, core.ErrIndexOutOfBounds)
}

func TestTreeNode_InsertRejects(t *testing.T) {
	p := core.NewPresentation()
	root, a, a1, _ := tree(t, p)

	tests := []struct {
		name   string
		parent *core.TreeNode
		child  *core.TreeNode
		index  int
		want   error
	}{
		{"nil child", root, nil, 0, core.ErrNilArgument},
		{"attached child", root, a1, 0, core.ErrNodeAlreadyHasParent},
		{"self", a1, a1, 0, core.ErrNodeAlreadyHasParent},
		{"index too large", root, p.NewTreeNode(), 3, core.ErrIndexOutOfBounds},
		{"negative index", root, p.NewTreeNode(), -1, core.ErrIndexOutOfBounds},
		{"other presentation", root, core.NewPresentation().NewTreeNode(), 0, core.ErrPresentationMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.parent.Insert(tt.child, tt.index), tt.want)
		})
	}

	// Cycles: a detached subtree root cannot go below its own descendant.
	require.NoError(t, a.Detach())
	assert.ErrorIs(t, a1.AppendChild(a), core.ErrNodeIsAncestor)
	assert.ErrorIs(t, a.AppendChild(a), core.ErrNodeIsAncestor)
}

func TestTreeNode_RemoveAndReplace(t *testing.T) {
	p := core.NewPresentation()
	root, a, _, b := tree(t, p)

	c := p.NewTreeNode()
	old, err := root.ReplaceAt(c, 0)
	require.NoError(t, err)
	assert.Same(t, a, old)
	assert.Nil(t, a.Parent())
	assert.Equal(t, []*core.TreeNode{c, b}, root.Children())

	require.NoError(t, root.ReplaceChild(a, c))
	assert.Equal(t, 0, root.IndexOf(a))
	assert.Equal(t, -1, root.IndexOf(c))

	assert.ErrorIs(t, root.RemoveChild(c), core.ErrNodeNotChild)
	require.NoError(t, root.RemoveChild(b))
	assert.Equal(t, 1, root.ChildCount())
	assert.NoError(t, b.Detach(), "detaching a detached node is a no-op")
}

func TestTreeNode_PropertyOwnership(t *testing.T) {
	p := core.NewPresentation()
	n1, n2 := p.NewTreeNode(), p.NewTreeNode()
	xp := p.NewXmlProperty()

	require.NoError(t, n1.AddProperty(xp))
	assert.Same(t, n1, xp.Owner())
	assert.True(t, n1.HasProperty(xp))

	assert.ErrorIs(t, n1.AddProperty(xp), core.ErrPropertyAlreadyHasOwner)
	assert.ErrorIs(t, n2.AddProperty(xp), core.ErrPropertyAlreadyHasOwner)

	assert.ErrorIs(t, n1.AddProperty(p.NewXmlProperty()), core.ErrPropertyCannotBeAddedToTreeNode)
	assert.ErrorIs(t, n1.AddProperty(core.NewPresentation().NewChannelsProperty()), core.ErrPresentationMismatch)
	assert.ErrorIs(t, n1.AddProperty(nil), core.ErrNilArgument)

	assert.True(t, n1.RemoveProperty(xp))
	assert.Nil(t, xp.Owner())
	assert.False(t, n1.RemoveProperty(xp))
	assert.Zero(t, n1.PropertyCount())

	require.NoError(t, n2.AddProperty(xp))
	got, ok := n2.XmlProperty()
	require.True(t, ok)
	assert.Same(t, xp, got)
	_, ok = n2.ChannelsProperty()
	assert.False(t, ok)
}

func TestTreeNode_CopyAndValueEquals(t *testing.T) {
	p := core.NewPresentation()
	root, a, _, _ := tree(t, p)
	xp := p.NewXmlProperty()
	require.NoError(t, xp.SetQName("section", ""))
	require.NoError(t, xp.SetAttribute("id", "", "s1"))
	require.NoError(t, a.AddProperty(xp))

	deep := root.Copy(true, true)
	assert.Nil(t, deep.Parent())
	assert.True(t, deep.ValueEquals(root))

	copied, err := deep.Child(0)
	require.NoError(t, err)
	cxp, ok := copied.XmlProperty()
	require.True(t, ok)
	assert.NotSame(t, xp, cxp)
	assert.Same(t, copied, cxp.Owner())

	require.NoError(t, cxp.SetAttribute("id", "", "s2"))
	assert.False(t, deep.ValueEquals(root))

	shallow := root.Copy(false, false)
	assert.Zero(t, shallow.ChildCount())
	assert.False(t, shallow.ValueEquals(root))
}

func TestTreeNode_Walk(t *testing.T) {
	p := core.NewPresentation()
	root, a, a1, b := tree(t, p)

	var seen []*core.TreeNode
	root.Walk(func(n *core.TreeNode) bool {
		seen = append(seen, n)
		return true
	})
	assert.Equal(t, []*core.TreeNode{root, a, a1, b}, seen)

	seen = nil
	root.Walk(func(n *core.TreeNode) bool {
		seen = append(seen, n)
		return n != a
	})
	assert.Equal(t, []*core.TreeNode{root, a, b}, seen)
}

func TestTreeNode_Events(t *testing.T) {
	p := core.NewPresentation()
	var events []core.Event
	unsubscribe := p.Events().Subscribe(func(e core.Event) { events = append(events, e) })
	defer unsubscribe()

	root := p.RootNode()
	child := p.NewTreeNode()
	require.NoError(t, root.AppendChild(child))
	xp := p.NewXmlProperty()
	require.NoError(t, child.AddProperty(xp))
	require.NoError(t, root.RemoveChild(child))

	require.Len(t, events, 3)
	assert.Equal(t, core.ChildAdded{Parent: root, Child: child, Index: 0}, events[0])
	assert.Equal(t, core.PropertyAdded{Node: child, Property: xp}, events[1])
	assert.Equal(t, core.ChildRemoved{Parent: root, Child: child, Index: 0}, events[2])
}
