package core

import (
	"fmt"

	"github.com/aretw0/urakawa/pkg/undo"
)

var (
	_ undo.Command = (*InsertChildCommand)(nil)
	_ undo.Command = (*RemoveChildCommand)(nil)
	_ undo.Command = (*AddPropertyCommand)(nil)
	_ undo.Command = (*RemovePropertyCommand)(nil)
	_ undo.Command = (*SetMediaCommand)(nil)
	_ undo.Command = (*SetXmlAttributeCommand)(nil)
	_ undo.Command = (*AddChannelCommand)(nil)
	_ undo.Command = (*RemoveChannelCommand)(nil)
)

type descriptions struct {
	short string
	long  string
}

func (d descriptions) ShortDescription() string { return d.short }
func (d descriptions) LongDescription() string  { return d.long }

// InsertChildCommand inserts a detached node under a parent.
type InsertChildCommand struct {
	descriptions
	parent *TreeNode
	child  *TreeNode
	index  int
	at     int
}

// NewInsertChildCommand inserts child at index. A negative index appends.
func NewInsertChildCommand(parent, child *TreeNode, index int) *InsertChildCommand {
	return &InsertChildCommand{
		descriptions: descriptions{short: "Insert node", long: fmt.Sprintf("Insert a node at position %d", index)},
		parent:       parent,
		child:        child,
		index:        index,
	}
}

func (c *InsertChildCommand) position() int {
	if c.index < 0 {
		return c.parent.ChildCount()
	}
	return c.index
}

func (c *InsertChildCommand) CanExecute() bool {
	return c.parent != nil && c.child != nil && c.parent.checkInsertable(c.child) == nil &&
		c.position() <= c.parent.ChildCount()
}

func (c *InsertChildCommand) Execute() error {
	c.at = c.position()
	return c.parent.Insert(c.child, c.at)
}

func (c *InsertChildCommand) CanUnExecute() bool { return true }

func (c *InsertChildCommand) UnExecute() error {
	if c.parent.IndexOf(c.child) != c.at {
		return ErrNodeNotChild
	}
	_, err := c.parent.RemoveAt(c.at)
	return err
}

// RemoveChildCommand detaches a node from its parent, remembering its position.
type RemoveChildCommand struct {
	descriptions
	child  *TreeNode
	parent *TreeNode
	at     int
}

// NewRemoveChildCommand removes child from its current parent.
func NewRemoveChildCommand(child *TreeNode) *RemoveChildCommand {
	return &RemoveChildCommand{
		descriptions: descriptions{short: "Remove node", long: "Remove a node and its subtree"},
		child:        child,
	}
}

func (c *RemoveChildCommand) CanExecute() bool {
	return c.child != nil && c.child.parent != nil
}

func (c *RemoveChildCommand) Execute() error {
	if !c.CanExecute() {
		return ErrNodeNotChild
	}
	c.parent = c.child.parent
	c.at = c.parent.IndexOf(c.child)
	_, err := c.parent.RemoveAt(c.at)
	return err
}

func (c *RemoveChildCommand) CanUnExecute() bool { return true }

func (c *RemoveChildCommand) UnExecute() error {
	if c.parent == nil {
		return ErrNodeNotChild
	}
	return c.parent.Insert(c.child, c.at)
}

// AddPropertyCommand attaches a property to a node.
type AddPropertyCommand struct {
	descriptions
	node     *TreeNode
	property Property
}

// NewAddPropertyCommand attaches p to n.
func NewAddPropertyCommand(n *TreeNode, p Property) *AddPropertyCommand {
	return &AddPropertyCommand{
		descriptions: descriptions{short: "Add property", long: "Attach a property to a node"},
		node:         n,
		property:     p,
	}
}

func (c *AddPropertyCommand) CanExecute() bool {
	return c.node != nil && c.property != nil && c.property.Owner() == nil && c.property.CanBeAddedTo(c.node)
}

func (c *AddPropertyCommand) Execute() error { return c.node.AddProperty(c.property) }

func (c *AddPropertyCommand) CanUnExecute() bool { return true }

func (c *AddPropertyCommand) UnExecute() error {
	if !c.node.RemoveProperty(c.property) {
		return fmt.Errorf("property is not attached to the node")
	}
	return nil
}

// RemovePropertyCommand detaches a property from its owner.
type RemovePropertyCommand struct {
	descriptions
	property Property
	node     *TreeNode
}

// NewRemovePropertyCommand detaches p from its owner.
func NewRemovePropertyCommand(p Property) *RemovePropertyCommand {
	return &RemovePropertyCommand{
		descriptions: descriptions{short: "Remove property", long: "Detach a property from its node"},
		property:     p,
	}
}

func (c *RemovePropertyCommand) CanExecute() bool {
	return c.property != nil && c.property.Owner() != nil
}

func (c *RemovePropertyCommand) Execute() error {
	if !c.CanExecute() {
		return fmt.Errorf("property has no owner")
	}
	c.node = c.property.Owner()
	c.node.RemoveProperty(c.property)
	return nil
}

func (c *RemovePropertyCommand) CanUnExecute() bool { return true }

func (c *RemovePropertyCommand) UnExecute() error {
	if c.node == nil {
		return fmt.Errorf("property was never removed")
	}
	return c.node.AddProperty(c.property)
}

// SetMediaCommand binds media to a channel, or unbinds it when media is nil.
type SetMediaCommand struct {
	descriptions
	property *ChannelsProperty
	channel  *Channel
	media    Media
	previous Media
}

// NewSetMediaCommand binds m to ch in p.
func NewSetMediaCommand(p *ChannelsProperty, ch *Channel, m Media) *SetMediaCommand {
	name := ""
	if ch != nil {
		name = ch.Name()
	}
	return &SetMediaCommand{
		descriptions: descriptions{short: "Set media", long: fmt.Sprintf("Set the media of channel %q", name)},
		property:     p,
		channel:      ch,
		media:        m,
	}
}

func (c *SetMediaCommand) CanExecute() bool {
	if c.property == nil || c.channel == nil || c.property.Presentation() == nil {
		return false
	}
	if !c.property.Presentation().ChannelsManager().IsManaged(c.channel) {
		return false
	}
	return c.media == nil || c.channel.Supports(c.media.MediaType())
}

func (c *SetMediaCommand) Execute() error {
	c.previous, _ = c.property.Media(c.channel)
	return c.property.SetMedia(c.channel, c.media)
}

func (c *SetMediaCommand) CanUnExecute() bool { return true }

func (c *SetMediaCommand) UnExecute() error {
	return c.property.SetMedia(c.channel, c.previous)
}

// SetXmlAttributeCommand sets one attribute of an XmlProperty.
type SetXmlAttributeCommand struct {
	descriptions
	property     *XmlProperty
	localName    string
	namespaceURI string
	value        string
	previous     string
	existed      bool
}

// NewSetXmlAttributeCommand sets localName in namespaceURI to value on p.
func NewSetXmlAttributeCommand(p *XmlProperty, localName, namespaceURI, value string) *SetXmlAttributeCommand {
	return &SetXmlAttributeCommand{
		descriptions: descriptions{short: "Set attribute", long: fmt.Sprintf("Set attribute %q to %q", localName, value)},
		property:     p,
		localName:    localName,
		namespaceURI: namespaceURI,
		value:        value,
	}
}

func (c *SetXmlAttributeCommand) CanExecute() bool {
	return c.property != nil && c.localName != ""
}

func (c *SetXmlAttributeCommand) Execute() error {
	prev, existed := c.property.Attribute(c.localName, c.namespaceURI)
	c.previous, c.existed = prev.Value, existed
	return c.property.SetAttribute(c.localName, c.namespaceURI, c.value)
}

func (c *SetXmlAttributeCommand) CanUnExecute() bool { return true }

func (c *SetXmlAttributeCommand) UnExecute() error {
	if c.existed {
		return c.property.SetAttribute(c.localName, c.namespaceURI, c.previous)
	}
	c.property.RemoveAttribute(c.localName, c.namespaceURI)
	return nil
}

// AddChannelCommand registers a channel. Redo restores the UID assigned by the
// first execution.
type AddChannelCommand struct {
	descriptions
	manager *ChannelsManager
	channel *Channel
	uid     string
}

// NewAddChannelCommand registers ch with m.
func NewAddChannelCommand(m *ChannelsManager, ch *Channel) *AddChannelCommand {
	name := ""
	if ch != nil {
		name = ch.Name()
	}
	return &AddChannelCommand{
		descriptions: descriptions{short: "Add channel", long: fmt.Sprintf("Add channel %q", name)},
		manager:      m,
		channel:      ch,
	}
}

func (c *AddChannelCommand) CanExecute() bool {
	return c.manager != nil && c.manager.checkAddable(c.channel) == nil
}

func (c *AddChannelCommand) Execute() error {
	if c.uid != "" {
		return c.manager.addWithUID(c.channel, c.uid)
	}
	if err := c.manager.AddChannel(c.channel); err != nil {
		return err
	}
	c.uid = c.channel.UID()
	return nil
}

func (c *AddChannelCommand) CanUnExecute() bool { return true }

func (c *AddChannelCommand) UnExecute() error {
	_, err := c.manager.removeChannel(c.channel)
	return err
}

// RemoveChannelCommand unregisters a channel. Undo re-registers it under the
// same UID and restores every binding the removal dropped.
type RemoveChannelCommand struct {
	descriptions
	manager *ChannelsManager
	channel *Channel
	uid     string
	dropped []binding
}

// NewRemoveChannelCommand unregisters ch from m.
func NewRemoveChannelCommand(m *ChannelsManager, ch *Channel) *RemoveChannelCommand {
	name := ""
	if ch != nil {
		name = ch.Name()
	}
	return &RemoveChannelCommand{
		descriptions: descriptions{short: "Remove channel", long: fmt.Sprintf("Remove channel %q", name)},
		manager:      m,
		channel:      ch,
	}
}

func (c *RemoveChannelCommand) CanExecute() bool {
	return c.manager != nil && c.manager.IsManaged(c.channel)
}

func (c *RemoveChannelCommand) Execute() error {
	uid := c.channel.UID()
	dropped, err := c.manager.removeChannel(c.channel)
	if err != nil {
		return err
	}
	c.uid, c.dropped = uid, dropped
	return nil
}

func (c *RemoveChannelCommand) CanUnExecute() bool { return true }

func (c *RemoveChannelCommand) UnExecute() error {
	if err := c.manager.addWithUID(c.channel, c.uid); err != nil {
		return err
	}
	for _, b := range c.dropped {
		if err := b.property.SetMedia(c.channel, b.media); err != nil {
			return err
		}
	}
	c.dropped = nil
	return nil
}
