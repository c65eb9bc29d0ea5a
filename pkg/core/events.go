package core

// Event is implemented by every notification published on Presentation.Events.
type Event interface {
	coreEvent()
}

// ChildAdded is published after Child was inserted under Parent at Index.
type ChildAdded struct {
	Parent *TreeNode
	Child  *TreeNode
	Index  int
}

// ChildRemoved is published after Child was removed from Parent, where it was at Index.
type ChildRemoved struct {
	Parent *TreeNode
	Child  *TreeNode
	Index  int
}

// PropertyAdded is published after Property was attached to Node.
type PropertyAdded struct {
	Node     *TreeNode
	Property Property
}

// PropertyRemoved is published after Property was detached from Node.
type PropertyRemoved struct {
	Node     *TreeNode
	Property Property
}

// MediaSet is published after the binding of Channel in Property changed.
// A nil Media means the binding was removed.
type MediaSet struct {
	Property *ChannelsProperty
	Channel  *Channel
	Media    Media
	Previous Media
}

// XmlAttributeChanged is published after an attribute was set or removed.
type XmlAttributeChanged struct {
	Property     *XmlProperty
	LocalName    string
	NamespaceURI string
	Value        string
	Previous     string
	Existed      bool
	Removed      bool
}

// ChannelAdded is published after Channel was registered.
type ChannelAdded struct {
	Channel *Channel
}

// ChannelRemoved is published after Channel, which had UID, was unregistered.
type ChannelRemoved struct {
	Channel *Channel
	UID     string
}

func (ChildAdded) coreEvent()          {}
func (ChildRemoved) coreEvent()        {}
func (PropertyAdded) coreEvent()       {}
func (PropertyRemoved) coreEvent()     {}
func (MediaSet) coreEvent()            {}
func (XmlAttributeChanged) coreEvent() {}
func (ChannelAdded) coreEvent()        {}
func (ChannelRemoved) coreEvent()      {}
