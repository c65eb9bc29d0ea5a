package core

import (
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/aretw0/urakawa/pkg/xuk"
)

// ChannelsManager is the registry of the channels of one presentation.
// It assigns every registered channel a UID that is unique within the registry.
type ChannelsManager struct {
	presentation *Presentation
	channels     []*Channel
	byUID        map[string]*Channel
	newUID       func() string
}

func newChannelsManager(p *Presentation, newUID func() string) *ChannelsManager {
	if newUID == nil {
		newUID = uuid.NewString
	}
	return &ChannelsManager{
		presentation: p,
		byUID:        make(map[string]*Channel),
		newUID:       newUID,
	}
}

// Presentation returns the owning presentation.
func (m *ChannelsManager) Presentation() *Presentation { return m.presentation }

// AddChannel registers c and assigns it a fresh UID.
func (m *ChannelsManager) AddChannel(c *Channel) error {
	if err := m.checkAddable(c); err != nil {
		return err
	}
	uid := m.newUID()
	for uid == "" || m.byUID[uid] != nil {
		uid = m.newUID()
	}
	m.register(c, uid)
	return nil
}

// addWithUID registers c under a known UID, as when reading a document or
// undoing a removal.
func (m *ChannelsManager) addWithUID(c *Channel, uid string) error {
	if err := m.checkAddable(c); err != nil {
		return err
	}
	if uid == "" {
		return fmt.Errorf("%w: empty channel uid", ErrNilArgument)
	}
	if m.byUID[uid] != nil {
		return fmt.Errorf("%w: uid %s", ErrChannelAlreadyExists, uid)
	}
	m.register(c, uid)
	return nil
}

func (m *ChannelsManager) checkAddable(c *Channel) error {
	if c == nil {
		return ErrNilArgument
	}
	if c.manager != nil {
		return fmt.Errorf("%w: %s", ErrChannelAlreadyExists, c.uid)
	}
	if c.presentation != m.presentation {
		return ErrPresentationMismatch
	}
	return nil
}

func (m *ChannelsManager) register(c *Channel, uid string) {
	c.uid = uid
	c.manager = m
	m.channels = append(m.channels, c)
	m.byUID[uid] = c
	m.presentation.publish(ChannelAdded{Channel: c})
}

// RemoveChannel unregisters c. Every binding of c is dropped first, whether
// or not its node is attached to the presentation's tree, so no
// ChannelsProperty is left referring to it.
func (m *ChannelsManager) RemoveChannel(c *Channel) error {
	_, err := m.removeChannel(c)
	return err
}

// binding is a ChannelsProperty mapping dropped by removeChannel.
type binding struct {
	property *ChannelsProperty
	media    Media
}

func (m *ChannelsManager) removeChannel(c *Channel) ([]binding, error) {
	if c == nil {
		return nil, ErrNilArgument
	}
	if c.manager != m {
		return nil, fmt.Errorf("%w: %s", ErrChannelDoesNotExist, c.name)
	}

	// Bindings are tracked per channel, so properties on detached nodes and
	// on subtrees held by commands are reached too.
	var dropped []binding
	for _, cp := range slices.Clone(c.bound) {
		if media, had := cp.Media(c); had {
			_ = cp.SetMedia(c, nil)
			dropped = append(dropped, binding{property: cp, media: media})
		}
	}

	uid := c.uid
	delete(m.byUID, uid)
	for i, ch := range m.channels {
		if ch == c {
			m.channels = append(m.channels[:i:i], m.channels[i+1:]...)
			break
		}
	}
	c.uid = ""
	c.manager = nil
	m.presentation.publish(ChannelRemoved{Channel: c, UID: uid})
	return dropped, nil
}

// Channel looks a channel up by UID.
func (m *ChannelsManager) Channel(uid string) (*Channel, bool) {
	c, ok := m.byUID[uid]
	return c, ok
}

// Channels returns the registered channels in registration order.
func (m *ChannelsManager) Channels() []*Channel {
	out := make([]*Channel, len(m.channels))
	copy(out, m.channels)
	return out
}

// ChannelsByName returns the registered channels called name.
func (m *ChannelsManager) ChannelsByName(name string) []*Channel {
	var out []*Channel
	for _, c := range m.channels {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// UIDs returns the UIDs of the registered channels in registration order.
func (m *ChannelsManager) UIDs() []string {
	out := make([]string, len(m.channels))
	for i, c := range m.channels {
		out[i] = c.uid
	}
	return out
}

// Count returns the number of registered channels.
func (m *ChannelsManager) Count() int { return len(m.channels) }

// IsManaged reports whether c is registered here.
func (m *ChannelsManager) IsManaged(c *Channel) bool {
	return c != nil && c.manager == m
}

// ValueEquals compares the registered channels pairwise in order.
func (m *ChannelsManager) ValueEquals(other *ChannelsManager) bool {
	if other == nil || len(m.channels) != len(other.channels) {
		return false
	}
	for i, c := range m.channels {
		if !c.ValueEquals(other.channels[i]) {
			return false
		}
	}
	return true
}

func (m *ChannelsManager) XukQName() xuk.QName { return QNameChannelsManager }

func (m *ChannelsManager) XukClear() {
	for _, c := range m.channels {
		for _, cp := range c.bound {
			cp.mappings = slices.DeleteFunc(cp.mappings, func(mp mapping) bool { return mp.channel == c })
		}
		c.bound = nil
		c.uid = ""
		c.manager = nil
	}
	m.channels = nil
	m.byUID = make(map[string]*Channel)
}

func (m *ChannelsManager) XukInAttributes(*xuk.Reader, xml.StartElement) error { return nil }

func (m *ChannelsManager) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	if !xuk.NewQName(groupChannels).Is(start.Name) {
		return r.Unknown(start)
	}
	return r.Children(start, func(child xml.StartElement) error {
		if !QNameChannel.Is(child.Name) {
			return r.Unknown(child)
		}
		c := m.presentation.NewChannel("")
		if err := xuk.In(r, c, child); err != nil {
			return err
		}
		uid := c.uid
		c.uid = ""
		return m.addWithUID(c, uid)
	})
}

func (m *ChannelsManager) XukOutAttributes(*xuk.Writer, *xml.StartElement) error { return nil }

func (m *ChannelsManager) XukOutChildren(w *xuk.Writer) error {
	return w.Group(groupChannels, func() error {
		for _, c := range m.channels {
			if err := xuk.Out(w, c); err != nil {
				return err
			}
		}
		return nil
	})
}
