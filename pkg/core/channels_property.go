package core

import (
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/aretw0/urakawa/pkg/xuk"
)

type mapping struct {
	channel *Channel
	media   Media
}

// ChannelsProperty binds at most one Media per Channel of its presentation.
type ChannelsProperty struct {
	PropertyBase
	mappings []mapping
}

func (p *ChannelsProperty) indexOf(c *Channel) int {
	return slices.IndexFunc(p.mappings, func(m mapping) bool { return m.channel == c })
}

// Media returns the media bound to c.
func (p *ChannelsProperty) Media(c *Channel) (Media, bool) {
	if i := p.indexOf(c); i >= 0 {
		return p.mappings[i].media, true
	}
	return nil, false
}

// SetMedia binds m to c, replacing any previous binding. A nil m removes the
// binding. c must be registered with the property's presentation and must
// support the media's type.
func (p *ChannelsProperty) SetMedia(c *Channel, m Media) error {
	if c == nil {
		return ErrNilArgument
	}
	if p.presentation == nil || !p.presentation.channels.IsManaged(c) {
		return fmt.Errorf("%w: %s", ErrChannelDoesNotExist, c.name)
	}
	if m != nil && !c.Supports(m.MediaType()) {
		return fmt.Errorf("%w: %s media on channel %q", ErrMediaTypeIsIllegal, m.MediaType(), c.name)
	}

	var prev Media
	i := p.indexOf(c)
	switch {
	case i >= 0 && m == nil:
		prev = p.mappings[i].media
		p.mappings = slices.Delete(p.mappings, i, i+1)
		c.unbind(p)
	case i >= 0:
		prev = p.mappings[i].media
		p.mappings[i].media = m
	case m != nil:
		p.mappings = append(p.mappings, mapping{channel: c, media: m})
		c.bind(p)
	default:
		return nil
	}
	p.presentation.publish(MediaSet{Property: p, Channel: c, Media: m, Previous: prev})
	return nil
}

func (c *Channel) bind(p *ChannelsProperty) {
	if !slices.Contains(c.bound, p) {
		c.bound = append(c.bound, p)
	}
}

func (c *Channel) unbind(p *ChannelsProperty) {
	c.bound = slices.DeleteFunc(c.bound, func(q *ChannelsProperty) bool { return q == p })
}

// UsedChannels returns the channels with a binding, in binding order.
func (p *ChannelsProperty) UsedChannels() []*Channel {
	out := make([]*Channel, len(p.mappings))
	for i, m := range p.mappings {
		out[i] = m.channel
	}
	return out
}

// CanBeAddedTo accepts nodes without a ChannelsProperty.
func (p *ChannelsProperty) CanBeAddedTo(n *TreeNode) bool {
	_, exists := PropertyOf[*ChannelsProperty](n)
	return !exists
}

// Copy copies the bindings with deep copies of the media. The copy refers to
// the same channels.
func (p *ChannelsProperty) Copy() Property {
	c := &ChannelsProperty{PropertyBase: PropertyBase{presentation: p.presentation}}
	for _, m := range p.mappings {
		c.mappings = append(c.mappings, mapping{channel: m.channel, media: m.media.Copy()})
		m.channel.bind(c)
	}
	return c
}

// ValueEquals compares bindings by channel value and media value, so
// properties of different presentations can be compared.
func (p *ChannelsProperty) ValueEquals(other Property) bool {
	o, ok := other.(*ChannelsProperty)
	if !ok || len(o.mappings) != len(p.mappings) {
		return false
	}
	for i, m := range p.mappings {
		om := o.mappings[i]
		if !m.channel.ValueEquals(om.channel) || !m.media.ValueEquals(om.media) {
			return false
		}
	}
	return true
}

func (p *ChannelsProperty) XukQName() xuk.QName { return QNameChannelsProperty }

func (p *ChannelsProperty) XukClear() {
	for _, m := range p.mappings {
		m.channel.unbind(p)
	}
	p.mappings = nil
}

func (p *ChannelsProperty) XukInAttributes(*xuk.Reader, xml.StartElement) error { return nil }

func (p *ChannelsProperty) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	if !xuk.NewQName(groupChannelMappings).Is(start.Name) {
		return r.Unknown(start)
	}
	return r.Children(start, func(child xml.StartElement) error {
		if !xuk.NewQName(elemChannelMapping).Is(child.Name) {
			return r.Unknown(child)
		}
		return p.readMapping(r, child)
	})
}

func (p *ChannelsProperty) readMapping(r *xuk.Reader, start xml.StartElement) error {
	uid, _ := xuk.Attr(start, "Channel")
	c, ok := p.presentation.channels.Channel(uid)
	if !ok {
		return fmt.Errorf("%w: uid %q", ErrChannelDoesNotExist, uid)
	}
	var media Media
	err := r.Children(start, func(child xml.StartElement) error {
		m, known := p.presentation.mediaFactory.New(xuk.QNameOf(child.Name))
		if !known {
			return r.Unknown(child)
		}
		if media != nil {
			return fmt.Errorf("channel %q mapped to more than one media", uid)
		}
		if err := xuk.In(r, m, child); err != nil {
			return err
		}
		media = m
		return nil
	})
	if err != nil {
		return err
	}
	if media == nil {
		return nil
	}
	return p.SetMedia(c, media)
}

func (p *ChannelsProperty) XukOutAttributes(*xuk.Writer, *xml.StartElement) error { return nil }

func (p *ChannelsProperty) XukOutChildren(w *xuk.Writer) error {
	if len(p.mappings) == 0 {
		return nil
	}
	return w.Group(groupChannelMappings, func() error {
		for _, m := range p.mappings {
			if !p.presentation.channels.IsManaged(m.channel) {
				return fmt.Errorf("%w: %s", ErrChannelDoesNotExist, m.channel.name)
			}
			attrs := []xml.Attr{xuk.NewAttr("Channel", m.channel.uid)}
			err := w.GroupAttrs(elemChannelMapping, attrs, func() error {
				return xuk.Out(w, m.media)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
