package core

import (
	"encoding/xml"
	"errors"
	"slices"
	"strings"

	"github.com/aretw0/urakawa/pkg/xuk"
)

var errMissingUID = errors.New("channel has no Uid")

// Channel is a named stream of media, such as the audio narration or the text
// of a publication. A channel gets its UID when a ChannelsManager registers it.
type Channel struct {
	presentation *Presentation
	manager      *ChannelsManager
	uid          string
	name         string
	supported    []MediaType
	bound        []*ChannelsProperty
}

// Presentation returns the presentation that created the channel.
func (c *Channel) Presentation() *Presentation { return c.presentation }

// UID returns the identifier assigned at registration, or "" when unregistered.
func (c *Channel) UID() string { return c.uid }

// Name returns the informational name of the channel. Names need not be unique.
func (c *Channel) Name() string { return c.name }

// SetName renames the channel.
func (c *Channel) SetName(name string) { c.name = name }

// IsRegistered reports whether a ChannelsManager holds the channel.
func (c *Channel) IsRegistered() bool { return c.manager != nil }

// SupportedMediaTypes returns the media types the channel accepts, sorted.
func (c *Channel) SupportedMediaTypes() []MediaType {
	return slices.Clone(c.supported)
}

// SetSupportedMediaTypes replaces the accepted media types. Existing bindings
// are not revalidated.
func (c *Channel) SetSupportedMediaTypes(types ...MediaType) {
	c.supported = normalizeMediaTypes(types)
}

// Supports reports whether media of type t may be bound to the channel.
func (c *Channel) Supports(t MediaType) bool {
	_, found := slices.BinarySearch(c.supported, t)
	return found
}

// ValueEquals compares name and supported media types. UIDs are not compared,
// so equal channels of two presentations match.
func (c *Channel) ValueEquals(other *Channel) bool {
	if other == nil {
		return false
	}
	return c.name == other.name && slices.Equal(c.supported, other.supported)
}

func normalizeMediaTypes(types []MediaType) []MediaType {
	out := slices.Clone(types)
	slices.Sort(out)
	return slices.Compact(out)
}

func (c *Channel) XukQName() xuk.QName { return QNameChannel }

func (c *Channel) XukClear() {
	c.uid = ""
	c.name = ""
	c.supported = nil
}

func (c *Channel) XukInAttributes(_ *xuk.Reader, start xml.StartElement) error {
	uid, ok := xuk.Attr(start, "Uid")
	if !ok || uid == "" {
		return errMissingUID
	}
	c.uid = uid
	c.name, _ = xuk.Attr(start, "Name")

	var types []MediaType
	if v, ok := xuk.Attr(start, "MediaTypes"); ok {
		for _, field := range strings.Fields(v) {
			t, err := ParseMediaType(field)
			if err != nil {
				return err
			}
			types = append(types, t)
		}
	}
	c.supported = normalizeMediaTypes(types)
	return nil
}

func (c *Channel) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	return r.Unknown(start)
}

func (c *Channel) XukOutAttributes(_ *xuk.Writer, start *xml.StartElement) error {
	xuk.AppendAttr(start, "Uid", c.uid)
	xuk.AppendAttr(start, "Name", c.name)
	names := make([]string, len(c.supported))
	for i, t := range c.supported {
		names[i] = t.String()
	}
	xuk.AppendAttr(start, "MediaTypes", strings.Join(names, " "))
	return nil
}

func (c *Channel) XukOutChildren(*xuk.Writer) error { return nil }
