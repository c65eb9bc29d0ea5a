package core

import (
	"encoding/xml"
	"net/url"

	"github.com/aretw0/urakawa/pkg/event"
	"github.com/aretw0/urakawa/pkg/undo"
	"github.com/aretw0/urakawa/pkg/xuk"
)

// Presentation is one rendition of a publication and the factory for every
// object in it.
type Presentation struct {
	project         *Project
	root            *TreeNode
	channels        *ChannelsManager
	undoManager     *undo.Manager
	propertyFactory *xuk.Factory[Property]
	mediaFactory    *xuk.Factory[Media]
	events          event.Bus[Event]
	rootURI         *url.URL
	language        string
}

// PresentationOption configures a new Presentation.
type PresentationOption func(*presentationConfig)

type presentationConfig struct {
	newUID   func() string
	rootURI  *url.URL
	language string
}

// WithUIDGenerator replaces the random UUIDs given to channels. The generator
// may return duplicates; the registry retries until it gets a fresh UID.
func WithUIDGenerator(fn func() string) PresentationOption {
	return func(c *presentationConfig) {
		c.newUID = fn
	}
}

// WithRootURI sets the location external media are stored relative to.
func WithRootURI(u *url.URL) PresentationOption {
	return func(c *presentationConfig) {
		c.rootURI = u
	}
}

// WithLanguage sets the presentation language, such as "en-US".
func WithLanguage(lang string) PresentationOption {
	return func(c *presentationConfig) {
		c.language = lang
	}
}

// NewPresentation creates a presentation with an empty root node and the
// built-in property and media types registered.
func NewPresentation(opts ...PresentationOption) *Presentation {
	var cfg presentationConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Presentation{
		undoManager:     undo.NewManager(),
		propertyFactory: xuk.NewFactory[Property](),
		mediaFactory:    xuk.NewFactory[Media](),
		rootURI:         cfg.rootURI,
		language:        cfg.language,
	}
	p.channels = newChannelsManager(p, cfg.newUID)

	p.propertyFactory.Register(QNameXmlProperty, func() Property { return p.NewXmlProperty() })
	p.propertyFactory.Register(QNameChannelsProperty, func() Property { return p.NewChannelsProperty() })
	p.mediaFactory.Register(QNameTextMedia, func() Media { return &TextMedia{} })
	p.mediaFactory.Register(QNameExternalAudioMedia, func() Media { return &ExternalAudioMedia{} })
	p.mediaFactory.Register(QNameExternalImageMedia, func() Media { return &ExternalImageMedia{} })

	p.root = p.NewTreeNode()
	return p
}

// Project returns the project the presentation belongs to, or nil.
func (p *Presentation) Project() *Project { return p.project }

// RootNode returns the root of the document tree.
func (p *Presentation) RootNode() *TreeNode { return p.root }

// SetRootNode replaces the root. The new root must come from p and be detached.
func (p *Presentation) SetRootNode(n *TreeNode) error {
	switch {
	case n == nil:
		return ErrNilArgument
	case n.presentation != p:
		return ErrPresentationMismatch
	case n.parent != nil:
		return ErrNodeAlreadyHasParent
	}
	p.root = n
	return nil
}

// ChannelsManager returns the channel registry.
func (p *Presentation) ChannelsManager() *ChannelsManager { return p.channels }

// UndoRedoManager returns the history every reversible edit should go through.
func (p *Presentation) UndoRedoManager() *undo.Manager { return p.undoManager }

// PropertyFactory returns the factory used to read properties. Register
// additional property types here before reading documents that use them.
func (p *Presentation) PropertyFactory() *xuk.Factory[Property] { return p.propertyFactory }

// MediaFactory returns the factory used to read media.
func (p *Presentation) MediaFactory() *xuk.Factory[Media] { return p.mediaFactory }

// Events returns the bus model mutations are published on.
func (p *Presentation) Events() *event.Bus[Event] { return &p.events }

func (p *Presentation) publish(e Event) { p.events.Publish(e) }

// RootURI returns the location external media are stored relative to, or nil.
func (p *Presentation) RootURI() *url.URL { return p.rootURI }

// SetRootURI changes the root URI.
func (p *Presentation) SetRootURI(u *url.URL) { p.rootURI = u }

// Language returns the presentation language.
func (p *Presentation) Language() string { return p.language }

// SetLanguage changes the presentation language.
func (p *Presentation) SetLanguage(lang string) { p.language = lang }

// NewTreeNode creates a detached node.
func (p *Presentation) NewTreeNode() *TreeNode {
	return &TreeNode{presentation: p}
}

// NewXmlProperty creates an unattached XmlProperty with no name.
func (p *Presentation) NewXmlProperty() *XmlProperty {
	return &XmlProperty{PropertyBase: PropertyBase{presentation: p}}
}

// NewChannelsProperty creates an unattached ChannelsProperty with no bindings.
func (p *Presentation) NewChannelsProperty() *ChannelsProperty {
	return &ChannelsProperty{PropertyBase: PropertyBase{presentation: p}}
}

// NewChannel creates an unregistered channel accepting the given media types.
// A channel created without types accepts nothing until
// SetSupportedMediaTypes is called.
func (p *Presentation) NewChannel(name string, types ...MediaType) *Channel {
	return &Channel{presentation: p, name: name, supported: normalizeMediaTypes(types)}
}

// ValueEquals compares language, channels and trees.
func (p *Presentation) ValueEquals(other *Presentation) bool {
	return other != nil &&
		p.language == other.language &&
		p.channels.ValueEquals(other.channels) &&
		p.root.ValueEquals(other.root)
}

func (p *Presentation) XukQName() xuk.QName { return QNamePresentation }

// XukClear resets the tree and the registry. The undo history is kept, though
// commands in it may no longer refer to live objects.
func (p *Presentation) XukClear() {
	p.channels.XukClear()
	p.root = p.NewTreeNode()
	p.language = ""
	p.rootURI = nil
}

func (p *Presentation) XukInAttributes(_ *xuk.Reader, start xml.StartElement) error {
	p.language, _ = xuk.Attr(start, "Language")
	if v, ok := xuk.Attr(start, "RootUri"); ok && v != "" {
		u, err := url.Parse(v)
		if err != nil {
			return err
		}
		p.rootURI = u
	}
	return nil
}

func (p *Presentation) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	switch {
	case QNameChannelsManager.Is(start.Name):
		return xuk.In(r, p.channels, start)
	case xuk.NewQName(groupRootNode).Is(start.Name):
		return r.Children(start, func(child xml.StartElement) error {
			if !QNameTreeNode.Is(child.Name) {
				return r.Unknown(child)
			}
			root := p.NewTreeNode()
			if err := xuk.In(r, root, child); err != nil {
				return err
			}
			p.root = root
			return nil
		})
	}
	return r.Unknown(start)
}

func (p *Presentation) XukOutAttributes(_ *xuk.Writer, start *xml.StartElement) error {
	if p.rootURI != nil {
		xuk.AppendAttr(start, "RootUri", p.rootURI.String())
	}
	xuk.AppendAttr(start, "Language", p.language)
	return nil
}

func (p *Presentation) XukOutChildren(w *xuk.Writer) error {
	if err := xuk.Out(w, p.channels); err != nil {
		return err
	}
	return w.Group(groupRootNode, func() error {
		return xuk.Out(w, p.root)
	})
}
