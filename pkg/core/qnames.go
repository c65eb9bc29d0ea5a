package core

import "github.com/aretw0/urakawa/pkg/xuk"

// Element names of the model objects and of their wrapper elements.
var (
	QNameProject            = xuk.NewQName("Project")
	QNamePresentation       = xuk.NewQName("Presentation")
	QNameTreeNode           = xuk.NewQName("TreeNode")
	QNameXmlProperty        = xuk.NewQName("XmlProperty")
	QNameChannelsProperty   = xuk.NewQName("ChannelsProperty")
	QNameChannelsManager    = xuk.NewQName("ChannelsManager")
	QNameChannel            = xuk.NewQName("Channel")
	QNameTextMedia          = xuk.NewQName("TextMedia")
	QNameExternalAudioMedia = xuk.NewQName("ExternalAudioMedia")
	QNameExternalImageMedia = xuk.NewQName("ExternalImageMedia")
)

const (
	groupPresentations   = "Presentations"
	groupRootNode        = "RootNode"
	groupProperties      = "Properties"
	groupChildren        = "Children"
	groupChannels        = "Channels"
	groupChannelMappings = "ChannelMappings"
	groupXmlAttributes   = "XmlAttributes"
	elemChannelMapping   = "ChannelMapping"
	elemXmlAttribute     = "XmlAttribute"
	elemText             = "Text"
)
