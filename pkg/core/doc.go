/*
Package core is the document model of a multi-channel publication.

A [Project] holds one or more [Presentation] values. A Presentation is the
explicit context every other object is created through: it owns the tree of
[TreeNode] values, the [ChannelsManager] registry, the property and media
factories used when reading XUK, and the [undo.Manager] through which all
reversible edits should go.

Nodes carry at most one [Property] of each concrete type: an [XmlProperty]
holding structural markup, and a [ChannelsProperty] binding one [Media] per
[Channel].

	p := core.NewPresentation()
	audio := p.NewChannel("audio", core.MediaTypeAudio)
	_ = p.ChannelsManager().AddChannel(audio)

	chapter := p.NewTreeNode()
	cp := p.NewChannelsProperty()
	_ = chapter.AddProperty(cp)
	_ = p.UndoRedoManager().Execute(core.NewSetMediaCommand(cp, audio, core.NewExternalAudioMedia("ch1.mp3")))

Mutations publish typed events on [Presentation.Events] after they complete.
None of the types in this package are safe for concurrent use.
*/
package core
