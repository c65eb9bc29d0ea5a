/*
Package urakawa reads, writes and stores multi-channel publications in the
XUK format.

A publication is a [core.Project]: one or more presentations, each a tree of
nodes whose properties carry XML structure and per-channel media (text,
audio clips, images). Edits go through commands on the presentation's undo
manager, so they can be undone, redone and grouped in transactions.

# Usage

	pr := core.NewProject()
	p := pr.NewPresentation(core.WithLanguage("en"))
	text := p.NewChannel("text", core.MediaTypeText)
	_ = p.ChannelsManager().AddChannel(text)

	heading := p.NewTreeNode()
	cp := p.NewChannelsProperty()
	um := p.UndoRedoManager()
	um.StartTransaction("heading", "add the first heading")
	_ = um.Execute(core.NewInsertChildCommand(p.RootNode(), heading, -1))
	_ = um.Execute(core.NewAddPropertyCommand(heading, cp))
	_ = um.Execute(core.NewSetMediaCommand(cp, text, core.NewTextMedia("Chapter 1")))
	_ = um.EndTransaction()

	if err := urakawa.WriteFile("book.xuk", pr); err != nil {
		log.Fatal(err)
	}

# Storage

[Repository] saves projects by ID in any [ports.DocumentStore]: memory, file,
SQLite, Badger or Redis (see pkg/adapters). Operations are traced with
OpenTelemetry when a tracer provider is configured. For concurrent editors of
the same document, pkg/workspace serializes access per ID.
*/
package urakawa
