package urakawa_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/urakawa"
	"github.com/aretw0/urakawa/pkg/adapters/memory"
	"github.com/aretw0/urakawa/pkg/core"
)

// ExampleMarshal builds a one-heading book, encodes it and reads it back.
func ExampleMarshal() {
	pr := core.NewProject()
	p := pr.NewPresentation(core.WithLanguage("en"))
	text := p.NewChannel("text", core.MediaTypeText)
	if err := p.ChannelsManager().AddChannel(text); err != nil {
		log.Fatal(err)
	}

	heading := p.NewTreeNode()
	cp := p.NewChannelsProperty()
	if err := heading.AddProperty(cp); err != nil {
		log.Fatal(err)
	}
	if err := cp.SetMedia(text, core.NewTextMedia("Chapter 1")); err != nil {
		log.Fatal(err)
	}
	if err := p.RootNode().AppendChild(heading); err != nil {
		log.Fatal(err)
	}

	data, err := urakawa.Marshal(pr)
	if err != nil {
		log.Fatal(err)
	}
	decoded, err := urakawa.Unmarshal(data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("equal:", decoded.ValueEquals(pr))
	// Output: equal: true
}

// ExampleRepository stores a project by ID and loads it again.
func ExampleRepository() {
	repo := urakawa.NewRepository(memory.NewStore())
	ctx := context.Background()

	pr := core.NewProject()
	pr.NewPresentation(core.WithLanguage("pt-BR"))
	if err := repo.Save(ctx, "livro", pr); err != nil {
		log.Fatal(err)
	}

	loaded, err := repo.Load(ctx, "livro")
	if err != nil {
		log.Fatal(err)
	}
	p, _ := loaded.Presentation(0)
	fmt.Println(p.Language())
	// Output: pt-BR
}
