package cli

import "github.com/aretw0/urakawa/pkg/core"

// Stats counts what a project contains.
type Stats struct {
	Presentations int
	Nodes         int
	Properties    int
	Channels      int
	Media         int
}

// Collect walks every presentation of pr.
func Collect(pr *core.Project) Stats {
	s := Stats{Presentations: pr.PresentationCount()}
	for _, p := range pr.Presentations() {
		s.Channels += p.ChannelsManager().Count()
		p.RootNode().Walk(func(n *core.TreeNode) bool {
			s.Nodes++
			s.Properties += n.PropertyCount()
			if cp, ok := n.ChannelsProperty(); ok {
				s.Media += len(cp.UsedChannels())
			}
			return true
		})
	}
	return s
}
