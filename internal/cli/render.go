package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/urakawa/pkg/core"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TreeRenderer prints presentations as an indented tree.
type TreeRenderer struct {
	w       io.Writer
	profile termenv.Profile
}

// NewTreeRenderer writes to w, with colours only when color is set.
func NewTreeRenderer(w io.Writer, color bool) *TreeRenderer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ColorProfile()
	}
	return &TreeRenderer{w: w, profile: profile}
}

func (r *TreeRenderer) paint(s, hex string) string {
	return termenv.String(s).Foreground(r.profile.Color(hex)).String()
}

// Render prints every presentation of pr.
func (r *TreeRenderer) Render(pr *core.Project) error {
	for i, p := range pr.Presentations() {
		if i > 0 {
			if _, err := fmt.Fprintln(r.w); err != nil {
				return err
			}
		}
		if err := r.RenderPresentation(p); err != nil {
			return err
		}
	}
	return nil
}

// RenderPresentation prints a heading line followed by the node tree.
func (r *TreeRenderer) RenderPresentation(p *core.Presentation) error {
	head := fmt.Sprintf("Presentation (%d channels", p.ChannelsManager().Count())
	if lang := p.Language(); lang != "" {
		head += ", lang " + lang
	}
	head += ")"
	if _, err := fmt.Fprintln(r.w, r.paint(head, "#818cf8")); err != nil {
		return err
	}
	return r.node(p.RootNode(), "", "")
}

func (r *TreeRenderer) node(n *core.TreeNode, first, rest string) error {
	line := first + r.paint(NodeLabel(n), "#c084fc")
	if media := MediaSummary(n); media != "" {
		line += " " + r.paint(media, "#fb7185")
	}
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		return err
	}
	children := n.Children()
	for i, c := range children {
		branch, indent := "├─ ", "│  "
		if i == len(children)-1 {
			branch, indent = "└─ ", "   "
		}
		if err := r.node(c, rest+branch, rest+indent); err != nil {
			return err
		}
	}
	return nil
}

// NodeLabel names a node after its XML element, like <h1 id="c1">.
// Nodes without an XmlProperty are shown as "node".
func NodeLabel(n *core.TreeNode) string {
	xp, ok := n.XmlProperty()
	if !ok {
		return "node"
	}
	var sb strings.Builder
	sb.WriteString("<" + xp.LocalName())
	for _, a := range xp.Attributes() {
		fmt.Fprintf(&sb, " %s=%q", a.LocalName, a.Value)
	}
	sb.WriteString(">")
	return sb.String()
}

// MediaSummary lists the node's media as channel=value pairs, ordered by
// channel name.
func MediaSummary(n *core.TreeNode) string {
	cp, ok := n.ChannelsProperty()
	if !ok {
		return ""
	}
	channels := cp.UsedChannels()
	sort.Slice(channels, func(i, j int) bool { return channels[i].Name() < channels[j].Name() })

	parts := make([]string, 0, len(channels))
	for _, c := range channels {
		m, _ := cp.Media(c)
		parts = append(parts, c.Name()+"="+DescribeMedia(m))
	}
	return strings.Join(parts, " ")
}

// DescribeMedia renders a media object on one line.
func DescribeMedia(m core.Media) string {
	switch m := m.(type) {
	case *core.TextMedia:
		return fmt.Sprintf("%q", m.Text())
	case *core.ExternalAudioMedia:
		if m.ClipEnd() > 0 {
			return fmt.Sprintf("%s[%s..%s]", m.Src(), m.ClipBegin(), m.ClipEnd())
		}
		return m.Src()
	case *core.ExternalImageMedia:
		w, h := m.Size()
		return fmt.Sprintf("%s(%dx%d)", m.Src(), w, h)
	default:
		return m.MediaType().String()
	}
}
