package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/urakawa/pkg/core"
)

// Markdown describes pr as a markdown document: counts, a channel table and
// the node outline of each presentation.
func Markdown(title string, pr *core.Project) string {
	var sb strings.Builder
	st := Collect(pr)
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "%d presentation(s), %d node(s), %d media object(s).\n", st.Presentations, st.Nodes, st.Media)

	for i, p := range pr.Presentations() {
		fmt.Fprintf(&sb, "\n## Presentation %d\n\n", i+1)
		if lang := p.Language(); lang != "" {
			fmt.Fprintf(&sb, "- Language: %s\n", lang)
		}
		if uri := p.RootURI(); uri != nil {
			fmt.Fprintf(&sb, "- Root URI: %s\n", uri)
		}

		sb.WriteString("\n### Channels\n\n")
		if p.ChannelsManager().Count() == 0 {
			sb.WriteString("_none_\n")
		} else {
			sb.WriteString("| Name | UID | Media types |\n|---|---|---|\n")
			for _, c := range p.ChannelsManager().Channels() {
				fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", c.Name(), c.UID(), mediaTypes(c))
			}
		}

		sb.WriteString("\n### Structure\n\n")
		outline(&sb, p.RootNode(), 0)
	}
	return sb.String()
}

func mediaTypes(c *core.Channel) string {
	types := c.SupportedMediaTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func outline(sb *strings.Builder, n *core.TreeNode, depth int) {
	fmt.Fprintf(sb, "%s- `%s`", strings.Repeat("  ", depth), NodeLabel(n))
	if media := MediaSummary(n); media != "" {
		sb.WriteString(" " + media)
	}
	sb.WriteString("\n")
	for _, c := range n.Children() {
		outline(sb, c, depth+1)
	}
}

// RenderMarkdown formats markdown for the terminal. Styled output adapts to
// the terminal background; otherwise the plain notty style is used.
func RenderMarkdown(markdown string, styled bool) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
