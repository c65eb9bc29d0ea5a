package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/urakawa"
	"github.com/aretw0/urakawa/pkg/core"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	pr := core.NewProject()
	p := pr.NewPresentation()
	text := p.NewChannel("text", core.MediaTypeText)
	require.NoError(t, p.ChannelsManager().AddChannel(text))
	node := p.NewTreeNode()
	cp := p.NewChannelsProperty()
	require.NoError(t, node.AddProperty(cp))
	require.NoError(t, cp.SetMedia(text, core.NewTextMedia("Hello")))
	require.NoError(t, p.RootNode().AppendChild(node))

	path := filepath.Join(dir, "book.xuk")
	require.NoError(t, urakawa.WriteFile(path, pr))
	return path
}

func TestCLI_FileCommands(t *testing.T) {
	path := writeSample(t, t.TempDir())

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 presentation(s), 2 node(s), 1 channel(s), 1 media object(s)")

	out, err = run(t, "inspect", path, "--format", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, `└─ node text="Hello"`)

	out, err = run(t, "channels", path)
	require.NoError(t, err)
	assert.Contains(t, out, "MEDIA TYPES")
	assert.Contains(t, out, "text")

	_, err = run(t, "inspect", path, "--format", "yaml")
	assert.Error(t, err)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "urakawa version "+urakawa.Version())
}

func TestCLI_ValidateRejectsUnknownElements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.xuk")
	doc := `<Xuk xmlns="http://www.daisy.org/urakawa/xuk/2.0"><Project><Extra/></Project></Xuk>`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := run(t, "validate", path)
	assert.ErrorContains(t, err, "validation failed")
}

func TestCLI_Store(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)
	t.Setenv("URAKAWA_STORE_BACKEND", "file")
	t.Setenv("URAKAWA_STORE_DIR", filepath.Join(dir, "store"))

	out, err := run(t, "store", "put", path, "--id", "book")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored")

	out, err = run(t, "store", "add-channel", "book", "audio", "audio")
	require.NoError(t, err)
	assert.Contains(t, out, "Added channel 'audio'")

	out, err = run(t, "store", "list")
	require.NoError(t, err)
	assert.Equal(t, "- book\n", out)

	export := filepath.Join(dir, "export.xuk")
	_, err = run(t, "store", "get", "book", "-o", export)
	require.NoError(t, err)
	pr, err := urakawa.ReadFile(export)
	require.NoError(t, err)
	p, err := pr.Presentation(0)
	require.NoError(t, err)
	assert.Equal(t, 2, p.ChannelsManager().Count())

	_, err = run(t, "store", "rm", "book")
	require.NoError(t, err)
	out, err = run(t, "store", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")

	_, err = run(t, "store", "add-channel", "book", "video", "hologram")
	assert.Error(t, err)
}
