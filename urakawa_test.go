package urakawa_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/aretw0/urakawa"
	"github.com/aretw0/urakawa/pkg/adapters/memory"
	"github.com/aretw0/urakawa/pkg/core"
	"github.com/aretw0/urakawa/pkg/ports"
	"github.com/aretw0/urakawa/pkg/xuk"
)

func book(t *testing.T, audioSrc string) *core.Project {
	t.Helper()
	pr := core.NewProject()
	p := pr.NewPresentation(core.WithLanguage("en"))
	text := p.NewChannel("text", core.MediaTypeText)
	audio := p.NewChannel("audio", core.MediaTypeAudio)
	require.NoError(t, p.ChannelsManager().AddChannel(text))
	require.NoError(t, p.ChannelsManager().AddChannel(audio))

	um := p.UndoRedoManager()
	um.StartTransaction("heading", "")
	heading := p.NewTreeNode()
	cp := p.NewChannelsProperty()
	require.NoError(t, um.Execute(core.NewInsertChildCommand(p.RootNode(), heading, -1)))
	require.NoError(t, um.Execute(core.NewAddPropertyCommand(heading, cp)))
	require.NoError(t, um.Execute(core.NewSetMediaCommand(cp, text, core.NewTextMedia("Chapter 1"))))
	require.NoError(t, um.Execute(core.NewSetMediaCommand(cp, audio, core.NewExternalAudioMedia(audioSrc))))
	require.NoError(t, um.EndTransaction())
	return pr
}

func TestVersion(t *testing.T) {
	v := urakawa.Version()
	assert.NotEmpty(t, v)
	assert.Equal(t, strings.TrimSpace(v), v)
}

func TestMarshalRoundTrip(t *testing.T) {
	pr := book(t, "https://cdn.example.org/ch1.mp3")
	data, err := urakawa.Marshal(pr)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))

	got, err := urakawa.Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, got.ValueEquals(pr))

	_, err = urakawa.Marshal(nil)
	assert.ErrorIs(t, err, core.ErrNilArgument)
	_, err = urakawa.Unmarshal([]byte("<NotXuk/>"))
	assert.ErrorIs(t, err, xuk.ErrDeserializationFailed)
}

func TestWriteFileReadFile_RelativeMedia(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "audio", "ch1.mp3")
	src, err := urakawa.FileURI(audio)
	require.NoError(t, err)

	path := filepath.Join(dir, "book.xuk")
	require.NoError(t, urakawa.WriteFile(path, book(t, src.String())))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `Src="audio/ch1.mp3"`)

	got, err := urakawa.ReadFile(path)
	require.NoError(t, err)
	p, err := got.Presentation(0)
	require.NoError(t, err)
	node, err := p.RootNode().Child(0)
	require.NoError(t, err)
	cp, ok := node.ChannelsProperty()
	require.True(t, ok)
	m, ok := cp.Media(p.ChannelsManager().ChannelsByName("audio")[0])
	require.True(t, ok)
	assert.Equal(t, src.String(), m.(*core.ExternalAudioMedia).Src())

	_, err = urakawa.ReadFile(filepath.Join(dir, "missing.xuk"))
	assert.Error(t, err)
}

func TestRepository_Tracing(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	repo := urakawa.NewRepository(memory.NewStore(), urakawa.WithTracerProvider(tp))
	ctx := context.Background()

	pr := book(t, "https://cdn.example.org/ch1.mp3")
	require.NoError(t, repo.Save(ctx, "book", pr))
	got, err := repo.Load(ctx, "book")
	require.NoError(t, err)
	assert.True(t, got.ValueEquals(pr))

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"book"}, ids)

	_, err = repo.Load(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrDocumentNotFound)
	require.NoError(t, repo.Delete(ctx, "book"))

	spans := rec.Ended()
	require.Len(t, spans, 5)
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{
		"urakawa.Repository.Save",
		"urakawa.Repository.Load",
		"urakawa.Repository.List",
		"urakawa.Repository.Load",
		"urakawa.Repository.Delete",
	}, names)
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.Equal(t, codes.Error, spans[3].Status().Code)
	assert.Len(t, spans[3].Events(), 1, "the error is recorded on the span")
}

func TestRepository_CancelledContext(t *testing.T) {
	repo := urakawa.NewRepository(memory.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, "book", book(t, "a.mp3"))
	assert.ErrorIs(t, err, xuk.ErrProgressCancelled)
}

func TestRepository_StrictDecoding(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	doc := `<Xuk xmlns="http://www.daisy.org/urakawa/xuk/2.0"><Project><Extra/></Project></Xuk>`
	require.NoError(t, store.Save(ctx, "odd", []byte(doc)))

	_, err := urakawa.NewRepository(store).Load(ctx, "odd")
	assert.NoError(t, err)

	_, err = urakawa.NewRepository(store, urakawa.WithXukOptions(xuk.WithStrict(true))).Load(ctx, "odd")
	assert.ErrorIs(t, err, xuk.ErrUnknownQName)
}
