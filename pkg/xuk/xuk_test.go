package xuk_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/aretw0/urakawa/pkg/xuk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shelf is a minimal Able with polymorphic children resolved through a Factory.
type shelf struct {
	label   string
	items   []xuk.Able
	factory *xuk.Factory[xuk.Able]
}

type book struct{ title string }

type tape struct{ seconds string }

func newShelf() *shelf {
	f := xuk.NewFactory[xuk.Able]()
	f.Register(xuk.NewQName("Book"), func() xuk.Able { return &book{} })
	f.Register(xuk.NewQName("Tape"), func() xuk.Able { return &tape{} })
	return &shelf{factory: f}
}

func (s *shelf) XukQName() xuk.QName { return xuk.NewQName("Shelf") }
func (s *shelf) XukClear()           { s.label, s.items = "", nil }

func (s *shelf) XukInAttributes(r *xuk.Reader, start xml.StartElement) error {
	s.label, _ = xuk.Attr(start, "Label")
	return nil
}

func (s *shelf) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	if !xuk.NewQName("Items").Is(start.Name) {
		return r.Unknown(start)
	}
	return r.Children(start, func(child xml.StartElement) error {
		item, ok := s.factory.New(xuk.QNameOf(child.Name))
		if !ok {
			return r.Unknown(child)
		}
		if err := xuk.In(r, item, child); err != nil {
			return err
		}
		s.items = append(s.items, item)
		return nil
	})
}

func (s *shelf) XukOutAttributes(w *xuk.Writer, start *xml.StartElement) error {
	xuk.AppendAttr(start, "Label", s.label)
	return nil
}

func (s *shelf) XukOutChildren(w *xuk.Writer) error {
	return w.Group("Items", func() error {
		for _, item := range s.items {
			if err := xuk.Out(w, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *book) XukQName() xuk.QName { return xuk.NewQName("Book") }
func (b *book) XukClear()           { b.title = "" }
func (b *book) XukInAttributes(r *xuk.Reader, start xml.StartElement) error {
	return nil
}
func (b *book) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	if xuk.NewQName("Title").Is(start.Name) {
		text, err := r.Text()
		b.title = text
		return err
	}
	return r.Unknown(start)
}
func (b *book) XukOutAttributes(w *xuk.Writer, start *xml.StartElement) error { return nil }
func (b *book) XukOutChildren(w *xuk.Writer) error {
	return w.Text("Title", b.title)
}

func (t *tape) XukQName() xuk.QName { return xuk.NewQName("Tape") }
func (t *tape) XukClear()           { t.seconds = "" }
func (t *tape) XukInAttributes(r *xuk.Reader, start xml.StartElement) error {
	t.seconds, _ = xuk.Attr(start, "Seconds")
	return nil
}
func (t *tape) XukInChild(r *xuk.Reader, start xml.StartElement) error { return r.Unknown(start) }
func (t *tape) XukOutAttributes(w *xuk.Writer, start *xml.StartElement) error {
	xuk.AppendAttr(start, "Seconds", t.seconds)
	return nil
}
func (t *tape) XukOutChildren(w *xuk.Writer) error { return nil }

// lazy never consumes its children, which the engine must reject.
type lazy struct{}

func (l *lazy) XukQName() xuk.QName                                         { return xuk.NewQName("Shelf") }
func (l *lazy) XukClear()                                                   {}
func (l *lazy) XukInAttributes(r *xuk.Reader, start xml.StartElement) error { return nil }
func (l *lazy) XukInChild(r *xuk.Reader, start xml.StartElement) error      { return nil }
func (l *lazy) XukOutAttributes(w *xuk.Writer, start *xml.StartElement) error {
	return nil
}
func (l *lazy) XukOutChildren(w *xuk.Writer) error { return nil }

func sampleShelf() *shelf {
	s := newShelf()
	s.label = "fiction & more"
	s.items = []xuk.Able{&book{title: "Dune <1965>"}, &tape{seconds: "90"}, &book{title: ""}}
	return s
}

func TestDocument_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xuk.WriteDocument(&buf, sampleShelf(), xuk.WithIndent("  ")))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Equal(t, 1, strings.Count(out, `xmlns="`+xuk.Namespace+`"`), "namespace declared once: %s", out)

	got := newShelf()
	require.NoError(t, xuk.ReadDocument(&buf, got))
	assert.Equal(t, "fiction & more", got.label)
	require.Len(t, got.items, 3)
	assert.Equal(t, "Dune <1965>", got.items[0].(*book).title)
	assert.Equal(t, "90", got.items[1].(*tape).seconds)
	assert.Equal(t, "", got.items[2].(*book).title)
}

func TestIn_ClearsPriorState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xuk.WriteDocument(&buf, sampleShelf()))

	got := newShelf()
	got.items = []xuk.Able{&tape{seconds: "1"}}
	require.NoError(t, xuk.ReadDocument(&buf, got))
	assert.Len(t, got.items, 3)
}

const withUnknown = `<?xml version="1.0"?>
<Xuk xmlns="` + xuk.Namespace + `">
  <Shelf Label="x">
    <Items>
      <Book><Title>A</Title><Blurb><p>nested</p></Blurb></Book>
      <Vinyl Rpm="33"><Side/></Vinyl>
      <Tape Seconds="5"/>
    </Items>
    <Future/>
  </Shelf>
</Xuk>`

func TestReadDocument_SkipsUnknownWhenLenient(t *testing.T) {
	got := newShelf()
	require.NoError(t, xuk.ReadDocument(strings.NewReader(withUnknown), got))
	require.Len(t, got.items, 2)
	assert.Equal(t, "A", got.items[0].(*book).title)
	assert.Equal(t, "5", got.items[1].(*tape).seconds)
}

func TestReadDocument_UnknownIsErrorWhenStrict(t *testing.T) {
	err := xuk.ReadDocument(strings.NewReader(withUnknown), newShelf(), xuk.WithStrict(true))
	require.Error(t, err)
	assert.ErrorIs(t, err, xuk.ErrDeserializationFailed)
	assert.ErrorIs(t, err, xuk.ErrUnknownQName)
}

func TestReadDocument_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"premature EOF", `<Xuk xmlns="` + xuk.Namespace + `"><Shelf><Items>`},
		{"wrong root", `<Other/>`},
		{"wrong top-level object", `<Xuk xmlns="` + xuk.Namespace + `"><Book/></Xuk>`},
		{"two top-level objects", `<Xuk xmlns="` + xuk.Namespace + `"><Shelf/><Shelf/></Xuk>`},
		{"empty envelope", `<Xuk xmlns="` + xuk.Namespace + `"></Xuk>`},
		{"wrong namespace", `<Xuk xmlns="urn:other"><Shelf/></Xuk>`},
		{"mismatched tags", `<Xuk xmlns="` + xuk.Namespace + `"><Shelf></Items></Xuk>`},
		{"nested element in text", `<Xuk xmlns="` + xuk.Namespace + `"><Shelf><Items><Book><Title>a<b/></Title></Book></Items></Shelf></Xuk>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := xuk.ReadDocument(strings.NewReader(tt.doc), newShelf())
			assert.ErrorIs(t, err, xuk.ErrDeserializationFailed)
		})
	}
}

func TestIn_RejectsUnconsumedChild(t *testing.T) {
	doc := `<Xuk xmlns="` + xuk.Namespace + `"><Shelf><Items/></Shelf></Xuk>`
	err := xuk.ReadDocument(strings.NewReader(doc), &lazy{})
	assert.ErrorIs(t, err, xuk.ErrDeserializationFailed)
	assert.Contains(t, err.Error(), "not fully consumed")
}

func TestProgress_CancelRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xuk.WriteDocument(&buf, sampleShelf()))

	polls := 0
	cancelAfter := func() bool {
		polls++
		return polls > 2
	}
	err := xuk.ReadDocument(&buf, newShelf(), xuk.WithProgress(cancelAfter))
	assert.ErrorIs(t, err, xuk.ErrProgressCancelled)
	assert.ErrorIs(t, err, xuk.ErrDeserializationFailed)
}

func TestProgress_CancelWrite(t *testing.T) {
	var buf bytes.Buffer
	err := xuk.WriteDocument(&buf, sampleShelf(), xuk.WithProgress(func() bool { return true }))
	assert.ErrorIs(t, err, xuk.ErrProgressCancelled)
	assert.ErrorIs(t, err, xuk.ErrSerializationFailed)
}

func TestFactory(t *testing.T) {
	f := xuk.NewFactory[string]()
	f.Register(xuk.NewQName("B"), func() string { return "b" })
	f.Register(xuk.QName{Space: "urn:x", Local: "A"}, func() string { return "a" })

	v, ok := f.New(xuk.NewQName("B"))
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = f.New(xuk.NewQName("Missing"))
	assert.False(t, ok)
	assert.True(t, f.Has(xuk.QName{Space: "urn:x", Local: "A"}))
	assert.Equal(t, []xuk.QName{xuk.NewQName("B"), {Space: "urn:x", Local: "A"}}, f.QNames())
}
