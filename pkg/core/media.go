package core

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/urakawa/pkg/xuk"
)

// MediaType classifies media so channels can restrict what they carry.
type MediaType int

const (
	MediaTypeAudio MediaType = iota + 1
	MediaTypeText
	MediaTypeImage
	MediaTypeVideo
)

var mediaTypeNames = map[MediaType]string{
	MediaTypeAudio: "audio",
	MediaTypeText:  "text",
	MediaTypeImage: "image",
	MediaTypeVideo: "video",
}

func (t MediaType) String() string {
	if name, ok := mediaTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MediaType(%d)", int(t))
}

// ParseMediaType is the inverse of MediaType.String.
func ParseMediaType(s string) (MediaType, error) {
	for t, name := range mediaTypeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown media type %q", s)
}

// Media is content bound to a channel of a ChannelsProperty.
type Media interface {
	xuk.Able
	MediaType() MediaType
	Copy() Media
	ValueEquals(other Media) bool
}

// TextMedia is inline text.
type TextMedia struct {
	text string
}

// NewTextMedia returns text media holding text.
func NewTextMedia(text string) *TextMedia {
	return &TextMedia{text: text}
}

func (m *TextMedia) Text() string        { return m.text }
func (m *TextMedia) SetText(text string) { m.text = text }

func (m *TextMedia) MediaType() MediaType { return MediaTypeText }

func (m *TextMedia) Copy() Media {
	return &TextMedia{text: m.text}
}

func (m *TextMedia) ValueEquals(other Media) bool {
	o, ok := other.(*TextMedia)
	return ok && o.text == m.text
}

func (m *TextMedia) XukQName() xuk.QName { return QNameTextMedia }
func (m *TextMedia) XukClear()           { m.text = "" }

func (m *TextMedia) XukInAttributes(*xuk.Reader, xml.StartElement) error { return nil }

func (m *TextMedia) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	if !xuk.NewQName(elemText).Is(start.Name) {
		return r.Unknown(start)
	}
	text, err := r.Text()
	if err != nil {
		return err
	}
	m.text = text
	return nil
}

func (m *TextMedia) XukOutAttributes(*xuk.Writer, *xml.StartElement) error { return nil }

func (m *TextMedia) XukOutChildren(w *xuk.Writer) error {
	return w.Text(elemText, m.text)
}

// ExternalAudioMedia references a clip of an audio file.
// A zero ClipEnd means the end of the file.
type ExternalAudioMedia struct {
	src       string
	clipBegin time.Duration
	clipEnd   time.Duration
}

// NewExternalAudioMedia returns media referencing the whole of src.
func NewExternalAudioMedia(src string) *ExternalAudioMedia {
	return &ExternalAudioMedia{src: src}
}

func (m *ExternalAudioMedia) Src() string              { return m.src }
func (m *ExternalAudioMedia) SetSrc(src string)        { m.src = src }
func (m *ExternalAudioMedia) ClipBegin() time.Duration { return m.clipBegin }
func (m *ExternalAudioMedia) ClipEnd() time.Duration   { return m.clipEnd }
func (m *ExternalAudioMedia) Duration() time.Duration  { return m.clipEnd - m.clipBegin }
func (m *ExternalAudioMedia) MediaType() MediaType     { return MediaTypeAudio }
func (m *ExternalAudioMedia) XukQName() xuk.QName      { return QNameExternalAudioMedia }
func (m *ExternalAudioMedia) XukClear()                { *m = ExternalAudioMedia{} }

func (m *ExternalAudioMedia) XukOutChildren(*xuk.Writer) error { return nil }

// SetClip sets the clip boundaries. end must not precede begin unless it is zero.
func (m *ExternalAudioMedia) SetClip(begin, end time.Duration) error {
	if begin < 0 || end < 0 || (end != 0 && end < begin) {
		return fmt.Errorf("invalid clip [%s, %s]", begin, end)
	}
	m.clipBegin, m.clipEnd = begin, end
	return nil
}

func (m *ExternalAudioMedia) Copy() Media {
	c := *m
	return &c
}

func (m *ExternalAudioMedia) ValueEquals(other Media) bool {
	o, ok := other.(*ExternalAudioMedia)
	return ok && *o == *m
}

func (m *ExternalAudioMedia) XukInAttributes(r *xuk.Reader, start xml.StartElement) error {
	src, _ := xuk.Attr(start, "Src")
	m.src = r.Resolve(src)
	var begin, end time.Duration
	var err error
	if v, ok := xuk.Attr(start, "ClipBegin"); ok {
		if begin, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("ClipBegin: %w", err)
		}
	}
	if v, ok := xuk.Attr(start, "ClipEnd"); ok {
		if end, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("ClipEnd: %w", err)
		}
	}
	return m.SetClip(begin, end)
}

func (m *ExternalAudioMedia) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	return r.Unknown(start)
}

func (m *ExternalAudioMedia) XukOutAttributes(w *xuk.Writer, start *xml.StartElement) error {
	xuk.AppendAttr(start, "Src", w.Relativize(m.src))
	if m.clipBegin != 0 {
		xuk.AppendAttr(start, "ClipBegin", m.clipBegin.String())
	}
	if m.clipEnd != 0 {
		xuk.AppendAttr(start, "ClipEnd", m.clipEnd.String())
	}
	return nil
}

// ExternalImageMedia references an image file. Zero dimensions mean unknown.
type ExternalImageMedia struct {
	src    string
	width  int
	height int
}

// NewExternalImageMedia returns media referencing src.
func NewExternalImageMedia(src string, width, height int) *ExternalImageMedia {
	return &ExternalImageMedia{src: src, width: width, height: height}
}

func (m *ExternalImageMedia) Src() string               { return m.src }
func (m *ExternalImageMedia) SetSrc(src string)         { m.src = src }
func (m *ExternalImageMedia) Size() (width, height int) { return m.width, m.height }
func (m *ExternalImageMedia) MediaType() MediaType      { return MediaTypeImage }
func (m *ExternalImageMedia) XukQName() xuk.QName       { return QNameExternalImageMedia }
func (m *ExternalImageMedia) XukClear()                 { *m = ExternalImageMedia{} }

func (m *ExternalImageMedia) XukOutChildren(*xuk.Writer) error { return nil }

func (m *ExternalImageMedia) Copy() Media {
	c := *m
	return &c
}

func (m *ExternalImageMedia) ValueEquals(other Media) bool {
	o, ok := other.(*ExternalImageMedia)
	return ok && *o == *m
}

func (m *ExternalImageMedia) XukInAttributes(r *xuk.Reader, start xml.StartElement) error {
	src, _ := xuk.Attr(start, "Src")
	m.src = r.Resolve(src)
	for _, dim := range []struct {
		name string
		dst  *int
	}{{"Width", &m.width}, {"Height", &m.height}} {
		v, ok := xuk.Attr(start, dim.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s %q", dim.name, v)
		}
		*dim.dst = n
	}
	return nil
}

func (m *ExternalImageMedia) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	return r.Unknown(start)
}

func (m *ExternalImageMedia) XukOutAttributes(w *xuk.Writer, start *xml.StartElement) error {
	xuk.AppendAttr(start, "Src", w.Relativize(m.src))
	if m.width > 0 {
		xuk.AppendAttr(start, "Width", strconv.Itoa(m.width))
	}
	if m.height > 0 {
		xuk.AppendAttr(start, "Height", strconv.Itoa(m.height))
	}
	return nil
}
