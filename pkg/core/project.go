package core

import (
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/aretw0/urakawa/pkg/xuk"
)

// Project is the top-level container persisted in a XUK document.
type Project struct {
	presentations []*Presentation
	opts          []PresentationOption
}

// NewProject creates an empty project. opts are applied to every presentation
// the project creates, including those created while reading.
func NewProject(opts ...PresentationOption) *Project {
	return &Project{opts: opts}
}

// NewPresentation creates a presentation and adds it to the project.
func (pr *Project) NewPresentation(opts ...PresentationOption) *Presentation {
	p := NewPresentation(append(slices.Clone(pr.opts), opts...)...)
	p.project = pr
	pr.presentations = append(pr.presentations, p)
	return p
}

// AddPresentation adds a presentation created elsewhere.
func (pr *Project) AddPresentation(p *Presentation) error {
	if p == nil {
		return ErrNilArgument
	}
	if p.project != nil {
		return fmt.Errorf("presentation already belongs to a project")
	}
	p.project = pr
	pr.presentations = append(pr.presentations, p)
	return nil
}

// RemovePresentation removes p and reports whether it was part of the project.
func (pr *Project) RemovePresentation(p *Presentation) bool {
	i := slices.Index(pr.presentations, p)
	if i < 0 {
		return false
	}
	pr.presentations = slices.Delete(pr.presentations, i, i+1)
	p.project = nil
	return true
}

// Presentation returns the presentation at index.
func (pr *Project) Presentation(index int) (*Presentation, error) {
	if index < 0 || index >= len(pr.presentations) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, index, len(pr.presentations))
	}
	return pr.presentations[index], nil
}

// Presentations returns a copy of the presentation list.
func (pr *Project) Presentations() []*Presentation {
	return slices.Clone(pr.presentations)
}

// PresentationCount returns the number of presentations.
func (pr *Project) PresentationCount() int { return len(pr.presentations) }

// ValueEquals compares the presentations pairwise in order.
func (pr *Project) ValueEquals(other *Project) bool {
	if other == nil || len(pr.presentations) != len(other.presentations) {
		return false
	}
	for i, p := range pr.presentations {
		if !p.ValueEquals(other.presentations[i]) {
			return false
		}
	}
	return true
}

func (pr *Project) XukQName() xuk.QName { return QNameProject }

func (pr *Project) XukClear() {
	for _, p := range pr.presentations {
		p.project = nil
	}
	pr.presentations = nil
}

func (pr *Project) XukInAttributes(*xuk.Reader, xml.StartElement) error { return nil }

func (pr *Project) XukInChild(r *xuk.Reader, start xml.StartElement) error {
	if !xuk.NewQName(groupPresentations).Is(start.Name) {
		return r.Unknown(start)
	}
	return r.Children(start, func(child xml.StartElement) error {
		if !QNamePresentation.Is(child.Name) {
			return r.Unknown(child)
		}
		return xuk.In(r, pr.NewPresentation(), child)
	})
}

func (pr *Project) XukOutAttributes(*xuk.Writer, *xml.StartElement) error { return nil }

func (pr *Project) XukOutChildren(w *xuk.Writer) error {
	return w.Group(groupPresentations, func() error {
		for _, p := range pr.presentations {
			if err := xuk.Out(w, p); err != nil {
				return err
			}
		}
		return nil
	})
}
