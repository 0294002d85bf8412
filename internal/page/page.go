// Package page models the wizard screen as a flat document of addressable
// elements. Elements are looked up by id or class, carry visibility, text and
// width, and dispatch click handlers in registration order.
package page

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNotFound is returned when an element id is not in the document.
	ErrNotFound = errors.New("element not found")
	// ErrDuplicateID is returned when two elements share an id.
	ErrDuplicateID = errors.New("duplicate element id")
)

// Kind classifies how an element is rendered.
type Kind string

const (
	KindPanel    Kind = "panel"
	KindButton   Kind = "button"
	KindText     Kind = "text"
	KindProgress Kind = "progress" // container around a bar
	KindBar      Kind = "bar"
	KindResults  Kind = "results"
)

// Element is a single addressable node of the document.
type Element struct {
	ID     string
	Kind   Kind
	Label  string
	Parent string

	hidden   bool
	text     string
	width    int
	classes  []string
	handlers []func()
	doc      *Document
}

// NewElement creates a visible element.
func NewElement(id string, kind Kind) *Element {
	return &Element{ID: id, Kind: kind}
}

// Hide marks the element hidden. Only used while building a document.
func (e *Element) Hide() *Element {
	e.hidden = true
	return e
}

// WithClasses adds classes to the element.
func (e *Element) WithClasses(classes ...string) *Element {
	for _, c := range classes {
		e.AddClass(c)
	}
	return e
}

// WithLabel sets the display label.
func (e *Element) WithLabel(label string) *Element {
	e.Label = label
	return e
}

// WithParent places the element inside another element.
func (e *Element) WithParent(parent string) *Element {
	e.Parent = parent
	return e
}

// WithText sets the initial text content.
func (e *Element) WithText(text string) *Element {
	e.text = text
	return e
}

// Visible reports whether the element is shown.
func (e *Element) Visible() bool { return !e.hidden }

// Reveal makes the element visible. Revealing a visible element does nothing.
func (e *Element) Reveal() {
	if !e.hidden {
		return
	}
	e.hidden = false
	e.changed()
}

// Text returns the text content.
func (e *Element) Text() string { return e.text }

// SetText replaces the text content.
func (e *Element) SetText(text string) {
	if e.text == text {
		return
	}
	e.text = text
	e.changed()
}

// Width returns the width in percent.
func (e *Element) Width() int { return e.width }

// SetWidth sets the width in percent, clamped to [0,100].
func (e *Element) SetWidth(pct int) {
	pct = min(max(pct, 0), 100)
	if e.width == pct {
		return
	}
	e.width = pct
	e.changed()
}

// Classes returns a copy of the element's classes.
func (e *Element) Classes() []string { return slices.Clone(e.classes) }

// HasClass reports whether the element carries class c.
func (e *Element) HasClass(c string) bool { return slices.Contains(e.classes, c) }

// AddClass adds class c if it is not already present.
func (e *Element) AddClass(c string) {
	if c == "" || e.HasClass(c) {
		return
	}
	e.classes = append(e.classes, c)
	e.changed()
}

// RemoveClass removes class c. Removing an absent class does nothing.
func (e *Element) RemoveClass(c string) {
	i := slices.Index(e.classes, c)
	if i < 0 {
		return
	}
	e.classes = slices.Delete(e.classes, i, i+1)
	e.changed()
}

// OnClick registers a click handler.
func (e *Element) OnClick(fn func()) {
	e.handlers = append(e.handlers, fn)
}

// Clickable reports whether any click handler is bound.
func (e *Element) Clickable() bool { return len(e.handlers) > 0 }

// Click runs every bound handler in registration order.
func (e *Element) Click() {
	for _, fn := range e.handlers {
		fn()
	}
}

func (e *Element) changed() {
	if e.doc != nil {
		e.doc.notify(e)
	}
}

// Document is an ordered set of elements with unique ids.
type Document struct {
	elements  []*Element
	byID      map[string]*Element
	observers []func(*Element)
}

// New builds a document from elements in display order.
func New(elements ...*Element) (*Document, error) {
	d := &Document{byID: make(map[string]*Element, len(elements))}
	for _, e := range elements {
		if e.ID == "" {
			return nil, fmt.Errorf("element of kind %q has no id", e.Kind)
		}
		if _, dup := d.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		e.doc = d
		d.byID[e.ID] = e
		d.elements = append(d.elements, e)
	}
	return d, nil
}

// ByID looks up an element. The boolean is false if the element is absent.
func (d *Document) ByID(id string) (*Element, bool) {
	e, ok := d.byID[id]
	return e, ok
}

// ByClass returns every element carrying class c, in document order.
func (d *Document) ByClass(c string) []*Element {
	var out []*Element
	for _, e := range d.elements {
		if e.HasClass(c) {
			out = append(out, e)
		}
	}
	return out
}

// Children returns the elements whose parent is id, in document order.
func (d *Document) Children(id string) []*Element {
	var out []*Element
	for _, e := range d.elements {
		if e.Parent == id {
			out = append(out, e)
		}
	}
	return out
}

// Elements returns all elements in document order.
func (d *Document) Elements() []*Element { return slices.Clone(d.elements) }

// Click dispatches a click to the element with the given id.
func (d *Document) Click(id string) error {
	e, ok := d.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.Click()
	return nil
}

// Shown reports whether the element and all of its ancestors are visible.
func (d *Document) Shown(e *Element) bool {
	for seen := 0; e != nil && seen <= len(d.elements); seen++ {
		if !e.Visible() {
			return false
		}
		if e.Parent == "" {
			return true
		}
		e = d.byID[e.Parent]
	}
	return e == nil
}

// Observe registers fn to be called after any element mutation.
func (d *Document) Observe(fn func(*Element)) {
	d.observers = append(d.observers, fn)
}

func (d *Document) notify(e *Element) {
	for _, fn := range d.observers {
		fn(e)
	}
}
