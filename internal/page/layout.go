package page

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLayout is returned when a layout fails validation.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is the serialisable description of a document.
type Layout struct {
	Elements []ElementSpec `yaml:"elements"`
}

// ElementSpec describes one element of a layout.
type ElementSpec struct {
	ID      string   `yaml:"id"`
	Kind    Kind     `yaml:"kind"`
	Label   string   `yaml:"label,omitempty"`
	Parent  string   `yaml:"parent,omitempty"`
	Classes []string `yaml:"classes,omitempty"`
	Hidden  bool     `yaml:"hidden,omitempty"`
	Text    string   `yaml:"text,omitempty"`
}

var validKinds = map[Kind]bool{
	KindPanel:    true,
	KindButton:   true,
	KindText:     true,
	KindProgress: true,
	KindBar:      true,
	KindResults:  true,
}

// Validate checks ids, kinds and parent references.
func (l *Layout) Validate() error {
	seen := make(map[string]bool, len(l.Elements))
	for i, spec := range l.Elements {
		if spec.ID == "" {
			return fmt.Errorf("%w: element %d has no id", ErrInvalidLayout, i)
		}
		if seen[spec.ID] {
			return fmt.Errorf("%w: %w: %s", ErrInvalidLayout, ErrDuplicateID, spec.ID)
		}
		if !validKinds[spec.Kind] {
			return fmt.Errorf("%w: element %s has unknown kind %q", ErrInvalidLayout, spec.ID, spec.Kind)
		}
		seen[spec.ID] = true
	}
	for _, spec := range l.Elements {
		if spec.Parent != "" && !seen[spec.Parent] {
			return fmt.Errorf("%w: element %s references missing parent %s", ErrInvalidLayout, spec.ID, spec.Parent)
		}
	}
	return nil
}

// Build validates the layout and creates a fresh document from it.
func (l *Layout) Build() (*Document, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	elements := make([]*Element, 0, len(l.Elements))
	for _, spec := range l.Elements {
		e := NewElement(spec.ID, spec.Kind).
			WithLabel(spec.Label).
			WithParent(spec.Parent).
			WithClasses(spec.Classes...).
			WithText(spec.Text)
		if spec.Hidden {
			e.Hide()
		}
		elements = append(elements, e)
	}
	return New(elements...)
}

// Without returns a copy of the layout with the given ids removed.
func (l *Layout) Without(ids ...string) *Layout {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := &Layout{}
	for _, spec := range l.Elements {
		if !drop[spec.ID] {
			out.Elements = append(out.Elements, spec)
		}
	}
	return out
}

// Marshal encodes the layout as YAML.
func (l *Layout) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshaling layout: %w", err)
	}
	return data, nil
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	return ParseLayout(data)
}
