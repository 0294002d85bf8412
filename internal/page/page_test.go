package page

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := New(
		NewElement("step-one", KindPanel),
		NewElement("btn-a", KindButton).WithParent("step-one").WithClasses("select"),
		NewElement("btn-b", KindButton).WithParent("step-one").WithClasses("select"),
		NewElement("step-two", KindPanel).Hide(),
		NewElement("btn-c", KindButton).WithParent("step-two"),
	)
	require.NoError(t, err)
	return doc
}

func TestNew_DuplicateID(t *testing.T) {
	t.Parallel()

	_, err := New(NewElement("a", KindPanel), NewElement("a", KindButton))
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestNew_MissingID(t *testing.T) {
	t.Parallel()

	_, err := New(NewElement("", KindPanel))
	require.Error(t, err)
}

func TestDocument_ByID(t *testing.T) {
	t.Parallel()
	doc := testDocument(t)

	e, ok := doc.ByID("btn-a")
	require.True(t, ok)
	require.Equal(t, KindButton, e.Kind)

	_, ok = doc.ByID("nope")
	require.False(t, ok)
}

func TestDocument_ByClass(t *testing.T) {
	t.Parallel()
	doc := testDocument(t)

	got := doc.ByClass("select")
	require.Len(t, got, 2)
	require.Equal(t, "btn-a", got[0].ID)
	require.Equal(t, "btn-b", got[1].ID)

	require.Empty(t, doc.ByClass("missing"))
}

func TestElement_RevealIsIdempotent(t *testing.T) {
	t.Parallel()
	doc := testDocument(t)

	var changes int
	doc.Observe(func(*Element) { changes++ })

	step, _ := doc.ByID("step-two")
	require.False(t, step.Visible())

	step.Reveal()
	require.True(t, step.Visible())
	require.Equal(t, 1, changes)

	step.Reveal()
	require.True(t, step.Visible())
	require.Equal(t, 1, changes, "second reveal must not notify")
}

func TestElement_Classes(t *testing.T) {
	t.Parallel()

	e := NewElement("bar", KindBar).WithClasses("progress-bar", "progress-bar-animated")
	e.AddClass("progress-bar")
	require.Equal(t, []string{"progress-bar", "progress-bar-animated"}, e.Classes())

	e.RemoveClass("progress-bar-animated")
	require.False(t, e.HasClass("progress-bar-animated"))

	e.RemoveClass("progress-bar-animated")
	require.Equal(t, []string{"progress-bar"}, e.Classes())
}

func TestElement_SetWidthClamps(t *testing.T) {
	t.Parallel()

	e := NewElement("bar", KindBar)
	e.SetWidth(150)
	require.Equal(t, 100, e.Width())
	e.SetWidth(-3)
	require.Equal(t, 0, e.Width())
}

func TestDocument_Click(t *testing.T) {
	t.Parallel()
	doc := testDocument(t)

	var order []string
	btn, _ := doc.ByID("btn-a")
	btn.OnClick(func() { order = append(order, "first") })
	btn.OnClick(func() { order = append(order, "second") })
	require.True(t, btn.Clickable())

	require.NoError(t, doc.Click("btn-a"))
	require.Equal(t, []string{"first", "second"}, order)

	err := doc.Click("missing")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestDocument_Shown(t *testing.T) {
	t.Parallel()
	doc := testDocument(t)

	c, _ := doc.ByID("btn-c")
	require.True(t, c.Visible())
	require.False(t, doc.Shown(c), "child of hidden panel is not shown")

	step, _ := doc.ByID("step-two")
	step.Reveal()
	require.True(t, doc.Shown(c))
}

func TestDocument_Children(t *testing.T) {
	t.Parallel()
	doc := testDocument(t)

	kids := doc.Children("step-one")
	require.Len(t, kids, 2)
	require.Equal(t, "btn-b", kids[1].ID)
}

func TestLayout_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		layout Layout
	}{
		{"missing id", Layout{Elements: []ElementSpec{{Kind: KindPanel}}}},
		{"duplicate id", Layout{Elements: []ElementSpec{{ID: "a", Kind: KindPanel}, {ID: "a", Kind: KindPanel}}}},
		{"unknown kind", Layout{Elements: []ElementSpec{{ID: "a", Kind: "widget"}}}},
		{"missing parent", Layout{Elements: []ElementSpec{{ID: "a", Kind: KindButton, Parent: "p"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.layout.Validate(), ErrInvalidLayout)
		})
	}
}

func TestLayout_RoundTrip(t *testing.T) {
	t.Parallel()

	l := &Layout{Elements: []ElementSpec{
		{ID: "step", Kind: KindPanel, Label: "Step"},
		{ID: "go", Kind: KindButton, Parent: "step", Classes: []string{"x"}},
		{ID: "later", Kind: KindPanel, Hidden: true, Text: "body"},
	}}
	data, err := l.Marshal()
	require.NoError(t, err)

	parsed, err := ParseLayout(data)
	require.NoError(t, err)
	require.Equal(t, l, parsed)

	doc, err := parsed.Build()
	require.NoError(t, err)
	later, ok := doc.ByID("later")
	require.True(t, ok)
	require.False(t, later.Visible())
	require.Equal(t, "body", later.Text())
}

func TestLayout_Without(t *testing.T) {
	t.Parallel()

	l := &Layout{Elements: []ElementSpec{{ID: "a", Kind: KindPanel}, {ID: "b", Kind: KindPanel}}}
	got := l.Without("a")
	require.Len(t, got.Elements, 1)
	require.Equal(t, "b", got.Elements[0].ID)
	require.Len(t, l.Elements, 2)
}

func TestLoadLayout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "layout.yml")
	require.NoError(t, os.WriteFile(path, []byte("elements:\n  - id: a\n    kind: panel\n"), 0644))

	l, err := LoadLayout(path)
	require.NoError(t, err)
	require.Len(t, l.Elements, 1)

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
