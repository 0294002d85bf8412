package testfixtures

import (
	"testing"

	"github.com/gridstudy/loadflow/internal/eventloop"
	"github.com/gridstudy/loadflow/internal/page"
	"github.com/gridstudy/loadflow/internal/wizard"
)

// Wizard bundles a document with its bound controller.
type Wizard struct {
	Doc  *page.Document
	Loop *eventloop.Loop
	Ctrl *wizard.Controller
}

// NewWizard builds the default layout without the given element ids and
// binds the controller to it.
func NewWizard(t *testing.T, opts wizard.Options, without ...string) *Wizard {
	t.Helper()
	doc, err := wizard.DefaultLayout(nil).Without(without...).Build()
	if err != nil {
		t.Fatalf("building layout: %v", err)
	}
	loop := eventloop.New()
	return &Wizard{Doc: doc, Loop: loop, Ctrl: wizard.Setup(doc, loop, opts)}
}

// Element returns the element with id or fails the test.
func (w *Wizard) Element(t *testing.T, id string) *page.Element {
	t.Helper()
	e, ok := w.Doc.ByID(id)
	if !ok {
		t.Fatalf("element %s not in document", id)
	}
	return e
}
