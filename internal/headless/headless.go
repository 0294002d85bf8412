// Package headless walks the wizard without a terminal UI: it clicks each
// step in order, then drives the event loop by wall clock and reports every
// change of the progress bar text.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gridstudy/loadflow/internal/eventloop"
	"github.com/gridstudy/loadflow/internal/logger"
	"github.com/gridstudy/loadflow/internal/page"
	"github.com/gridstudy/loadflow/internal/wizard"
)

// Run clicks through the wizard and blocks until every armed timer has
// finished or ctx is done. Progress lines are written to out.
func Run(ctx context.Context, doc *page.Document, loop *eventloop.Loop, out io.Writer) error {
	var (
		writeErr error
		lastText string
	)
	doc.Observe(func(e *page.Element) {
		if writeErr != nil || e.ID != wizard.ProgressBar || e.Text() == lastText {
			return
		}
		lastText = e.Text()
		logger.Debug("bar %s width=%d", lastText, e.Width())
		_, writeErr = fmt.Fprintf(out, "progress: %s\n", lastText)
	})

	engines := doc.ByClass(wizard.ClassEngineSelect)
	if len(engines) == 0 {
		return fmt.Errorf("layout has no %s buttons", wizard.ClassEngineSelect)
	}
	if _, err := fmt.Fprintf(out, "engine: %s\n", engines[0].Label); err != nil {
		return err
	}
	engines[0].Click()

	for _, id := range []string{wizard.BtnInitComplete, wizard.BtnConfigComplete, wizard.BtnRunAnalysis} {
		if err := doc.Click(id); err != nil {
			if errors.Is(err, page.ErrNotFound) {
				logger.Debug("%s not present, skipping", id)
				continue
			}
			return err
		}
	}

	if loop.Len() == 0 {
		return fmt.Errorf("analysis run did not start")
	}
	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("running analysis: %w", err)
	}
	return writeErr
}
