package wizard

import (
	"fmt"
	"slices"

	"github.com/gridstudy/loadflow/internal/eventloop"
	"github.com/gridstudy/loadflow/internal/logger"
	"github.com/gridstudy/loadflow/internal/page"
)

func (c *Controller) bindRunAnalysis() {
	btn, hasBtn := c.doc.ByID(BtnRunAnalysis)
	container, hasContainer := c.doc.ByID(ProgressContainer)
	bar, hasBar := c.doc.ByID(ProgressBar)
	if !hasBtn || !hasContainer || !hasBar {
		logger.Debug("progress elements incomplete (button=%t container=%t bar=%t), run disabled",
			hasBtn, hasContainer, hasBar)
		return
	}
	btn.OnClick(func() { c.startRun(container, bar) })
	c.bound = append(c.bound, BtnRunAnalysis)
}

// startRun shows the bar at 0% and arms a timer advancing it by Step every
// TickInterval. The tick that finds the counter at 100 finishes the run.
func (c *Controller) startRun(container, bar *page.Element) {
	if c.opts.Policy == RunSingle && len(c.running) > 0 {
		logger.Debug("analysis run already in progress, ignoring trigger")
		return
	}

	container.Reveal()
	progress := 0
	bar.SetWidth(0)
	bar.SetText("0%")

	var id eventloop.TimerID
	id = c.loop.SetInterval(c.opts.TickInterval, func() {
		if progress < 100 {
			progress = min(progress+c.opts.Step, 100)
			bar.SetWidth(progress)
			bar.SetText(fmt.Sprintf("%d%%", progress))
			return
		}
		c.finishRun(id, bar)
	})

	c.started++
	c.running = append(c.running, id)
	logger.Info("analysis run %d started (timer %d, every %s)", c.started, id, c.opts.TickInterval)
}

func (c *Controller) finishRun(id eventloop.TimerID, bar *page.Element) {
	c.loop.ClearInterval(id)
	if i := slices.Index(c.running, id); i >= 0 {
		c.running = slices.Delete(c.running, i, i+1)
	}
	c.completed++

	bar.SetText(CompletionText)
	if results, ok := c.doc.ByID(AnalysisResults); ok {
		results.Reveal()
	}
	bar.RemoveClass(ClassAnimated)
	logger.Info("analysis run finished (timer %d)", id)
}
