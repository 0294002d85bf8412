// Package wizard binds the load flow wizard behaviour to a page document:
// sequential step reveals and the simulated analysis progress bar.
package wizard

import (
	"fmt"
	"time"

	"github.com/gridstudy/loadflow/internal/eventloop"
	"github.com/gridstudy/loadflow/internal/logger"
	"github.com/gridstudy/loadflow/internal/page"
)

// RunPolicy decides what a run trigger does while a run is in progress.
type RunPolicy string

const (
	// RunSingle ignores triggers while a run is active.
	RunSingle RunPolicy = "single"
	// RunConcurrent starts another timer with its own counter; all runs
	// write the same bar.
	RunConcurrent RunPolicy = "concurrent"
)

// ParseRunPolicy parses a run policy name.
func ParseRunPolicy(s string) (RunPolicy, error) {
	switch RunPolicy(s) {
	case RunSingle, RunConcurrent:
		return RunPolicy(s), nil
	default:
		return "", fmt.Errorf("invalid run policy: %q (want %q or %q)", s, RunSingle, RunConcurrent)
	}
}

// CompletionText replaces the percentage once a run finishes.
const CompletionText = "Analysis Complete!"

// Options tunes the progress simulation.
type Options struct {
	TickInterval time.Duration
	Step         int
	Policy       RunPolicy
}

// DefaultOptions returns a 200ms tick advancing 5% at a time, one run at a time.
func DefaultOptions() Options {
	return Options{
		TickInterval: 200 * time.Millisecond,
		Step:         5,
		Policy:       RunSingle,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}
	if o.Step <= 0 {
		o.Step = d.Step
	}
	if o.Policy == "" {
		o.Policy = d.Policy
	}
	return o
}

// Controller holds the handlers bound by Setup.
type Controller struct {
	doc  *page.Document
	loop *eventloop.Loop
	opts Options

	engine    string
	bound     []string
	started   int
	completed int
	running   []eventloop.TimerID
}

// Setup binds every handler the document supports. Optional triggers that
// are absent are skipped. Setup is meant to run once per document.
func Setup(doc *page.Document, loop *eventloop.Loop, opts Options) *Controller {
	c := &Controller{doc: doc, loop: loop, opts: opts.normalized()}
	c.bindEngineSelect()
	c.bindReveal(BtnInitComplete, StepEngineConfig)
	c.bindReveal(BtnConfigComplete, StepRunAnalysis)
	c.bindRunAnalysis()
	return c
}

func (c *Controller) bindEngineSelect() {
	step, _ := c.doc.ByID(StepEngineInit)
	status, _ := c.doc.ByID(EngineInitStatus)
	for _, btn := range c.doc.ByClass(ClassEngineSelect) {
		label := btn.Label
		btn.OnClick(func() {
			c.engine = label
			if status != nil {
				status.SetText(fmt.Sprintf("Initialising %s engine", label))
			}
			if step != nil {
				step.Reveal()
			}
		})
		c.bound = append(c.bound, btn.ID)
	}
}

func (c *Controller) bindReveal(trigger, target string) {
	btn, ok := c.doc.ByID(trigger)
	if !ok {
		logger.Debug("%s not present, skipping", trigger)
		return
	}
	step, _ := c.doc.ByID(target)
	btn.OnClick(func() {
		if step != nil {
			step.Reveal()
		}
	})
	c.bound = append(c.bound, trigger)
}

// SelectedEngine returns the label of the last clicked engine button.
func (c *Controller) SelectedEngine() string { return c.engine }

// Bound returns the ids of elements that received a click handler.
func (c *Controller) Bound() []string { return append([]string(nil), c.bound...) }

// Started returns how many runs were started.
func (c *Controller) Started() int { return c.started }

// Completed returns how many runs reached completion.
func (c *Controller) Completed() int { return c.completed }

// Running returns the timers of runs still in progress.
func (c *Controller) Running() []eventloop.TimerID {
	return append([]eventloop.TimerID(nil), c.running...)
}

// Options returns the effective options.
func (c *Controller) Options() Options { return c.opts }
