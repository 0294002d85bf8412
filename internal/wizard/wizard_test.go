package wizard

import (
	"fmt"
	"testing"
	"time"

	"github.com/gridstudy/loadflow/internal/eventloop"
	"github.com/gridstudy/loadflow/internal/page"
	"github.com/stretchr/testify/require"
)

func setupDefault(t *testing.T, opts Options, without ...string) (*page.Document, *eventloop.Loop, *Controller) {
	t.Helper()
	doc, err := DefaultLayout(nil).Without(without...).Build()
	require.NoError(t, err)
	loop := eventloop.New()
	return doc, loop, Setup(doc, loop, opts)
}

func element(t *testing.T, doc *page.Document, id string) *page.Element {
	t.Helper()
	e, ok := doc.ByID(id)
	require.True(t, ok, "element %s", id)
	return e
}

// barTexts records every text the progress bar displays.
func barTexts(doc *page.Document) *[]string {
	var texts []string
	doc.Observe(func(e *page.Element) {
		if e.ID != ProgressBar {
			return
		}
		if n := len(texts); n == 0 || texts[n-1] != e.Text() {
			texts = append(texts, e.Text())
		}
	})
	return &texts
}

func expectedSequence(step int) []string {
	var seq []string
	for p := 0; p < 100; p += step {
		seq = append(seq, fmt.Sprintf("%d%%", p))
	}
	return append(seq, "100%", CompletionText)
}

func TestDefaultLayout_EngineButtons(t *testing.T) {
	t.Parallel()

	doc, err := DefaultLayout([]string{"PowerFactory", "IPSA", "Open DSS"}).Build()
	require.NoError(t, err)

	buttons := doc.ByClass(ClassEngineSelect)
	require.Len(t, buttons, 3)
	require.Equal(t, "btn-engine-powerfactory", buttons[0].ID)
	require.Equal(t, "btn-engine-open-dss", buttons[2].ID)
	require.Equal(t, "Open DSS", buttons[2].Label)
}

func TestDefaultLayout_InitialVisibility(t *testing.T) {
	t.Parallel()

	doc, err := DefaultLayout(nil).Build()
	require.NoError(t, err)

	require.True(t, element(t, doc, StepEngineSelect).Visible())
	for _, id := range []string{StepEngineInit, StepEngineConfig, StepRunAnalysis, ProgressContainer, AnalysisResults} {
		require.False(t, element(t, doc, id).Visible(), id)
	}
	require.True(t, element(t, doc, ProgressBar).HasClass(ClassAnimated))
}

func TestEngineSelect_RevealsInitStep(t *testing.T) {
	t.Parallel()
	doc, _, c := setupDefault(t, DefaultOptions())

	init := element(t, doc, StepEngineInit)
	require.False(t, init.Visible())

	clicks := []string{EngineButtonID("IPSA"), EngineButtonID("PowerFactory"), EngineButtonID("IPSA")}
	for _, id := range clicks {
		require.NoError(t, doc.Click(id))
		require.True(t, init.Visible(), "init step stays visible after clicking %s", id)
	}

	require.Equal(t, "IPSA", c.SelectedEngine())
	require.Equal(t, "Initialising IPSA engine", element(t, doc, EngineInitStatus).Text())
	require.False(t, element(t, doc, StepEngineConfig).Visible(), "engine select only reveals the init step")
}

func TestEngineSelect_NoButtons(t *testing.T) {
	t.Parallel()

	ids := []string{EngineButtonID("PowerFactory"), EngineButtonID("IPSA")}
	doc, _, c := setupDefault(t, DefaultOptions(), ids...)

	require.Empty(t, doc.ByClass(ClassEngineSelect))
	require.NotContains(t, c.Bound(), ids[0])
	require.False(t, element(t, doc, StepEngineInit).Visible())
}

func TestInitComplete_RevealsConfigIdempotently(t *testing.T) {
	t.Parallel()
	doc, _, _ := setupDefault(t, DefaultOptions())

	cfg := element(t, doc, StepEngineConfig)
	var changes int
	doc.Observe(func(e *page.Element) {
		if e == cfg {
			changes++
		}
	})

	require.NoError(t, doc.Click(BtnInitComplete))
	require.True(t, cfg.Visible())
	require.NoError(t, doc.Click(BtnInitComplete))
	require.True(t, cfg.Visible())
	require.Equal(t, 1, changes)
}

func TestConfigComplete_RevealsRunStep(t *testing.T) {
	t.Parallel()
	doc, _, _ := setupDefault(t, DefaultOptions())

	require.NoError(t, doc.Click(BtnConfigComplete))
	require.True(t, element(t, doc, StepRunAnalysis).Visible())
}

func TestSetup_OptionalTriggersAbsent(t *testing.T) {
	t.Parallel()
	doc, loop, c := setupDefault(t, DefaultOptions(), BtnInitComplete, BtnConfigComplete)

	require.NotContains(t, c.Bound(), BtnInitComplete)
	require.NotContains(t, c.Bound(), BtnConfigComplete)
	require.Contains(t, c.Bound(), BtnRunAnalysis)

	require.Error(t, doc.Click(BtnInitComplete))
	require.False(t, element(t, doc, StepEngineConfig).Visible())
	require.Equal(t, 0, loop.Len())
}

func TestSetup_RevealTargetAbsent(t *testing.T) {
	t.Parallel()
	doc, _, _ := setupDefault(t, DefaultOptions(), StepEngineInit, EngineInitStatus, BtnInitComplete)

	require.NotPanics(t, func() {
		require.NoError(t, doc.Click(EngineButtonID("IPSA")))
	})
}

func TestRunAnalysis_InertWithoutProgressElements(t *testing.T) {
	t.Parallel()

	for _, missing := range []string{ProgressContainer, ProgressBar} {
		t.Run(missing, func(t *testing.T) {
			without := []string{missing}
			if missing == ProgressContainer {
				without = append(without, ProgressBar)
			}
			doc, loop, c := setupDefault(t, DefaultOptions(), without...)

			require.NotContains(t, c.Bound(), BtnRunAnalysis)
			require.NoError(t, doc.Click(BtnRunAnalysis))
			require.Equal(t, 0, loop.Len())
			require.Equal(t, 0, c.Started())
		})
	}
}

func TestRunAnalysis_ProgressSequence(t *testing.T) {
	t.Parallel()
	doc, loop, c := setupDefault(t, DefaultOptions())
	texts := barTexts(doc)

	container := element(t, doc, ProgressContainer)
	bar := element(t, doc, ProgressBar)
	results := element(t, doc, AnalysisResults)

	require.NoError(t, doc.Click(BtnRunAnalysis))
	require.True(t, container.Visible())
	require.Equal(t, "0%", bar.Text())
	require.Equal(t, 0, bar.Width())

	armed := loop.Armed()
	require.Len(t, armed, 1)
	require.Equal(t, 200*time.Millisecond, armed[0].Interval)
	id := armed[0].ID

	for i := 1; i <= 20; i++ {
		require.True(t, loop.Fire(id))
		require.Equal(t, i*5, bar.Width())
		require.True(t, bar.HasClass(ClassAnimated))
		require.False(t, results.Visible())
	}

	require.False(t, loop.Fire(id), "tick at 100 stops the timer")
	require.Equal(t, CompletionText, bar.Text())
	require.Equal(t, 100, bar.Width())
	require.True(t, results.Visible())
	require.False(t, bar.HasClass(ClassAnimated))
	require.Equal(t, 1, c.Completed())
	require.Empty(t, c.Running())

	require.False(t, loop.Fire(id))
	require.Equal(t, CompletionText, bar.Text(), "nothing changes after completion")
	require.Equal(t, expectedSequence(5), *texts)
}

func TestRunAnalysis_StepNotDividingHundred(t *testing.T) {
	t.Parallel()
	doc, loop, _ := setupDefault(t, Options{Step: 30})
	bar := element(t, doc, ProgressBar)

	require.NoError(t, doc.Click(BtnRunAnalysis))
	id := loop.Armed()[0].ID

	var widths []int
	for loop.Fire(id) {
		widths = append(widths, bar.Width())
	}
	require.Equal(t, []int{30, 60, 90, 100}, widths)
	require.Equal(t, CompletionText, bar.Text())
}

func TestRunAnalysis_ResultsPanelOptional(t *testing.T) {
	t.Parallel()
	doc, loop, c := setupDefault(t, DefaultOptions(), AnalysisResults)
	bar := element(t, doc, ProgressBar)

	require.NoError(t, doc.Click(BtnRunAnalysis))
	id := loop.Armed()[0].ID
	require.Equal(t, 21, loop.Ticks(id, 100))
	require.Equal(t, CompletionText, bar.Text())
	require.False(t, bar.HasClass(ClassAnimated))
	require.Equal(t, 1, c.Completed())
}

func TestRunAnalysis_SinglePolicyIgnoresRetrigger(t *testing.T) {
	t.Parallel()
	doc, loop, c := setupDefault(t, Options{Policy: RunSingle})
	bar := element(t, doc, ProgressBar)

	require.NoError(t, doc.Click(BtnRunAnalysis))
	loop.Step()
	loop.Step()
	require.Equal(t, "10%", bar.Text())

	require.NoError(t, doc.Click(BtnRunAnalysis))
	require.Equal(t, "10%", bar.Text(), "retrigger during a run is ignored")
	require.Equal(t, 1, loop.Len())
	require.Equal(t, 1, c.Started())

	for loop.Len() > 0 {
		loop.Step()
	}
	require.Equal(t, CompletionText, bar.Text())

	// A finished run can be started again.
	require.NoError(t, doc.Click(BtnRunAnalysis))
	require.Equal(t, "0%", bar.Text())
	require.Equal(t, 2, c.Started())
}

func TestRunAnalysis_ConcurrentPolicyInterleaves(t *testing.T) {
	t.Parallel()
	doc, loop, c := setupDefault(t, Options{Policy: RunConcurrent})
	bar := element(t, doc, ProgressBar)

	require.NoError(t, doc.Click(BtnRunAnalysis))
	loop.Step()
	loop.Step()
	require.Equal(t, "10%", bar.Text())

	require.NoError(t, doc.Click(BtnRunAnalysis))
	require.Equal(t, "0%", bar.Text())
	require.Equal(t, 2, loop.Len())
	require.Len(t, c.Running(), 2)

	// Each step fires the first run, then the second; the bar shows
	// whichever wrote last.
	loop.Step()
	require.Equal(t, "5%", bar.Text())
	require.Equal(t, 5, bar.Width())

	for loop.Len() > 0 {
		loop.Step()
	}
	require.Equal(t, 2, c.Completed())
	require.Equal(t, CompletionText, bar.Text())
}

func TestParseRunPolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseRunPolicy("concurrent")
	require.NoError(t, err)
	require.Equal(t, RunConcurrent, p)

	_, err = ParseRunPolicy("queue")
	require.Error(t, err)
}

func TestOptions_Normalized(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultOptions(), Options{}.normalized())
	o := Options{TickInterval: time.Second, Step: 10, Policy: RunConcurrent}
	require.Equal(t, o, o.normalized())
}
