package wizard

import (
	"github.com/gosimple/slug"
	"github.com/gridstudy/loadflow/internal/page"
)

// Element identities read and written by the controller.
const (
	ClassEngineSelect = "engine-select-btn"
	ClassAnimated     = "progress-bar-animated"

	StepEngineSelect  = "step-engine-select"
	StepEngineInit    = "step-engine-init"
	StepEngineConfig  = "step-engine-config"
	StepRunAnalysis   = "step-run-analysis"
	EngineInitStatus  = "engine-init-status"
	BtnInitComplete   = "btn-init-complete"
	BtnConfigComplete = "btn-config-complete"
	BtnRunAnalysis    = "btn-run-analysis"
	ProgressContainer = "analysis-progress-bar-container"
	ProgressBar       = "analysis-progress-bar"
	AnalysisResults   = "analysis-results"
)

// DefaultEngines are offered when no engines are configured.
var DefaultEngines = []string{"PowerFactory", "IPSA"}

const resultsMarkdown = `## Load flow results

| Field | Value |
|---|---|
| Analysis type | load_flow |
| Status | completed |
`

// EngineButtonID derives the id of an engine selection button.
func EngineButtonID(engine string) string {
	return "btn-engine-" + slug.Make(engine)
}

// DefaultLayout returns the four-step load flow wizard with one selection
// button per engine.
func DefaultLayout(engines []string) *page.Layout {
	if len(engines) == 0 {
		engines = DefaultEngines
	}

	l := &page.Layout{}
	add := func(spec page.ElementSpec) { l.Elements = append(l.Elements, spec) }

	add(page.ElementSpec{ID: StepEngineSelect, Kind: page.KindPanel, Label: "Select Engine"})
	for _, engine := range engines {
		add(page.ElementSpec{
			ID:      EngineButtonID(engine),
			Kind:    page.KindButton,
			Label:   engine,
			Parent:  StepEngineSelect,
			Classes: []string{ClassEngineSelect},
		})
	}

	add(page.ElementSpec{ID: StepEngineInit, Kind: page.KindPanel, Label: "Initialise Engine", Hidden: true})
	add(page.ElementSpec{ID: EngineInitStatus, Kind: page.KindText, Parent: StepEngineInit})
	add(page.ElementSpec{ID: BtnInitComplete, Kind: page.KindButton, Label: "Continue to Configuration", Parent: StepEngineInit})

	add(page.ElementSpec{ID: StepEngineConfig, Kind: page.KindPanel, Label: "Configure Engine", Hidden: true})
	add(page.ElementSpec{ID: BtnConfigComplete, Kind: page.KindButton, Label: "Continue to Analysis", Parent: StepEngineConfig})

	add(page.ElementSpec{ID: StepRunAnalysis, Kind: page.KindPanel, Label: "Run Analysis", Hidden: true})
	add(page.ElementSpec{ID: BtnRunAnalysis, Kind: page.KindButton, Label: "Run Load Flow", Parent: StepRunAnalysis})
	add(page.ElementSpec{ID: ProgressContainer, Kind: page.KindProgress, Parent: StepRunAnalysis, Hidden: true})
	add(page.ElementSpec{
		ID:      ProgressBar,
		Kind:    page.KindBar,
		Parent:  ProgressContainer,
		Classes: []string{"progress-bar", ClassAnimated},
	})
	add(page.ElementSpec{ID: AnalysisResults, Kind: page.KindResults, Label: "Results", Parent: StepRunAnalysis, Hidden: true, Text: resultsMarkdown})

	return l
}
