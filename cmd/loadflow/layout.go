package main

import (
	"fmt"

	"github.com/gridstudy/loadflow/internal/config"
	"github.com/gridstudy/loadflow/internal/page"
	"github.com/gridstudy/loadflow/internal/wizard"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the built-in wizard layout",
	Long: `Print the built-in wizard layout as YAML.

The output is a starting point for a custom layout passed with --layout.
Engine buttons follow the engines from the loaded configuration.`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

var layoutCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a layout file",
	Long: `Validate a layout file and report which wizard steps it wires.

Missing optional elements are reported but are not errors: the wizard
simply leaves that step unbound.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayoutCheck,
}

func init() {
	layoutCmd.AddCommand(layoutCheckCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := wizard.DefaultLayout(cfg.Engines).Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// wiredIDs lists the elements the controller looks up, in wizard order.
var wiredIDs = []string{
	wizard.StepEngineSelect,
	wizard.StepEngineInit,
	wizard.EngineInitStatus,
	wizard.BtnInitComplete,
	wizard.StepEngineConfig,
	wizard.BtnConfigComplete,
	wizard.StepRunAnalysis,
	wizard.BtnRunAnalysis,
	wizard.ProgressContainer,
	wizard.ProgressBar,
	wizard.AnalysisResults,
}

func runLayoutCheck(cmd *cobra.Command, args []string) error {
	layout, err := page.LoadLayout(args[0])
	if err != nil {
		return err
	}
	doc, err := layout.Build()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d elements, %d engine buttons\n",
		args[0], len(doc.Elements()), len(doc.ByClass(wizard.ClassEngineSelect)))
	for _, id := range wiredIDs {
		status := "ok"
		if _, ok := doc.ByID(id); !ok {
			status = "missing"
		}
		fmt.Fprintf(out, "  %-22s %s\n", id, status)
	}
	return nil
}
