package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/gridstudy/loadflow/internal/config"
	"github.com/gridstudy/loadflow/internal/wizard"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project     bool
	force       bool
	interactive bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create loadflow configuration file",
	Long: `Create a loadflow configuration file with sensible defaults.

By default, creates a global config at ~/.config/loadflow/loadflow.yml.
Use --project to create a project-local config in the current directory.
Use --interactive to choose engines and progress settings in a form.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().BoolVarP(&setupFlags.interactive, "interactive", "i", false, "Fill in the config with an interactive form")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Default()
	if setupFlags.interactive {
		answers := newSetupAnswers(cfg)
		if err := newSetupForm(answers).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return fmt.Errorf("setup cancelled")
			}
			return fmt.Errorf("setup form failed: %w", err)
		}
		if err := answers.apply(cfg); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(out, "Run 'loadflow' to get started.")
	return nil
}

// setupAnswers holds the form fields as text until the form is submitted.
type setupAnswers struct {
	engines  string
	interval string
	step     string
	policy   string
}

func newSetupAnswers(cfg *config.Config) *setupAnswers {
	return &setupAnswers{
		engines:  strings.Join(cfg.Engines, ", "),
		interval: cfg.TickInterval.String(),
		step:     strconv.Itoa(cfg.Step),
		policy:   cfg.RunPolicy,
	}
}

func newSetupForm(a *setupAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Engines").
				Description("Comma-separated simulation engines offered in the first step").
				Placeholder("PowerFactory, IPSA").
				Validate(func(s string) error {
					if len(splitEngines(s)) == 0 {
						return fmt.Errorf("at least one engine is required")
					}
					return nil
				}).
				Value(&a.engines),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tick interval").
				Description("Time between progress updates, e.g. 200ms").
				Validate(validateInterval).
				Value(&a.interval),
			huh.NewInput().
				Title("Step").
				Description("Percentage added on every tick (1-100)").
				Validate(validateStep).
				Value(&a.step),
			huh.NewSelect[string]().
				Title("Run policy").
				Description("What happens when Run is pressed during a run").
				Options(
					huh.NewOption("Ignore while running", string(wizard.RunSingle)),
					huh.NewOption("Start another run", string(wizard.RunConcurrent)),
				).
				Value(&a.policy),
		),
	)
}

// apply copies the submitted answers into cfg.
func (a *setupAnswers) apply(cfg *config.Config) error {
	interval, err := time.ParseDuration(strings.TrimSpace(a.interval))
	if err != nil {
		return fmt.Errorf("invalid tick interval: %w", err)
	}
	step, err := strconv.Atoi(strings.TrimSpace(a.step))
	if err != nil {
		return fmt.Errorf("invalid step: %w", err)
	}
	cfg.Engines = splitEngines(a.engines)
	cfg.TickInterval = interval
	cfg.Step = step
	cfg.RunPolicy = a.policy
	return nil
}

func splitEngines(s string) []string {
	var engines []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			engines = append(engines, e)
		}
	}
	return engines
}

func validateInterval(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a duration: %q", s)
	}
	if d <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	return nil
}

func validateStep(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 100 {
		return fmt.Errorf("step must be a whole number between 1 and 100")
	}
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
