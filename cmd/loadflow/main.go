package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/gridstudy/loadflow/internal/config"
	"github.com/gridstudy/loadflow/internal/eventloop"
	"github.com/gridstudy/loadflow/internal/headless"
	"github.com/gridstudy/loadflow/internal/logger"
	"github.com/gridstudy/loadflow/internal/page"
	"github.com/gridstudy/loadflow/internal/tui"
	"github.com/gridstudy/loadflow/internal/tui/theme"
	"github.com/gridstudy/loadflow/internal/wizard"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█   █▀█ ▄▀█ █▀▄   █▀▀ █   █▀█ █ █ █"
	logoText2 = "█▄▄ █▄█ █▀█ █▄▀   █▀  █▄▄ █▄█ ▀▄▀▄▀"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var runFlags struct {
	layout   string
	headless bool
	policy   string
	interval time.Duration
	step     int
}

var rootCmd = &cobra.Command{
	Use:   "loadflow",
	Short: "Guided load flow analysis wizard",
	RunE:  runWizard,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

loadflow walks through a load flow study one step at a time: pick a
simulation engine, confirm initialisation, confirm configuration, then run
the analysis and watch its progress until the results are shown.

Settings come from flags, LOADFLOW_* environment variables, ./loadflow.yml
and ~/.config/loadflow/loadflow.yml, in that order.`

	rootCmd.Flags().StringVarP(&runFlags.layout, "layout", "l", "", "Layout YAML file (default: built-in wizard)")
	rootCmd.Flags().BoolVar(&runFlags.headless, "headless", false, "Click through the wizard and print progress instead of starting the TUI")
	rootCmd.Flags().StringVar(&runFlags.policy, "policy", "", "Run policy when analysis is retriggered: single or concurrent")
	rootCmd.Flags().DurationVar(&runFlags.interval, "interval", 0, "Progress tick interval (default: 200ms)")
	rootCmd.Flags().IntVar(&runFlags.step, "step", 0, "Progress increment per tick (default: 5)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(layoutCmd)
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}

	layout, err := loadLayout(cfg)
	if err != nil {
		return err
	}
	doc, err := layout.Build()
	if err != nil {
		return fmt.Errorf("failed to build layout: %w", err)
	}

	loop := eventloop.New()
	ctrl := wizard.Setup(doc, loop, cfg.WizardOptions())
	logger.Info("wizard ready: %d elements, bound %v", len(doc.Elements()), ctrl.Bound())

	ctx := cmd.Context()
	if cfg.Headless {
		return headless.Run(ctx, doc, loop, cmd.OutOrStdout())
	}
	return tui.Run(ctx, tui.NewApp(doc, loop, ctrl))
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("layout") {
		cfg.Layout = runFlags.layout
	}
	if flags.Changed("headless") {
		cfg.Headless = runFlags.headless
	}
	if flags.Changed("policy") {
		cfg.RunPolicy = runFlags.policy
	}
	if flags.Changed("interval") {
		cfg.TickInterval = runFlags.interval
	}
	if flags.Changed("step") {
		cfg.Step = runFlags.step
	}
}

func loadLayout(cfg *config.Config) (*page.Layout, error) {
	if cfg.Layout == "" {
		return wizard.DefaultLayout(cfg.Engines), nil
	}
	layout, err := page.LoadLayout(cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	return layout, nil
}
