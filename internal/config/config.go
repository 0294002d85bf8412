// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gridstudy/loadflow/internal/logger"
	"github.com/gridstudy/loadflow/internal/wizard"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for loadflow.
type Config struct {
	LogLevel     string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile      string        `mapstructure:"log_file" yaml:"log_file"`
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	Step         int           `mapstructure:"step" yaml:"step"`
	RunPolicy    string        `mapstructure:"run_policy" yaml:"run_policy"`
	Engines      []string      `mapstructure:"engines" yaml:"engines"`
	Layout       string        `mapstructure:"layout" yaml:"layout"`
	Headless     bool          `mapstructure:"headless" yaml:"headless"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	opts := wizard.DefaultOptions()
	return &Config{
		LogLevel:     "info",
		TickInterval: opts.TickInterval,
		Step:         opts.Step,
		RunPolicy:    string(opts.Policy),
		Engines:      append([]string(nil), wizard.DefaultEngines...),
	}
}

var envKeys = []string{
	"log_level",
	"log_file",
	"tick_interval",
	"step",
	"run_policy",
	"engines",
	"layout",
	"headless",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("loadflow")

	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("tick_interval", d.TickInterval)
	v.SetDefault("step", d.Step)
	v.SetDefault("run_policy", d.RunPolicy)
	v.SetDefault("engines", d.Engines)
	v.SetDefault("layout", d.Layout)
	v.SetDefault("headless", d.Headless)

	v.SetEnvPrefix("LOADFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, "LOADFLOW_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		logger.Debug("loaded global config %s", globalPath)
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
		logger.Debug("merged project config %s", projectPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate rejects values the wizard cannot run with.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("invalid tick_interval: %s (must be positive)", c.TickInterval)
	}
	if c.Step < 1 || c.Step > 100 {
		return fmt.Errorf("invalid step: %d (must be between 1 and 100)", c.Step)
	}
	if _, err := wizard.ParseRunPolicy(c.RunPolicy); err != nil {
		return err
	}
	if len(c.Engines) == 0 {
		return fmt.Errorf("no engines configured")
	}
	seen := make(map[string]bool, len(c.Engines))
	for _, e := range c.Engines {
		id := wizard.EngineButtonID(e)
		if strings.TrimSpace(e) == "" || id == wizard.EngineButtonID("") {
			return fmt.Errorf("invalid engine name: %q", e)
		}
		if seen[id] {
			return fmt.Errorf("duplicate engine: %q", e)
		}
		seen[id] = true
	}
	return nil
}

// WizardOptions converts the config into controller options.
func (c *Config) WizardOptions() wizard.Options {
	return wizard.Options{
		TickInterval: c.TickInterval,
		Step:         c.Step,
		Policy:       wizard.RunPolicy(c.RunPolicy),
	}
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/loadflow/loadflow.yml or $XDG_CONFIG_HOME/loadflow/loadflow.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "loadflow", "loadflow.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "loadflow", "loadflow.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "loadflow.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
