// Package config loads the checker's settings. Values are layered, lowest
// first: DefaultConfig, the YAML file, CNORM_* environment variables. The CLI
// applies its flags on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/steveyegge/cnorm/internal/report"
	"github.com/steveyegge/cnorm/internal/rules"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".cnorm.yml"

// MaxJobs caps the number of files checked in parallel.
const MaxJobs = 64

// Config holds every setting of a check run.
type Config struct {
	// IgnoreFiles suppresses the report of files that are not needed to build
	IgnoreFiles bool `yaml:"ignore_files"`

	// IgnoreFunctions suppresses the forbidden-function report
	IgnoreFunctions bool `yaml:"ignore_functions"`

	// Colorless disables colors in the text report
	Colorless bool `yaml:"colorless"`

	// Format is "text" or "json"
	Format report.Format `yaml:"format"`

	// Jobs is how many files are checked in parallel
	// Default: 4, Range: 1-64
	Jobs int `yaml:"jobs"`

	// Ignore lists extra path patterns, on top of .gitignore
	Ignore []string `yaml:"ignore,omitempty"`

	// Disable lists rule names that never run, e.g. "goto"
	Disable []string `yaml:"disable,omitempty"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Format: report.FormatText,
		Jobs:   4,
	}
}

// RuleOptions returns the rulebook toggles.
func (c Config) RuleOptions() rules.Options {
	return rules.Options{
		IgnoreFiles:     c.IgnoreFiles,
		IgnoreFunctions: c.IgnoreFunctions,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("format must be %q or %q (got %q)", report.FormatText, report.FormatJSON, c.Format)
	}
	if c.Jobs < 1 || c.Jobs > MaxJobs {
		return fmt.Errorf("jobs must be between 1 and %d (got %d)", MaxJobs, c.Jobs)
	}
	for _, name := range c.Disable {
		if _, ok := rules.Lookup(name); !ok {
			return fmt.Errorf("disable: unknown rule %q", name)
		}
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{IgnoreFiles: %t, IgnoreFunctions: %t, Colorless: %t, Format: %s, "+
			"Jobs: %d, Ignore: %v, Disable: %v}",
		c.IgnoreFiles, c.IgnoreFunctions, c.Colorless, c.Format,
		c.Jobs, c.Ignore, c.Disable,
	)
}

// LoadFile reads a YAML config file. Keys missing from the file keep their
// default value.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing YAML: %w", err)
	}
	return cfg, nil
}

// Load builds the configuration from the file at path and the environment,
// then validates it. A missing file is only an error when mustExist is set.
//
// Environment variables:
//   - CNORM_IGNORE_FILES: Suppress extraneous-file reports (default: false)
//   - CNORM_IGNORE_FUNCTIONS: Suppress forbidden-function reports (default: false)
//   - CNORM_COLORLESS: Disable colors (default: false)
//   - CNORM_FORMAT: Report format, text or json (default: text)
//   - CNORM_JOBS: Files checked in parallel (default: 4)
//   - CNORM_DISABLE: Comma-separated rule names to skip (default: none)
func Load(path string, mustExist bool) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		if mustExist || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
		cfg = DefaultConfig()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields with the CNORM_* variables that are set.
func (c *Config) ApplyEnv() error {
	if err := parseEnvBool("CNORM_IGNORE_FILES", &c.IgnoreFiles); err != nil {
		return err
	}
	if err := parseEnvBool("CNORM_IGNORE_FUNCTIONS", &c.IgnoreFunctions); err != nil {
		return err
	}
	if err := parseEnvBool("CNORM_COLORLESS", &c.Colorless); err != nil {
		return err
	}
	var format string
	if err := parseEnvString("CNORM_FORMAT", &format); err != nil {
		return err
	}
	if format != "" {
		c.Format = report.Format(format)
	}
	if err := parseEnvInt("CNORM_JOBS", &c.Jobs); err != nil {
		return err
	}
	return parseEnvList("CNORM_DISABLE", &c.Disable)
}

// SaveDefaultConfig writes the default configuration to a file.
func SaveDefaultConfig(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// parseEnvInt parses an int from an environment variable
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvBool parses a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvString parses a string from an environment variable
func parseEnvString(key string, dest *string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	*dest = value
	return nil
}

// parseEnvList parses a comma-separated list from an environment variable
func parseEnvList(key string, dest *[]string) error {
	var value string
	if err := parseEnvString(key, &value); err != nil || value == "" {
		return err
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dest = items
	return nil
}
