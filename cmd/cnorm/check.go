package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/steveyegge/cnorm/internal/checker"
	"github.com/steveyegge/cnorm/internal/config"
	"github.com/steveyegge/cnorm/internal/report"
	"github.com/steveyegge/cnorm/internal/source"
)

type checkFlags struct {
	configPath      string
	ignoreFiles     bool
	ignoreFunctions bool
	ignoreAll       bool
	colorless       bool
	format          string
	jobs            int
	disable         []string
}

func newCheckCmd() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check a project tree and report style violations",
		Long: `Check every file and directory under path (default: the current directory).

Hidden entries, paths listed in .gitignore and tests/ are skipped. Settings are
read from the .cnorm.yml at the root of path, then CNORM_* environment
variables, then flags.

Examples:
  # Check the current directory
  cnorm check

  # Check another tree without the forbidden-function report
  cnorm check ../my_project --ignore-functions

  # Machine-readable output
  cnorm check --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			cfg, err := resolveConfig(cmd, root, flags)
			if err != nil {
				return err
			}
			slog.Debug("Resolved configuration", "config", cfg.String())

			return runCheck(cmd.Context(), root, cfg, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "Config file (default: "+config.DefaultFileName+" under path, if present)")
	f.BoolVarP(&flags.ignoreFiles, "ignore-files", "f", false, "Don't report files that are not needed to build")
	f.BoolVarP(&flags.ignoreFunctions, "ignore-functions", "m", false, "Don't report forbidden functions")
	f.BoolVarP(&flags.ignoreAll, "ignore-all", "i", false, "Same as --ignore-files --ignore-functions")
	f.BoolVarP(&flags.colorless, "colorless", "c", false, "Disable output styling")
	f.StringVar(&flags.format, "format", string(report.FormatText), "Report format: text or json")
	f.IntVarP(&flags.jobs, "jobs", "j", config.DefaultConfig().Jobs, "Files checked in parallel")
	f.StringSliceVar(&flags.disable, "disable", nil, "Rules to skip, by name (see 'cnorm rules')")

	return cmd
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

// resolveConfig layers the flags the user actually set over the loaded
// configuration. Without --config, the optional file is looked up in root.
func resolveConfig(cmd *cobra.Command, root string, flags checkFlags) (config.Config, error) {
	path, mustExist := filepath.Join(root, config.DefaultFileName), false
	if flags.configPath != "" {
		path, mustExist = flags.configPath, true
	}

	cfg, err := config.Load(path, mustExist)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("ignore-files") {
		cfg.IgnoreFiles = flags.ignoreFiles
	}
	if changed("ignore-functions") {
		cfg.IgnoreFunctions = flags.ignoreFunctions
	}
	if flags.ignoreAll {
		cfg.IgnoreFiles = true
		cfg.IgnoreFunctions = true
	}
	if changed("colorless") {
		cfg.Colorless = flags.colorless
	}
	if changed("format") {
		cfg.Format = report.Format(flags.format)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("disable") {
		cfg.Disable = append(cfg.Disable, flags.disable...)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// runCheck walks root, checks every entry and writes the report to w.
func runCheck(ctx context.Context, root string, cfg config.Config, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reporter, err := report.New(w, cfg.Format, cfg.Colorless)
	if err != nil {
		return err
	}

	ignore, err := source.LoadIgnoreList(root, cfg.Ignore...)
	if err != nil {
		return err
	}
	slog.Debug("Loaded ignore list", "root", root, "patterns", ignore.Patterns())

	entries, err := source.Walk(ctx, root, ignore)
	if err != nil {
		return err
	}

	registry := checker.DefaultRegistry()
	for _, name := range cfg.Disable {
		if err := registry.Disable(name); err != nil {
			return err
		}
	}

	c := checker.New(registry, cfg.RuleOptions(), slog.Default())
	results, err := c.Run(ctx, entries, source.DirLoader(root), cfg.Jobs)
	if err != nil {
		return fmt.Errorf("check interrupted: %w", err)
	}

	skipped := 0
	for _, res := range results {
		if res.Outcome == checker.OutcomeSkipped {
			skipped++
		}
		if err := reporter.Violations(res.Violations); err != nil {
			return err
		}
	}

	totals := c.Totals()
	slog.Debug("Check finished",
		"root", root,
		"entries", len(entries),
		"skipped", skipped,
		"violations", totals.Total(),
		"major", totals.Major,
		"minor", totals.Minor,
		"info", totals.Info)

	return reporter.Summary(totals)
}
