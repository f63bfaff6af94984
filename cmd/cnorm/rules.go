package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/cnorm/internal/rules"
	"github.com/steveyegge/cnorm/internal/types"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List every rule with its code and severity",
	Long: `List the rulebook. The first column is the name accepted by --disable and by
the "disable" key of .cnorm.yml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		colorless, _ := cmd.Flags().GetBool("colorless")
		return listRules(cmd.OutOrStdout(), colorless)
	},
}

func init() {
	rulesCmd.Flags().BoolP("colorless", "c", false, "Disable output styling")
	rootCmd.AddCommand(rulesCmd)
}

func listRules(w io.Writer, colorless bool) error {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	gray := color.New(color.FgHiBlack)
	if colorless {
		red.DisableColor()
		green.DisableColor()
		gray.DisableColor()
	}

	for _, k := range rules.All() {
		severity := fmt.Sprintf("%-5s", k.Severity())
		switch k.Severity() {
		case types.SeverityMajor:
			severity = red.Sprint(severity)
		case types.SeverityMinor:
			severity = green.Sprint(severity)
		default:
			severity = gray.Sprint(severity)
		}
		if _, err := fmt.Fprintf(w, "%-24s %-3s %s  %s\n", k, k.Code(), severity, k.Description()); err != nil {
			return err
		}
	}
	return nil
}
