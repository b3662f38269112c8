package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"surge/internal/blame"
	"surge/internal/config"
	"surge/internal/jsonvalue"
)

var (
	checkExpr string
)

func init() {
	checkCmd.Flags().StringVar(&checkExpr, "expr", "", "inline contract expression, overriding any [contracts] alias")
}

var checkCmd = &cobra.Command{
	Use:   "check <contract> <data.json>",
	Short: "Validate a JSON document against one contract",
	Long:  `check parses a contract expression (an alias from nlc.toml's [contracts] table, or an inline expression given as the first argument or via --expr), loads a JSON document, and reports whether it satisfies the contract.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, _, err := config.Discover(".")
	if err != nil {
		return fmt.Errorf("loading nlc.toml: %w", err)
	}

	name := args[0]
	expr := checkExpr
	if expr == "" {
		expr = resolveContractExpr(cfg, name)
	}

	t := target{name: name, contractExpr: expr, dataPath: args[1]}
	out := runTarget(t)

	reportFormat := config.FormatText
	color := true
	if cfg != nil {
		reportFormat = cfg.ReportFormat
		color = cfg.Color
	}
	if fv, _ := cmd.Root().PersistentFlags().GetString("report-format"); fv != "" {
		reportFormat = config.ReportFormat(fv)
	}
	color = resolveColor(cmd, color)
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	switch {
	case out.err != nil:
		return out.err
	case out.blame != nil:
		if err := writeReports(os.Stdout, []blame.Report{out.blame.Report}, reportFormat, color); err != nil {
			return err
		}
		return fmt.Errorf("check: %s violates %s", t.dataPath, t.name)
	default:
		if !quiet && reportFormat != config.FormatMsgpack {
			if err := jsonvalue.Encode(os.Stdout, out.value); err != nil {
				return err
			}
		}
		return nil
	}
}
