package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"surge/internal/config"
	"surge/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <contract> <data.json>",
	Short: "Browse a checked value one field at a time",
	Long:  `inspect checks one data file against a contract (an [contracts] alias or an inline expression) and opens a terminal UI for drilling into the result Record/Array field by field. Each field is forced only when you select it, so browsing never forces more of the value than you actually look at.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, _, err := config.Discover(".")
	if err != nil {
		return fmt.Errorf("loading nlc.toml: %w", err)
	}

	name := args[0]
	t := target{name: name, contractExpr: resolveContractExpr(cfg, name), dataPath: args[1]}
	out := runTarget(t)
	if out.err != nil {
		return out.err
	}
	if out.blame != nil {
		return fmt.Errorf("inspect: %s violates %s: %s", t.dataPath, t.name, out.blame.Error())
	}

	program := tea.NewProgram(ui.NewInspectModel(t.name, out.value), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
