package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"surge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "nlc",
	Short: "Check data against Nickel-style contracts",
	Long:  `nlc validates JSON documents against contract expressions: flat type checks, lazy structural checks over arrays/records/functions, and forall-bound parametric and row-polymorphic contracts.`,
}

var (
	timeoutCancel context.CancelFunc
)

func main() {
	rootCmd.Version = version.Version
	rootCmd.PersistentPreRunE = applyTimeout
	rootCmd.PersistentPostRun = cleanupTimeout

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(checkAllCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("report-format", "", "override nlc.toml's report format (text|json|msgpack)")
	rootCmd.PersistentFlags().Int("timeout", 30, "command timeout in seconds")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor applies --color (on|off|auto) over a config-file
// default. auto, the flag's own default, defers to configColor rather
// than always forcing a terminal probe, so nlc.toml's [check].color
// still wins when the user never touches the flag.
func resolveColor(cmd *cobra.Command, configColor bool) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return configColor
	}
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	case "auto":
		if !cmd.Root().PersistentFlags().Changed("color") {
			return configColor
		}
		return isTerminal(os.Stdout)
	default:
		return configColor
	}
}

func applyTimeout(cmd *cobra.Command, _ []string) error {
	secs, err := cmd.Root().PersistentFlags().GetInt("timeout")
	if err != nil {
		return fmt.Errorf("failed to read timeout flag: %w", err)
	}
	if secs <= 0 {
		return fmt.Errorf("timeout must be greater than zero")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(secs)*time.Second)
	timeoutCancel = cancel
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			fmt.Fprintf(os.Stderr, "nlc: command timed out after %ds\n", secs)
			os.Exit(1)
		}
	}()
	return nil
}

func cleanupTimeout(*cobra.Command, []string) {
	if timeoutCancel != nil {
		timeoutCancel()
		timeoutCancel = nil
	}
}
