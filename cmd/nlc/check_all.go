package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"surge/internal/blame"
	"surge/internal/config"
	"surge/internal/ui"
)

var (
	checkAllJobs int
	checkAllUI   bool
)

func init() {
	checkAllCmd.Flags().IntVar(&checkAllJobs, "jobs", 0, "maximum concurrent checks (0 = GOMAXPROCS)")
	checkAllCmd.Flags().BoolVar(&checkAllUI, "ui", false, "show a live progress bar while checking")
}

var checkAllCmd = &cobra.Command{
	Use:   "check-all <data.json> [data.json...]",
	Short: "Validate many JSON documents concurrently",
	Long:  `check-all checks each data file against the [contracts] alias matching its base name (data/Port.json uses the "Port" alias) and reports every failure, rather than stopping at the first one.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheckAll,
}

func runCheckAll(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, _, err := config.Discover(".")
	if err != nil {
		return fmt.Errorf("loading nlc.toml: %w", err)
	}

	targets := make([]target, len(args))
	for i, path := range args {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		targets[i] = target{name: name, contractExpr: resolveContractExpr(cfg, name), dataPath: path}
	}

	jobs := checkAllJobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var outcomes []outcome
	if checkAllUI {
		outcomes, err = runChecksWithUI(cmd, targets, jobs)
	} else {
		outcomes, err = runChecks(cmd, targets, jobs, nil)
	}
	if err != nil {
		return err
	}

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

	var reports []blame.Report
	var failed, errored int
	for _, out := range outcomes {
		switch {
		case out.err != nil:
			errored++
			fmt.Fprintf(os.Stderr, "%s: %v\n", out.target.dataPath, out.err)
		case out.blame != nil:
			failed++
			reports = append(reports, out.blame.Report)
		}
	}

	if len(reports) > 0 {
		if err := writeReports(os.Stdout, reports, reportFormat, color); err != nil {
			return err
		}
	}
	if failed > 0 || errored > 0 {
		return fmt.Errorf("check-all: %d failed, %d errored, %d passed", failed, errored, len(targets)-failed-errored)
	}
	return nil
}

// runChecks runs targets concurrently under an errgroup, bounded by
// jobs, writing one ui.CheckEvent per stage transition to sink when
// sink is non-nil.
func runChecks(cmd *cobra.Command, targets []target, jobs int, sink ui.Sink) ([]outcome, error) {
	outcomes := make([]outcome, len(targets))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(targets)))

	for i, t := range targets {
		g.Go(func(i int, t target) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				if sink != nil {
					sink.Send(ui.CheckEvent{File: t.dataPath, Stage: ui.StageParse, Status: ui.StatusWorking})
				}
				out := runTarget(t)
				outcomes[i] = out
				if sink != nil {
					status := ui.StatusDone
					if out.err != nil || out.blame != nil {
						status = ui.StatusError
					}
					sink.Send(ui.CheckEvent{File: t.dataPath, Stage: ui.StageValidate, Status: status})
				}
				return nil
			}
		}(i, t))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// runChecksWithUI drives runChecks in the background while a Bubble
// Tea progress bar runs in the foreground, mirroring the
// run-in-goroutine/program.Run-in-caller split the build commands use
// for their own progress UI.
func runChecksWithUI(cmd *cobra.Command, targets []target, jobs int) ([]outcome, error) {
	paths := make([]string, len(targets))
	for i, t := range targets {
		paths[i] = t.dataPath
	}

	events := make(chan ui.CheckEvent, 256)
	type result struct {
		outcomes []outcome
		err      error
	}
	resultCh := make(chan result, 1)

	go func() {
		outcomes, err := runChecks(cmd, targets, jobs, ui.ChannelSink{Ch: events})
		resultCh <- result{outcomes: outcomes, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("check-all", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	res := <-resultCh
	if uiErr != nil {
		return res.outcomes, uiErr
	}
	return res.outcomes, res.err
}
