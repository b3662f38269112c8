package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"surge/internal/blame"
	"surge/internal/cexpr"
	"surge/internal/config"
	"surge/internal/contract"
	"surge/internal/jsonvalue"
	"surge/internal/label"
	"surge/internal/report"
	"surge/internal/source"
	"surge/internal/value"
)

// target is one resolved (contract, data) pair `nlc check` runs.
type target struct {
	name         string
	contractExpr string
	dataPath     string
}

// outcome is what running a target against its contract produced.
type outcome struct {
	target target
	value  value.Value
	blame  *blame.Error
	err    error
}

// resolveContractExpr looks up name in cfg (when cfg is non-nil),
// falling back to treating name itself as an inline cexpr expression
// when it isn't a known alias — so `nlc check 'Array Number' data.json`
// works even with no nlc.toml in scope.
func resolveContractExpr(cfg *config.Config, name string) string {
	if cfg != nil {
		if expr, ok := cfg.Contracts[name]; ok {
			return expr
		}
	}
	return name
}

// loadData reads a JSON document from path, or from stdin when path
// is "-".
func loadData(path string) (value.Value, error) {
	if path == "-" {
		return jsonvalue.Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return value.Value{}, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()
	return jsonvalue.Decode(f)
}

// runTarget compiles t.contractExpr and checks the data at t.dataPath
// against it, returning the result without printing anything so
// callers (check and check-all) can aggregate reports their own way.
func runTarget(t target) outcome {
	fs := source.NewFileSet()
	file := fs.Add(t.name, []byte(t.contractExpr))

	expr, err := cexpr.Parse(file, t.contractExpr)
	if err != nil {
		return outcome{target: t, err: fmt.Errorf("parsing contract %q: %w", t.name, err)}
	}
	c, err := cexpr.Compile(expr)
	if err != nil {
		return outcome{target: t, err: fmt.Errorf("compiling contract %q: %w", t.name, err)}
	}

	data, err := loadData(t.dataPath)
	if err != nil {
		return outcome{target: t, err: err}
	}

	checked, err := contract.Apply(c, label.Root(source.NoSpan), data)
	if err == nil {
		return outcome{target: t, value: checked}
	}
	var be *blame.Error
	if errors.As(err, &be) {
		return outcome{target: t, blame: be}
	}
	return outcome{target: t, err: err}
}

// writeReports renders the blame reports gathered from one or more
// outcomes in the requested format.
func writeReports(w io.Writer, reports []blame.Report, format config.ReportFormat, color bool) error {
	switch format {
	case config.FormatJSON:
		return report.WriteJSON(w, reports)
	case config.FormatMsgpack:
		return report.WriteMsgpack(w, reports)
	default:
		return report.Render(w, reports, report.Options{Color: color})
	}
}
