// Package report renders blame.Report values for a terminal and
// serializes them for CI consumption, scoped to the one diagnostic
// kind this subsystem produces.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"

	"surge/internal/blame"
)

// Options controls how Render formats a report.
type Options struct {
	Color bool
	// Width is the terminal column width to wrap the message at; 0
	// disables wrapping.
	Width int
}

var (
	negativeColor = color.New(color.FgRed, color.Bold)
	positiveColor = color.New(color.FgYellow, color.Bold)
	pathColor     = color.New(color.FgCyan)
	kindColor     = color.New(color.FgMagenta)
)

// Render writes a one-report-per-block human-readable rendering of
// reports to w.
func Render(w io.Writer, reports []blame.Report, opts Options) error {
	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := renderOne(w, r, opts); err != nil {
			return err
		}
	}
	return nil
}

func renderOne(w io.Writer, r blame.Report, opts Options) error {
	polarityText := polarityLabel(r)
	kindText := r.Kind.String()
	if opts.Color {
		polarityText = colorFor(r).Sprint(polarityText)
		kindText = kindColor.Sprint(kindText)
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", polarityText, kindText); err != nil {
		return err
	}

	msg := r.Message
	if msg == "" {
		msg = "contract violation"
	}
	for _, line := range wrap(msg, opts.Width) {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}

	if len(r.Path) > 0 {
		pathText := strings.Join(r.Path, " . ")
		if opts.Color {
			pathText = pathColor.Sprint(pathText)
		}
		if _, err := fmt.Fprintf(w, "  at %s\n", pathText); err != nil {
			return err
		}
	}
	return nil
}

func polarityLabel(r blame.Report) string {
	if r.Polarity == "negative" {
		return "blame[caller]"
	}
	return "blame[producer]"
}

func colorFor(r blame.Report) *color.Color {
	if r.Polarity == "negative" {
		return negativeColor
	}
	return positiveColor
}

// wrap splits s into lines no wider than width display columns,
// breaking on spaces. Display width is measured with go-runewidth
// after folding each rune to its canonical width with
// golang.org/x/text/width, so full-width punctuation from a message
// embedding non-ASCII field names still wraps at the right column.
func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	lineWidth := displayWidth(line)
	for _, word := range words[1:] {
		wordWidth := displayWidth(word)
		if lineWidth+1+wordWidth > width {
			lines = append(lines, line)
			line = word
			lineWidth = wordWidth
			continue
		}
		line += " " + word
		lineWidth += 1 + wordWidth
	}
	lines = append(lines, line)
	return lines
}

func displayWidth(s string) int {
	total := 0
	for _, r := range s {
		total += runewidth.RuneWidth(foldWidth(r))
	}
	return total
}

// foldWidth maps a full-width or half-width rune to its canonical
// counterpart before measuring, so a message mixing ASCII and
// East Asian punctuation wraps on a consistent column count.
func foldWidth(r rune) rune {
	if folded := width.LookupRune(r).Folded(); folded != 0 {
		return folded
	}
	return r
}
