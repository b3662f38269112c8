// Package blame turns a failing contract check into the structured,
// fatal report described by spec.md §6/§7: a path through the nested
// contract, the polarity that assigns fault, an optional human
// message, and the span of the original annotation.
package blame

import (
	"errors"
	"fmt"

	"surge/internal/label"
	"surge/internal/source"
)

// Kind classifies why a contract failed, matching spec.md §7's
// enumeration. It exists purely for diagnostics/testing; the contract
// engine itself never branches on it.
type Kind uint8

const (
	// KindTypeMismatch is a flat contract's scalar tag check failing.
	KindTypeMismatch Kind = iota
	// KindMissingField is a record contract's prefix not satisfied.
	KindMissingField
	// KindExtraField is a row-polymorphic contract's residual fields.
	KindExtraField
	// KindForbiddenTailField is a residual field colliding with the prefix.
	KindForbiddenTailField
	// KindTailMismatch is a sealed tail under the wrong key.
	KindTailMismatch
	// KindSealedLeak is unsealing with the wrong key.
	KindSealedLeak
	// KindUnmatchedEnumTag is an enum value with no matching case.
	KindUnmatchedEnumTag
)

func (k Kind) String() string {
	switch k {
	case KindTypeMismatch:
		return "type-mismatch"
	case KindMissingField:
		return "missing-field"
	case KindExtraField:
		return "extra-field"
	case KindForbiddenTailField:
		return "forbidden-tail-field"
	case KindTailMismatch:
		return "tail-mismatch"
	case KindSealedLeak:
		return "sealed-leak"
	case KindUnmatchedEnumTag:
		return "unmatched-enum-tag"
	default:
		return "unknown"
	}
}

// Report is the structured record described by spec.md §6.
type Report struct {
	Kind     Kind
	Path     []string
	Polarity string
	Message  string
	Span     source.Span
}

// Error is the error value a blamed contract check returns. It is
// fatal within the contract subsystem: nothing in internal/contract
// recovers from it, only a caller at an evaluator-level boundary might
// (spec.md §7).
type Error struct {
	Report Report
}

func (e *Error) Error() string {
	if e.Report.Message != "" {
		return fmt.Sprintf("blame[%s]: %s at %v (%s)", e.Report.Polarity, e.Report.Message, e.Report.Path, e.Report.Kind)
	}
	return fmt.Sprintf("blame[%s]: contract violation at %v (%s)", e.Report.Polarity, e.Report.Path, e.Report.Kind)
}

// New builds a blame Error from a label and a failure kind, pulling
// path/polarity/message/span straight from the label.
func New(kind Kind, l label.Label) error {
	msg, _ := l.Message()
	frags := l.Path()
	path := make([]string, len(frags))
	for i, f := range frags {
		path[i] = f.String()
	}
	return &Error{Report: Report{
		Kind:     kind,
		Path:     path,
		Polarity: label.PolarityOf(l).String(),
		Message:  msg,
		Span:     l.Span(),
	}}
}

// Withf is New with a formatted message, for failures whose diagnostic
// is generated at the blame site rather than carried by the label
// (e.g. "missing fields `b`, `c`").
func Withf(kind Kind, l label.Label, format string, args ...any) error {
	return New(kind, label.WithMessage(fmt.Sprintf(format, args...), l))
}

// As extracts the *Error from a generic error, mirroring errors.As for
// callers that want the structured Report (e.g. internal/report).
func As(err error) (*Error, bool) {
	var be *Error
	ok := errors.As(err, &be)
	return be, ok
}
