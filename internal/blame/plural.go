package blame

import "fmt"

// FieldList renders a sorted-by-caller list of backtick-quoted field
// names for a diagnostic, e.g. "field `b`" or "fields `a`, `b`"
// (spec.md §7: "Diagnostic messages follow English pluralisation of the
// offending list"). This is the one place in the module built
// deliberately on the standard library rather than a pack dependency:
// no example repo in the corpus imports a pluralization library, and a
// single irregular-free noun ("field(s)") does not warrant pulling one
// in — see DESIGN.md.
func FieldList(names []string) string {
	noun := "field"
	if len(names) != 1 {
		noun = "fields"
	}
	out := noun + " "
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("`%s`", n)
	}
	return out
}
