// Package label implements the blame labels threaded through every
// contract application: the path travelled so far, the polarity that
// decides who is at fault on failure, the active type-variable
// environment for polymorphic contracts, and the source span of the
// original annotation.
package label

import (
	"surge/internal/sealing"
	"surge/internal/source"
)

// Polarity is positive at a type's output position and negative at an
// input position. It flips when a contract application crosses a
// function domain and is otherwise preserved.
type Polarity uint8

const (
	// Positive blames the value's producer on failure.
	Positive Polarity = iota
	// Negative blames the value's consumer on failure.
	Negative
)

// Flip returns the other polarity. Flip is an involution:
// p.Flip().Flip() == p for every p.
func (p Polarity) Flip() Polarity {
	if p == Positive {
		return Negative
	}
	return Positive
}

func (p Polarity) String() string {
	if p == Positive {
		return "positive"
	}
	return "negative"
}

// FragmentKind identifies what kind of step a PathFragment records.
type FragmentKind uint8

const (
	// FragField is a named record field.
	FragField FragmentKind = iota
	// FragArray marks "through an array element".
	FragArray
	// FragDict marks "through a dictionary value".
	FragDict
	// FragDomain marks "through a function's domain".
	FragDomain
	// FragCodomain marks "through a function's codomain".
	FragCodomain
	// FragTailOf marks "through the row tail introduced by forall r".
	FragTailOf
)

// PathFragment is one step of the path from the root annotation to the
// sub-value currently being checked.
type PathFragment struct {
	Kind FragmentKind
	Name string // populated for FragField and FragTailOf
}

func (f PathFragment) String() string {
	switch f.Kind {
	case FragField:
		return f.Name
	case FragArray:
		return "[Array]"
	case FragDict:
		return "[Dict]"
	case FragDomain:
		return "[Domain]"
	case FragCodomain:
		return "[Codomain]"
	case FragTailOf:
		return "[TailOf " + f.Name + "]"
	default:
		return "?"
	}
}

// TypeVarBinding is what a label remembers about a type or row variable
// introduced by an enclosing forall: the polarity it was bound at, and
// (for row variables) the field names forbidden in its tail.
type TypeVarBinding struct {
	Polarity    Polarity
	Constraints []string
}

// Label is the immutable context threaded through contract application.
// Every "goXxx" operation below returns a new Label; none mutate the
// receiver.
type Label struct {
	path       []PathFragment
	polarity   Polarity
	message    string
	hasMessage bool
	typeVars   map[sealing.Key]TypeVarBinding
	span       source.Span
	dualize    bool
}

// Root creates the label for a top-level `value | Contract` annotation:
// positive polarity, empty path, no diagnostic message, no bound type
// variables.
func Root(span source.Span) Label {
	return Label{polarity: Positive, span: span}
}

// clone makes a shallow copy suitable for a functional update, sharing
// the underlying path/typeVars backing arrays/maps only when they are
// not about to be mutated by the caller (append-with-copy and
// copy-on-write below keep this safe).
func (l Label) clone() Label {
	return l
}

func (l Label) withPath(frag PathFragment) Label {
	next := l.clone()
	path := make([]PathFragment, len(l.path)+1)
	copy(path, l.path)
	path[len(l.path)] = frag
	next.path = path
	return next
}

// GoField appends a named field step to the path.
func GoField(name string, l Label) Label {
	return l.withPath(PathFragment{Kind: FragField, Name: name})
}

// GoArray appends an array-element step to the path.
func GoArray(l Label) Label {
	return l.withPath(PathFragment{Kind: FragArray})
}

// GoDict appends a dictionary-value step to the path.
func GoDict(l Label) Label {
	return l.withPath(PathFragment{Kind: FragDict})
}

// GoDom appends a function-domain step to the path. It does not flip
// polarity by itself — the func contract combinator applies ChngPol
// explicitly (spec.md §4.4.2: "chng_pol(go_dom(L))"), keeping the
// contravariance decision at the call site rather than baked into the
// label primitive.
func GoDom(l Label) Label {
	return l.withPath(PathFragment{Kind: FragDomain})
}

// GoCodom appends a function-codomain step to the path. Polarity is
// unchanged: the codomain is covariant.
func GoCodom(l Label) Label {
	return l.withPath(PathFragment{Kind: FragCodomain})
}

// GoTailOf appends a row-tail step naming the sealing key's forall
// binder, for diagnostics.
func GoTailOf(name string, l Label) Label {
	return l.withPath(PathFragment{Kind: FragTailOf, Name: name})
}

// ChngPol flips the label's stored polarity.
func ChngPol(l Label) Label {
	next := l.clone()
	next.polarity = l.polarity.Flip()
	return next
}

// Dualize toggles the dualize flag, set when crossing a record merge
// (`&`): a merge swaps which side is "providing" a field, so the
// blamed party under a failing field contract must swap too.
func Dualize(l Label) Label {
	next := l.clone()
	next.dualize = !l.dualize
	return next
}

// PolarityOf returns the label's effective polarity: the stored
// polarity, flipped once more if dualize is set.
func PolarityOf(l Label) Polarity {
	if l.dualize {
		return l.polarity.Flip()
	}
	return l.polarity
}

// IsDualized reports whether l's dualize flag is currently set.
func IsDualized(l Label) bool {
	return l.dualize
}

// Path returns the label's path, root first.
func (l Label) Path() []PathFragment {
	return l.path
}

// Span returns the span of the originating annotation.
func (l Label) Span() source.Span {
	return l.span
}

// Message returns the diagnostic message attached to the label, if any.
func (l Label) Message() (string, bool) {
	return l.message, l.hasMessage
}

// WithMessage replaces the label's diagnostic message.
func WithMessage(msg string, l Label) Label {
	next := l.clone()
	next.message = msg
	next.hasMessage = true
	return next
}

// InsertTypeVariable binds key to polarity and an empty constraint set
// in a copy of l. Rebinding an already-bound key is a programmer error
// (a forall never reuses a key, because sealing.FreshKey never repeats)
// and panics rather than silently shadowing, since a shadowed binding
// would make LookupTypeVariable return the wrong polarity for outer
// uses of the same variable.
func InsertTypeVariable(key sealing.Key, polarity Polarity, l Label) Label {
	return insertTypeVariable(key, TypeVarBinding{Polarity: polarity}, l)
}

// InsertTypeVariableWithConstraints is InsertTypeVariable for a row
// variable, additionally recording the field names forbidden in its
// tail (spec.md §4.5.2's `constraints`).
func InsertTypeVariableWithConstraints(key sealing.Key, polarity Polarity, constraints []string, l Label) Label {
	return insertTypeVariable(key, TypeVarBinding{Polarity: polarity, Constraints: constraints}, l)
}

func insertTypeVariable(key sealing.Key, binding TypeVarBinding, l Label) Label {
	if _, exists := l.typeVars[key]; exists {
		panic("label: type variable already bound (duplicate forall key)")
	}
	next := l.clone()
	typeVars := make(map[sealing.Key]TypeVarBinding, len(l.typeVars)+1)
	for k, v := range l.typeVars {
		typeVars[k] = v
	}
	typeVars[key] = binding
	next.typeVars = typeVars
	return next
}

// LookupTypeVariable returns the binding recorded for key, or false if
// key has escaped its enclosing forall (or was never bound) — the
// caller should blame "escaped type variable" in that case.
func LookupTypeVariable(key sealing.Key, l Label) (TypeVarBinding, bool) {
	binding, ok := l.typeVars[key]
	return binding, ok
}
