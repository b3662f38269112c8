package cexpr

import "surge/internal/source"

// Expr is a node of a parsed contract expression.
type Expr interface {
	Span() source.Span
}

type exprBase struct {
	span source.Span
}

func (e exprBase) Span() source.Span { return e.span }

// NameExpr is a bare identifier: one of the four flat contracts
// ("Dyn", "Number", "Bool", "String") or a reference to a variable
// bound by an enclosing ForallExpr.
type NameExpr struct {
	exprBase
	Name string
}

// ArrayExpr is `Array <elem>`.
type ArrayExpr struct {
	exprBase
	Elem Expr
}

// DictExpr is `Dict <elem>` (lazy) or `DictType <elem>` (eager).
type DictExpr struct {
	exprBase
	Elem  Expr
	Eager bool
}

// EnumExpr is `Enum(Tag1, Tag2, ...)`.
type EnumExpr struct {
	exprBase
	Tags []string
}

// Field is one `name: Type` entry of a RecordExpr.
type Field struct {
	Name string
	Type Expr
}

// TailSpec describes a record's trailing tail clause.
type TailSpec struct {
	// Kind is one of "empty", "dyn", or "var".
	Kind string
	// Var names the row variable when Kind == "var".
	Var string
}

// RecordExpr is `{f1: T1, f2: T2; tail}`.
type RecordExpr struct {
	exprBase
	Fields []Field
	Tail   TailSpec
}

// FuncExpr is `Dom -> Cod`, right-associative.
type FuncExpr struct {
	exprBase
	Dom, Cod Expr
}

// ForallExpr is `forall x[\c1,c2,...]. Body`.
type ForallExpr struct {
	exprBase
	Var         string
	Constraints []string
	Body        Expr
}
