package cexpr

import (
	"testing"

	"surge/internal/source"
)

func TestParseArray(t *testing.T) {
	expr, err := Parse(source.NoFileID, "Array Number")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	arr, ok := expr.(ArrayExpr)
	if !ok {
		t.Fatalf("expected ArrayExpr, got %T", expr)
	}
	if name, ok := arr.Elem.(NameExpr); !ok || name.Name != "Number" {
		t.Fatalf("expected element Number, got %+v", arr.Elem)
	}
}

func TestParseRecordWithDynTail(t *testing.T) {
	expr, err := Parse(source.NoFileID, "{a: Number, b: String; Dyn}")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	rec, ok := expr.(RecordExpr)
	if !ok {
		t.Fatalf("expected RecordExpr, got %T", expr)
	}
	if len(rec.Fields) != 2 || rec.Fields[0].Name != "a" || rec.Fields[1].Name != "b" {
		t.Fatalf("unexpected fields %+v", rec.Fields)
	}
	if rec.Tail.Kind != "dyn" {
		t.Fatalf("expected a dyn tail, got %+v", rec.Tail)
	}
}

func TestParseRecordWithNoTailIsEmpty(t *testing.T) {
	expr, err := Parse(source.NoFileID, "{a: Number}")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	rec := expr.(RecordExpr)
	if rec.Tail.Kind != "empty" {
		t.Fatalf("expected an empty tail by default, got %+v", rec.Tail)
	}
}

func TestParseFuncArrowIsRightAssociative(t *testing.T) {
	expr, err := Parse(source.NoFileID, "Number -> Bool -> String")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	outer, ok := expr.(FuncExpr)
	if !ok {
		t.Fatalf("expected FuncExpr, got %T", expr)
	}
	if _, ok := outer.Dom.(NameExpr); !ok {
		t.Fatalf("expected a plain domain, got %+v", outer.Dom)
	}
	inner, ok := outer.Cod.(FuncExpr)
	if !ok {
		t.Fatalf("expected the codomain to itself be a FuncExpr (right-associative), got %+v", outer.Cod)
	}
	if name, ok := inner.Dom.(NameExpr); !ok || name.Name != "Bool" {
		t.Fatalf("unexpected inner domain %+v", inner.Dom)
	}
}

func TestParseForallWithRowConstraints(t *testing.T) {
	expr, err := Parse(source.NoFileID, "forall r\\a,z. {a: Number; r} -> {a: Number, z: Number; r}")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fa, ok := expr.(ForallExpr)
	if !ok {
		t.Fatalf("expected ForallExpr, got %T", expr)
	}
	if fa.Var != "r" {
		t.Fatalf("expected bound variable r, got %q", fa.Var)
	}
	if len(fa.Constraints) != 2 || fa.Constraints[0] != "a" || fa.Constraints[1] != "z" {
		t.Fatalf("unexpected constraints %v", fa.Constraints)
	}
	fn, ok := fa.Body.(FuncExpr)
	if !ok {
		t.Fatalf("expected the forall body to be a FuncExpr, got %T", fa.Body)
	}
	dom := fn.Dom.(RecordExpr)
	if dom.Tail.Kind != "var" || dom.Tail.Var != "r" {
		t.Fatalf("expected the domain's tail to reference r, got %+v", dom.Tail)
	}
}

func TestParseRecordWithEmptyPrefixAndRowTail(t *testing.T) {
	expr, err := Parse(source.NoFileID, "{; r}")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	rec, ok := expr.(RecordExpr)
	if !ok {
		t.Fatalf("expected RecordExpr, got %T", expr)
	}
	if len(rec.Fields) != 0 {
		t.Fatalf("expected no typed fields, got %+v", rec.Fields)
	}
	if rec.Tail.Kind != "var" || rec.Tail.Var != "r" {
		t.Fatalf("expected a row-variable tail named r, got %+v", rec.Tail)
	}
}

func TestParseEnum(t *testing.T) {
	expr, err := Parse(source.NoFileID, "Enum(Ok, Err)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	en, ok := expr.(EnumExpr)
	if !ok {
		t.Fatalf("expected EnumExpr, got %T", expr)
	}
	if len(en.Tags) != 2 || en.Tags[0] != "Ok" || en.Tags[1] != "Err" {
		t.Fatalf("unexpected tags %v", en.Tags)
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	if _, err := Parse(source.NoFileID, "Number Bool"); err == nil {
		t.Fatalf("expected a parse error for trailing garbage")
	}
}

func TestParseRejectsMissingFieldType(t *testing.T) {
	if _, err := Parse(source.NoFileID, "{a: }"); err == nil {
		t.Fatalf("expected a parse error for a missing field type")
	}
}
