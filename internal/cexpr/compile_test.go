package cexpr

import (
	"testing"

	"surge/internal/label"
	"surge/internal/source"
	"surge/internal/value"
)

func mustCompile(t *testing.T, src string) func(v value.Value) (value.Value, error) {
	t.Helper()
	expr, err := Parse(source.NoFileID, src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c, err := Compile(expr)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return func(v value.Value) (value.Value, error) {
		return c(label.Root(source.NoSpan), v)
	}
}

func TestCompileArrayOfNumberChecksElements(t *testing.T) {
	check := mustCompile(t, "Array Number")
	good := value.FromArray(value.FromValues([]value.Value{value.Int(1), value.Int(2)}))
	got, err := check(good)
	if err != nil {
		t.Fatalf("unexpected blame: %v", err)
	}
	if _, err := got.AsArray().At(0).Force(); err != nil {
		t.Fatalf("unexpected blame forcing element 0: %v", err)
	}

	bad := value.FromArray(value.FromValues([]value.Value{value.String("x")}))
	got, err = check(bad)
	if err != nil {
		t.Fatalf("wrapping should not blame eagerly: %v", err)
	}
	if _, err := got.AsArray().At(0).Force(); err == nil {
		t.Fatalf("expected blame forcing a non-number element")
	}
}

func TestCompileRecordWithDynTail(t *testing.T) {
	check := mustCompile(t, "{a: Number; Dyn}")
	rec := value.EmptyRecord(value.NoTail).
		Insert("a", value.Ready(value.Int(1))).
		Insert("extra", value.Ready(value.Bool(true)))
	got, err := check(value.FromRecord(rec))
	if err != nil {
		t.Fatalf("unexpected blame: %v", err)
	}
	if _, ok := got.AsRecord().Get("extra"); !ok {
		t.Fatalf("expected the dyn tail to preserve the extra field")
	}
}

func TestCompileMissingFieldBlames(t *testing.T) {
	check := mustCompile(t, "{a: Number, b: String}")
	rec := value.EmptyRecord(value.NoTail).Insert("a", value.Ready(value.Int(1)))
	if _, err := check(value.FromRecord(rec)); err == nil {
		t.Fatalf("expected blame for a missing required field")
	}
}

func TestCompileForallRowVariable(t *testing.T) {
	expr, err := Parse(source.NoFileID, "forall r\\a. {a: Number; r} -> {a: Number, z: Number; r}")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c, err := Compile(expr)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	fn := value.FromFunction(value.FuncFrom(func(arg value.Value) (value.Value, error) {
		rec := arg.AsRecord()
		return value.FromRecord(rec.Insert("z", value.Ready(value.Int(9)))), nil
	}))
	wrapped, err := c(label.Root(source.NoSpan), fn)
	if err != nil {
		t.Fatalf("unexpected blame wrapping the function: %v", err)
	}

	input := value.EmptyRecord(value.NoTail).
		Insert("a", value.Ready(value.Int(1))).
		Insert("b", value.Ready(value.Int(2)))
	out, err := wrapped.AsFunction().Apply(value.FromRecord(input))
	if err != nil {
		t.Fatalf("unexpected blame applying the wrapped function: %v", err)
	}
	bt, ok := out.AsRecord().Get("b")
	if !ok {
		t.Fatalf("expected the untyped field b to survive through the row variable")
	}
	if bv, err := bt.Force(); err != nil || bv.AsNumber().Sign() != 1 {
		t.Fatalf("expected b still bound to 2, got %+v err=%v", bv, err)
	}
}

func TestCompileUndefinedVariableErrors(t *testing.T) {
	expr, err := Parse(source.NoFileID, "Array a")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, err := Compile(expr); err == nil {
		t.Fatalf("expected a compile error for an unbound variable")
	}
}
