package contract

import (
	"testing"

	"surge/internal/blame"
	"surge/internal/label"
	"surge/internal/value"
)

// E1: [1,2,3] | Array Number -> [1,2,3], observing elements triggers no blame.
func TestArrayOfNumberPassesAndObservesCleanly(t *testing.T) {
	c := Array(Num)
	arr := value.FromArray(value.FromValues([]value.Value{value.Int(1), value.Int(2), value.Int(3)}))
	got, err := c(root(), arr)
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	wrapped := got.AsArray()
	for i := 0; i < wrapped.Len(); i++ {
		if _, err := wrapped.At(i).Force(); err != nil {
			t.Fatalf("element %d should not blame: %v", i, err)
		}
	}
}

// E2: [1,"x",3] | Array Number -> blame at path [Array] when the second
// element is observed, not before.
func TestArrayBlamesOnlyWhenBadElementObserved(t *testing.T) {
	c := Array(Num)
	arr := value.FromArray(value.FromValues([]value.Value{value.Int(1), value.String("x"), value.Int(3)}))
	got, err := c(root(), arr)
	if err != nil {
		t.Fatalf("wrapping itself must not blame: %v", err)
	}
	wrapped := got.AsArray()

	if _, err := wrapped.At(0).Force(); err != nil {
		t.Fatalf("first element is fine: %v", err)
	}
	_, err = wrapped.At(1).Force()
	if err == nil {
		t.Fatalf("second element should blame")
	}
	be, _ := blame.As(err)
	if len(be.Report.Path) != 1 || be.Report.Path[0] != "[Array]" {
		t.Fatalf("unexpected path %v", be.Report.Path)
	}
}

// E3: (fun x => x+1) | Number -> Number applied to "a" -> blame at path
// [Domain], polarity negative.
func TestFuncBlamesCallerOnBadArgument(t *testing.T) {
	inc := value.FromFunction(value.FuncFrom(func(arg value.Value) (value.Value, error) {
		return value.Int(arg.AsNumber().Num().Int64() + 1), nil
	}))
	c := Func(Num, Num)
	wrapped, err := c(root(), inc)
	if err != nil {
		t.Fatalf("wrapping should not blame: %v", err)
	}
	_, err = wrapped.AsFunction().Apply(value.String("a"))
	if err == nil {
		t.Fatalf("expected blame on ill-typed argument")
	}
	be, _ := blame.As(err)
	if be.Report.Polarity != "negative" {
		t.Fatalf("expected negative polarity, got %s", be.Report.Polarity)
	}
	if len(be.Report.Path) != 1 || be.Report.Path[0] != "[Domain]" {
		t.Fatalf("unexpected path %v", be.Report.Path)
	}
}

func recordFields(t *testing.T, fields map[string]value.Value) *value.Record {
	t.Helper()
	rec := value.EmptyRecord(value.NoTail)
	for name, v := range fields {
		rec = rec.Insert(name, value.Ready(v))
	}
	return rec
}

// E4: {a=1, b="s"} | {a: Number, b: String; Dyn} -> same value.
func TestRecordContractPassesMatchingFields(t *testing.T) {
	c := Record([]FieldSpec{{"a", Num}, {"b", String}}, DynTailContract)
	rec := recordFields(t, map[string]value.Value{"a": value.Int(1), "b": value.String("s")})
	got, err := c(root(), value.FromRecord(rec))
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	out := got.AsRecord()
	av, _ := out.Get("a")
	a, _ := av.Force()
	if a.AsNumber().Sign() != 1 {
		t.Fatalf("expected field a to still be 1")
	}
}

// E5: {a=1} | {a: Number, b: String; Dyn} -> blame "missing field" b.
func TestRecordContractBlamesMissingField(t *testing.T) {
	c := Record([]FieldSpec{{"a", Num}, {"b", String}}, DynTailContract)
	rec := recordFields(t, map[string]value.Value{"a": value.Int(1)})
	_, err := c(root(), value.FromRecord(rec))
	if err == nil {
		t.Fatalf("expected blame for missing field b")
	}
	be, _ := blame.As(err)
	if be.Report.Kind != blame.KindMissingField {
		t.Fatalf("expected KindMissingField, got %v", be.Report.Kind)
	}
	if got := be.Report.Message; got == "" {
		t.Fatalf("expected a diagnostic message")
	}
}

// Property 6: record laziness — projecting field b does not blame
// because a is bad, unless a is also projected.
func TestRecordContractIsLazyPerField(t *testing.T) {
	c := Record([]FieldSpec{{"a", Num}}, DynTailContract)
	rec := recordFields(t, map[string]value.Value{
		"a": value.String("not a number"),
		"b": value.Int(2),
	})
	got, err := c(root(), value.FromRecord(rec))
	if err != nil {
		t.Fatalf("the record contract itself should not blame eagerly: %v", err)
	}
	out := got.AsRecord()
	bt, _ := out.Get("b")
	if _, err := bt.Force(); err != nil {
		t.Fatalf("projecting b should not blame: %v", err)
	}
	at, _ := out.Get("a")
	if _, err := at.Force(); err == nil {
		t.Fatalf("projecting a should blame")
	}
}

// Property 8: field order insensitivity.
func TestRecordContractFieldOrderInsensitive(t *testing.T) {
	c := Record([]FieldSpec{{"a", Num}, {"b", String}}, EmptyTailContract)
	order1 := value.EmptyRecord(value.NoTail).Insert("a", value.Ready(value.Int(1))).Insert("b", value.Ready(value.String("x")))
	order2 := value.EmptyRecord(value.NoTail).Insert("b", value.Ready(value.String("x"))).Insert("a", value.Ready(value.Int(1)))
	if _, err := c(root(), value.FromRecord(order1)); err != nil {
		t.Fatalf("order1 should pass: %v", err)
	}
	if _, err := c(root(), value.FromRecord(order2)); err != nil {
		t.Fatalf("order2 should pass: %v", err)
	}
}

func TestRecordContractEmptyTailBlamesOnExtraFields(t *testing.T) {
	c := Record([]FieldSpec{{"a", Num}}, EmptyTailContract)
	rec := recordFields(t, map[string]value.Value{"a": value.Int(1), "extra": value.Bool(true)})
	_, err := c(root(), value.FromRecord(rec))
	if err == nil {
		t.Fatalf("expected blame on extra field")
	}
	be, _ := blame.As(err)
	if be.Report.Kind != blame.KindExtraField {
		t.Fatalf("expected KindExtraField, got %v", be.Report.Kind)
	}
}

func TestDictContractIsLazyDictTypeIsEager(t *testing.T) {
	calls := 0
	counting := func(l label.Label, v value.Value) (value.Value, error) {
		calls++
		return Num(l, v)
	}
	rec := recordFields(t, map[string]value.Value{"a": value.Int(1), "b": value.Int(2)})

	calls = 0
	lazy, err := DictContract(counting)(root(), value.FromRecord(rec))
	if err != nil {
		t.Fatalf("unexpected blame: %v", err)
	}
	if calls != 0 {
		t.Fatalf("dict_contract must not check until a field is forced")
	}
	_, _ = lazy.AsRecord().Fields(), nil
	a, _ := lazy.AsRecord().Get("a")
	if _, err := a.Force(); err != nil {
		t.Fatalf("unexpected blame forcing a: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one check after forcing one field, got %d", calls)
	}

	calls = 0
	if _, err := DictType(counting)(root(), value.FromRecord(rec)); err != nil {
		t.Fatalf("unexpected blame: %v", err)
	}
	if calls != 2 {
		t.Fatalf("dict_type must check every field eagerly, got %d calls", calls)
	}
}
