package jsonvalue

import (
	"strings"
	"testing"

	"surge/internal/value"
)

func TestDecodeScalars(t *testing.T) {
	v, err := Decode(strings.NewReader(`42`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != value.KNumber || v.AsNumber().Sign() != 1 {
		t.Fatalf("expected Number 42, got %+v", v)
	}

	v, err = Decode(strings.NewReader(`"hello"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != value.KString || v.AsString() != "hello" {
		t.Fatalf("expected String hello, got %+v", v)
	}

	v, err = Decode(strings.NewReader(`null`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != value.KNull {
		t.Fatalf("expected Null, got %+v", v)
	}
}

func TestDecodeArray(t *testing.T) {
	v, err := Decode(strings.NewReader(`[1, 2, 3]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != value.KArray || v.AsArray().Len() != 3 {
		t.Fatalf("expected a 3-element array, got %+v", v)
	}
	elem, err := v.AsArray().At(1).Force()
	if err != nil || elem.AsNumber().Sign() != 1 {
		t.Fatalf("expected element 1 to be positive, got %+v err=%v", elem, err)
	}
}

func TestDecodeObject(t *testing.T) {
	v, err := Decode(strings.NewReader(`{"a": 1, "b": "x"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != value.KRecord {
		t.Fatalf("expected a Record, got %+v", v)
	}
	rec := v.AsRecord()
	at, ok := rec.Get("a")
	if !ok {
		t.Fatalf("expected field a")
	}
	av, err := at.Force()
	if err != nil || av.AsNumber().Sign() != 1 {
		t.Fatalf("expected a = 1, got %+v err=%v", av, err)
	}
	bt, ok := rec.Get("b")
	if !ok {
		t.Fatalf("expected field b")
	}
	bv, err := bt.Force()
	if err != nil || bv.AsString() != "x" {
		t.Fatalf("expected b = x, got %+v err=%v", bv, err)
	}
}

func TestDecodeExactDecimal(t *testing.T) {
	v, err := Decode(strings.NewReader(`1.5`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "3/2"
	if got := v.AsNumber().RatString(); got != want {
		t.Fatalf("expected exact rational %s, got %s", want, got)
	}
}

func TestDecodeRejectsUnsupportedTopLevel(t *testing.T) {
	if _, err := Decode(strings.NewReader(`not json`)); err == nil {
		t.Fatalf("expected a decode error for malformed input")
	}
}
