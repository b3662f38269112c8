package contract

import (
	"testing"

	"surge/internal/label"
	"surge/internal/source"
	"surge/internal/value"
)

func root() label.Label { return label.Root(source.NoSpan) }

func TestFlatContractsPassMatchingTag(t *testing.T) {
	if got, err := Num(root(), value.Int(3)); err != nil || got.AsNumber().Sign() != 1 {
		t.Fatalf("Num should pass a Number value, got %+v err=%v", got, err)
	}
	if _, err := Bool(root(), value.Bool(true)); err != nil {
		t.Fatalf("Bool should pass a Bool value: %v", err)
	}
	if _, err := String(root(), value.String("x")); err != nil {
		t.Fatalf("String should pass a String value: %v", err)
	}
}

func TestFlatContractsBlameMismatchedTag(t *testing.T) {
	if _, err := Num(root(), value.String("x")); err == nil {
		t.Fatalf("Num should blame a String value")
	}
	if _, err := Bool(root(), value.Int(1)); err == nil {
		t.Fatalf("Bool should blame a Number value")
	}
}

func TestDynAcceptsEverything(t *testing.T) {
	for _, v := range []value.Value{value.Null, value.Bool(true), value.Int(5), value.String("s")} {
		got, err := Dyn(root(), v)
		if err != nil {
			t.Fatalf("Dyn should never blame: %v", err)
		}
		if got.Kind != v.Kind {
			t.Fatalf("Dyn must return the value unchanged")
		}
	}
}

func TestEnumsAcceptsKnownTagAndBlamesUnknown(t *testing.T) {
	c := Enums("Ok", "Err")
	if _, err := c(root(), value.Enum("Ok")); err != nil {
		t.Fatalf("known tag should pass: %v", err)
	}
	if _, err := c(root(), value.Enum("Pending")); err == nil {
		t.Fatalf("unknown tag should blame")
	}
	if _, err := c(root(), value.Int(1)); err == nil {
		t.Fatalf("non-enum value should blame")
	}
}

func TestEqualIsStructuralOnFlatValuesOnly(t *testing.T) {
	if !Equal(value.Int(1), value.Int(1)) {
		t.Fatalf("equal numbers should compare equal")
	}
	if Equal(value.Int(1), value.Int(2)) {
		t.Fatalf("unequal numbers should not compare equal")
	}
	if Equal(value.String("a"), value.Int(1)) {
		t.Fatalf("different kinds should not compare equal")
	}
}
