package contract

import (
	"surge/internal/blame"
	"surge/internal/label"
	"surge/internal/value"
)

// Dyn is the `$dyn` contract: it accepts any value unchanged
// (spec.md §8 property 2).
func Dyn(l label.Label, v value.Value) (value.Value, error) {
	return v, nil
}

// Fail is the `$fail` contract: it always blames, regardless of the
// value. It is the residual case of an Enums dispatch whose tag
// matched nothing.
func Fail(l label.Label, v value.Value) (value.Value, error) {
	return value.Value{}, blame.New(blame.KindUnmatchedEnumTag, l)
}

func flat(kind value.Kind, name string) Contract {
	return func(l label.Label, v value.Value) (value.Value, error) {
		if v.Kind != kind {
			return value.Value{}, blame.Withf(blame.KindTypeMismatch, l, "expected %s, got %s", name, v.Kind)
		}
		return v, nil
	}
}

// Num is the `$num` contract: it blames unless the value's tag is Number.
var Num Contract = flat(value.KNumber, "Number")

// Bool is the `$bool` contract: it blames unless the value's tag is Bool.
var Bool Contract = flat(value.KBool, "Bool")

// String is the `$string` contract: it blames unless the value's tag is String.
var String Contract = flat(value.KString, "String")

// Enums is the `$enums` contract builder: it blames unless the value is
// an Enum tag, then blames with KindUnmatchedEnumTag unless the tag is
// one of the declared cases (spec.md §4.3's "case" dispatch, collapsed
// here since every known tag is accepted unconditionally and every
// unknown tag falls through to Fail — there is nothing else a flat enum
// case can do).
func Enums(tags ...string) Contract {
	known := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		known[t] = struct{}{}
	}
	return func(l label.Label, v value.Value) (value.Value, error) {
		if v.Kind != value.KEnum {
			return value.Value{}, blame.Withf(blame.KindTypeMismatch, l, "expected Enum, got %s", v.Kind)
		}
		if _, ok := known[v.AsEnum()]; !ok {
			return Fail(l, v)
		}
		return v, nil
	}
}

// Equal is the `$stdlib_contract_equal` combinator: structural equality
// between two flat values (Number, Bool, String, Enum). Structural
// contracts (Array, Record, Function, Forall) are not comparable this
// way — function/contract identity has no useful structural notion of
// equality, matching the restriction the host language itself imposes
// on `==` over functions.
func Equal(a, b value.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case value.KNull:
		return true
	case value.KBool:
		return a.AsBool() == b.AsBool()
	case value.KNumber:
		return a.AsNumber().Cmp(b.AsNumber()) == 0
	case value.KString:
		return a.AsString() == b.AsString()
	case value.KEnum:
		return a.AsEnum() == b.AsEnum()
	default:
		return false
	}
}
