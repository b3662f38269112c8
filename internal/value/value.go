// Package value defines the runtime value representation the contract
// engine validates: the tagged sum from spec.md §3 (Null, Bool, Number,
// String, Enum, Array, Record, Function, Sealed), with lazy composite
// constructors so that building a record or array does no work beyond
// allocating thunks.
package value

import (
	"fmt"
	"math/big"

	"golang.org/x/text/unicode/norm"

	"surge/internal/sealing"
)

// Kind identifies which arm of the value sum a Value holds.
type Kind uint8

const (
	// KNull is the unit/null value.
	KNull Kind = iota
	// KBool is a boolean scalar.
	KBool
	// KNumber is an exact rational scalar.
	KNumber
	// KString is a Unicode string scalar.
	KString
	// KEnum is an enum tag scalar.
	KEnum
	// KArray is a lazy sequence of thunks.
	KArray
	// KRecord is a field map plus an optional tail.
	KRecord
	// KFunction is a callable closure.
	KFunction
	// KSealed is an opaque value bound to a sealing key.
	KSealed
)

func (k Kind) String() string {
	switch k {
	case KNull:
		return "Null"
	case KBool:
		return "Bool"
	case KNumber:
		return "Number"
	case KString:
		return "String"
	case KEnum:
		return "Enum"
	case KArray:
		return "Array"
	case KRecord:
		return "Record"
	case KFunction:
		return "Function"
	case KSealed:
		return "Sealed"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Function is a callable Surge-contract-engine closure. Apply may be a
// plain Go function (a primitive, or a wrapper built by the func
// contract combinator) or something backed by a host evaluator; the
// contract engine only ever calls Apply.
type Function interface {
	Apply(arg Value) (Value, error)
}

// FuncFrom adapts a plain Go function into a Function.
type FuncFrom func(arg Value) (Value, error)

// Apply implements Function.
func (f FuncFrom) Apply(arg Value) (Value, error) { return f(arg) }

// Sealed is the payload of a KSealed value: an inner value opaque to
// everything but an Unseal presenting the matching key. It is a
// separate pointer-sized indirection (rather than embedding
// sealing.Sealed[Value] directly) purely so Value's own size stays
// finite despite the mutual reference.
type Sealed struct {
	Key   sealing.Key
	Inner Value
}

// Value is the tagged sum described by spec.md §3. The zero Value is
// KNull.
type Value struct {
	Kind Kind

	boolVal   bool
	numVal    *big.Rat
	strVal    string
	enumVal   string
	arrayVal  *Array
	recordVal *Record
	funcVal   Function
	sealedVal *Sealed
}

// Null is the singular null value.
var Null = Value{Kind: KNull}

// Bool constructs a KBool value.
func Bool(b bool) Value {
	return Value{Kind: KBool, boolVal: b}
}

// Number constructs a KNumber value from an exact rational. Numbers are
// always copied defensively so a caller mutating their *big.Rat after
// the call cannot retroactively change an already-constructed Value.
func Number(r *big.Rat) Value {
	cp := new(big.Rat).Set(r)
	return Value{Kind: KNumber, numVal: cp}
}

// Int constructs a KNumber value from an integer.
func Int(n int64) Value {
	return Value{Kind: KNumber, numVal: new(big.Rat).SetInt64(n)}
}

// String constructs a KString value, normalized to NFC so that
// structural equality and contract comparisons do not depend on an
// incidental choice of Unicode decomposition (spec.md §3: "Strings are
// Unicode").
func String(s string) Value {
	return Value{Kind: KString, strVal: norm.NFC.String(s)}
}

// Enum constructs a KEnum value carrying the given tag.
func Enum(tag string) Value {
	return Value{Kind: KEnum, enumVal: tag}
}

// FromArray constructs a KArray value.
func FromArray(a *Array) Value {
	return Value{Kind: KArray, arrayVal: a}
}

// FromRecord constructs a KRecord value.
func FromRecord(r *Record) Value {
	return Value{Kind: KRecord, recordVal: r}
}

// FromFunction constructs a KFunction value.
func FromFunction(f Function) Value {
	return Value{Kind: KFunction, funcVal: f}
}

// FromSealed constructs a KSealed value.
func FromSealed(key sealing.Key, inner Value) Value {
	return Value{Kind: KSealed, sealedVal: &Sealed{Key: key, Inner: inner}}
}

// AsBool returns the boolean payload; callers must check Kind == KBool.
func (v Value) AsBool() bool { return v.boolVal }

// AsNumber returns the rational payload; callers must check Kind == KNumber.
func (v Value) AsNumber() *big.Rat { return v.numVal }

// AsString returns the string payload; callers must check Kind == KString.
func (v Value) AsString() string { return v.strVal }

// AsEnum returns the enum tag payload; callers must check Kind == KEnum.
func (v Value) AsEnum() string { return v.enumVal }

// AsArray returns the array payload; callers must check Kind == KArray.
func (v Value) AsArray() *Array { return v.arrayVal }

// AsRecord returns the record payload; callers must check Kind == KRecord.
func (v Value) AsRecord() *Record { return v.recordVal }

// AsFunction returns the function payload; callers must check Kind == KFunction.
func (v Value) AsFunction() Function { return v.funcVal }

// AsSealed returns the sealed payload; callers must check Kind == KSealed.
func (v Value) AsSealed() *Sealed { return v.sealedVal }

// TypeTag names the flat tag evaluator primitives would report for this
// value (spec.md §6 `typeof`), matching the vocabulary flat contracts
// blame against.
func (v Value) TypeTag() string {
	return v.Kind.String()
}
