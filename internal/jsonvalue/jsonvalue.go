// Package jsonvalue turns arbitrary JSON documents into
// internal/value.Value graphs, so the CLI can validate real data
// against a contract without a full term evaluator in front of it.
package jsonvalue

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"surge/internal/value"
)

// Decode reads one JSON document from r and converts it to a Value.
// Numbers are decoded with json.Number so integers and decimals alike
// round-trip into an exact big.Rat rather than through float64.
func Decode(r io.Reader) (value.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return value.Value{}, fmt.Errorf("jsonvalue: decode: %w", err)
	}
	return FromAny(raw)
}

// FromAny converts a value produced by encoding/json (with
// UseNumber() enabled) into a Value. It accepts nil, bool,
// json.Number, string, []any, and map[string]any, matching exactly
// what json.Decoder.Decode populates an `any` with.
func FromAny(raw any) (value.Value, error) {
	switch v := raw.(type) {
	case nil:
		return value.Null, nil
	case bool:
		return value.Bool(v), nil
	case json.Number:
		return numberValue(v)
	case float64:
		// Only reachable if a caller decoded without UseNumber.
		return value.Number(new(big.Rat).SetFloat64(v)), nil
	case string:
		return value.String(v), nil
	case []any:
		return arrayValue(v)
	case map[string]any:
		return recordValue(v)
	default:
		return value.Value{}, fmt.Errorf("jsonvalue: unsupported JSON type %T", raw)
	}
}

// ratToJSONNumber renders r as a JSON number literal. Integers round-trip
// exactly; non-integer rationals (e.g. 1/3) have no finite decimal
// expansion in general, so they are rendered with 20 digits after the
// decimal point, which is display precision rather than the engine's own
// exact value.
func ratToJSONNumber(r *big.Rat) json.Number {
	if r.IsInt() {
		return json.Number(r.Num().String())
	}
	return json.Number(r.FloatString(20))
}

func numberValue(n json.Number) (value.Value, error) {
	r, ok := new(big.Rat).SetString(n.String())
	if !ok {
		return value.Value{}, fmt.Errorf("jsonvalue: %q is not a valid exact number", n.String())
	}
	return value.Number(r), nil
}

func arrayValue(items []any) (value.Value, error) {
	elems := make([]value.Value, len(items))
	for i, item := range items {
		v, err := FromAny(item)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}
	return value.FromArray(value.FromValues(elems)), nil
}

// recordValue converts a JSON object. The map iteration order of
// encoding/json is not the source order, so the resulting Record's
// field order is simply the order in which Go's map iteration visits
// keys, which is randomized and can differ between runs; since JSON objects
// are themselves unordered, this does not lose anything a document
// author intended to be meaningful.
func recordValue(fields map[string]any) (value.Value, error) {
	rec := value.EmptyRecord(value.NoTail)
	for name, raw := range fields {
		v, err := FromAny(raw)
		if err != nil {
			return value.Value{}, err
		}
		rec = rec.Insert(name, value.Ready(v))
	}
	return value.FromRecord(rec), nil
}

// Encode writes v back out as JSON, forcing every thunk it reaches.
// Used by the CLI to print a value that just passed (or was wrapped
// by) a contract check; KFunction and KSealed have no JSON rendering
// and are reported as an error rather than silently dropped.
func Encode(w io.Writer, v value.Value) error {
	raw, err := ToAny(v)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}

// ToAny forces v and every value it contains into plain Go data
// (nil/bool/json.Number/string/[]any/map[string]any) suitable for
// encoding/json.
func ToAny(v value.Value) (any, error) {
	switch v.Kind {
	case value.KNull:
		return nil, nil
	case value.KBool:
		return v.AsBool(), nil
	case value.KNumber:
		return ratToJSONNumber(v.AsNumber()), nil
	case value.KString:
		return v.AsString(), nil
	case value.KEnum:
		return v.AsEnum(), nil
	case value.KArray:
		arr := v.AsArray()
		out := make([]any, arr.Len())
		for i := 0; i < arr.Len(); i++ {
			elem, err := arr.At(i).Force()
			if err != nil {
				return nil, err
			}
			conv, err := ToAny(elem)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case value.KRecord:
		rec := v.AsRecord()
		out := make(map[string]any, len(rec.Fields()))
		for _, name := range rec.Fields() {
			th, _ := rec.Get(name)
			elem, err := th.Force()
			if err != nil {
				return nil, err
			}
			conv, err := ToAny(elem)
			if err != nil {
				return nil, err
			}
			out[name] = conv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("jsonvalue: %s has no JSON rendering", v.Kind)
	}
}
