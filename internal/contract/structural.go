package contract

import (
	"sort"

	"surge/internal/blame"
	"surge/internal/label"
	"surge/internal/value"
)

// Array returns the `$array` combinator: it blames unless the value is
// an Array, then returns a lazily wrapped array that defers elem to
// each element's projection (spec.md §4.4.1).
func Array(elem Contract) Contract {
	return func(l label.Label, v value.Value) (value.Value, error) {
		if v.Kind != value.KArray {
			return value.Value{}, blame.Withf(blame.KindTypeMismatch, l, "expected Array, got %s", v.Kind)
		}
		elemLabel := label.GoArray(l)
		wrapped := v.AsArray().Map(func(t *value.Thunk) (value.Value, error) {
			raw, err := t.Force()
			if err != nil {
				return value.Value{}, err
			}
			return elem(elemLabel, raw)
		})
		return value.FromArray(wrapped), nil
	}
}

// Func returns the `$func` combinator: it blames unless the value is a
// Function, then returns a wrapper that checks dom contravariantly on
// the argument and cod covariantly on the result (spec.md §4.4.2).
func Func(dom, cod Contract) Contract {
	return func(l label.Label, v value.Value) (value.Value, error) {
		if v.Kind != value.KFunction {
			return value.Value{}, blame.Withf(blame.KindTypeMismatch, l, "expected Function, got %s", v.Kind)
		}
		inner := v.AsFunction()
		domLabel := label.ChngPol(label.GoDom(l))
		codLabel := label.GoCodom(l)
		wrapped := value.FuncFrom(func(arg value.Value) (value.Value, error) {
			checkedArg, err := dom(domLabel, arg)
			if err != nil {
				return value.Value{}, err
			}
			result, err := inner.Apply(checkedArg)
			if err != nil {
				return value.Value{}, err
			}
			return cod(codLabel, result)
		})
		return value.FromFunction(wrapped), nil
	}
}

// DictContract returns the `$dict_contract` combinator: it wraps a
// record so every field projection lazily applies c (spec.md §4.4.3).
// The set of fields is never enforced or even inspected eagerly.
func DictContract(c Contract) Contract {
	return func(l label.Label, v value.Value) (value.Value, error) {
		if v.Kind != value.KRecord {
			return value.Value{}, blame.Withf(blame.KindTypeMismatch, l, "expected Record, got %s", v.Kind)
		}
		rec := v.AsRecord()
		fieldLabel := label.GoDict(l)
		fields := make(map[string]*value.Thunk, len(rec.Fields()))
		for _, name := range rec.Fields() {
			t, _ := rec.Get(name)
			fields[name] = value.NewWrapperThunk(func() (value.Value, error) {
				raw, err := t.Force()
				if err != nil {
					return value.Value{}, err
				}
				return c(fieldLabel, raw)
			})
		}
		wrapped := value.NewRecord(rec.Fields(), fields, rec.Tail())
		return value.FromRecord(wrapped), nil
	}
}

// DictType returns the `$dict_type` combinator: it eagerly maps c over
// every field and returns a fresh, unwrapped record (spec.md §4.4.4).
// Because the result is unwrapped, iterating it afterwards never
// triggers further checks — this is the distinction from DictContract.
func DictType(c Contract) Contract {
	return func(l label.Label, v value.Value) (value.Value, error) {
		if v.Kind != value.KRecord {
			return value.Value{}, blame.Withf(blame.KindTypeMismatch, l, "expected Record, got %s", v.Kind)
		}
		fieldLabel := label.GoDict(l)
		mapped, err := v.AsRecord().RecordMap(func(raw value.Value) (value.Value, error) {
			return c(fieldLabel, raw)
		})
		if err != nil {
			return value.Value{}, err
		}
		return value.FromRecord(mapped), nil
	}
}

// FieldSpec names one typed field of a record contract.
type FieldSpec struct {
	Name     string
	Contract Contract
}

// TailContract is the `tail_contract` slot of a record contract: given
// an accumulator built so far, the label, and the residual fields not
// covered by the typed prefix, it returns the final checked record (or
// blames). DynTail, EmptyTail, and ForallTail below are its three
// implementations (spec.md §4.4.5, §4.5.2).
type TailContract func(acc *value.Record, l label.Label, residual *value.Record) (*value.Record, error)

// Record returns the `$record` combinator described by spec.md §4.4.5:
// every field in fields must be present (missing fields blame first,
// per spec.md §5's ordering rule), every present field is checked, and
// the residual fields are handed to tailContract.
func Record(fields []FieldSpec, tailContract TailContract) Contract {
	return func(l label.Label, v value.Value) (value.Value, error) {
		if v.Kind != value.KRecord {
			return value.Value{}, blame.Withf(blame.KindTypeMismatch, l, "expected Record, got %s", v.Kind)
		}
		rec := v.AsRecord()

		var missing []string
		for _, f := range fields {
			if !rec.HasField(f.Name) {
				missing = append(missing, f.Name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return value.Value{}, blame.Withf(blame.KindMissingField, l, "missing %s", blame.FieldList(missing))
		}

		acc := rec.EmptyWithTail()
		for _, f := range fields {
			thunk, _ := rec.Get(f.Name)
			fieldLabel := label.GoField(f.Name, l)
			checked := value.NewWrapperThunk(func() (value.Value, error) {
				raw, err := thunk.Force()
				if err != nil {
					return value.Value{}, err
				}
				return f.Contract(fieldLabel, raw)
			})
			acc = acc.Insert(f.Name, checked)
		}

		residual := rec.EmptyWithTail()
		known := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			known[f.Name] = struct{}{}
		}
		for _, name := range rec.Fields() {
			if _, ok := known[name]; ok {
				continue
			}
			t, _ := rec.Get(name)
			residual = residual.Insert(name, t)
		}

		final, err := tailContract(acc, l, residual)
		if err != nil {
			return value.Value{}, err
		}
		return value.FromRecord(final), nil
	}
}

// DynTail is the `$dyn_tail` tail contract: residual fields are merged
// into acc untyped, no check performed.
func DynTail(acc *value.Record, l label.Label, residual *value.Record) (*value.Record, error) {
	out := acc
	for _, name := range residual.Fields() {
		t, _ := residual.Get(name)
		out = out.Insert(name, t)
	}
	return out, nil
}

// EmptyTail is the `$empty_tail` tail contract: any residual field blames.
func EmptyTail(acc *value.Record, l label.Label, residual *value.Record) (*value.Record, error) {
	if len(residual.Fields()) > 0 {
		names := residual.Fields()
		sort.Strings(names)
		return nil, blame.Withf(blame.KindExtraField, l, "extra %s", blame.FieldList(names))
	}
	return acc, nil
}
