package contract

import (
	"surge/internal/blame"
	"surge/internal/label"
	"surge/internal/sealing"
	"surge/internal/value"
)

// Forall returns the `$forall` combinator for an ordinary type
// variable (spec.md §4.5.1): entering binds key to binderPolarity
// (flipped first if the label is dualized) in the type-variable
// environment, then checks body under the extended label.
func Forall(key sealing.Key, binderPolarity label.Polarity, body Contract) Contract {
	return func(l label.Label, v value.Value) (value.Value, error) {
		pol := binderPolarity
		if label.IsDualized(l) {
			pol = pol.Flip()
		}
		l2 := label.InsertTypeVariable(key, pol, l)
		return body(l2, v)
	}
}

// ForallVar returns the `$forall_var` contract used wherever a bound
// type variable appears in a forall body (spec.md §4.5.1).
func ForallVar(key sealing.Key) Contract {
	return func(l label.Label, v value.Value) (value.Value, error) {
		binding, ok := label.LookupTypeVariable(key, l)
		if !ok {
			return value.Value{}, blame.Withf(blame.KindSealedLeak, l, "escaped type variable")
		}
		if binding.Polarity == label.PolarityOf(l) {
			// Negative position from the binder's viewpoint: the
			// caller supplied this value, so it must already be
			// sealed under key.
			if v.Kind != value.KSealed || v.AsSealed().Key != key {
				return value.Value{}, blame.New(blame.KindSealedLeak, l)
			}
			return v.AsSealed().Inner, nil
		}
		// Positive position: seal the value so the context can only
		// treat it opaquely.
		return value.FromSealed(key, v), nil
	}
}

// ForallTail returns the `$forall_tail` tail contract for a row
// variable introduced by `forall r. {prefix; r}` (spec.md §4.5.2).
// constraints names the fields already bound in the prefix, forbidden
// in the tail on the negative side.
func ForallTail(key sealing.Key, binderPolarity label.Polarity, rowName string, constraints []string) TailContract {
	forbidden := make(map[string]struct{}, len(constraints))
	for _, c := range constraints {
		forbidden[c] = struct{}{}
	}
	return func(acc *value.Record, l label.Label, residual *value.Record) (*value.Record, error) {
		pol := binderPolarity
		binding, ok := label.LookupTypeVariable(key, l)
		if ok {
			pol = binding.Polarity
		}
		tailLabel := label.GoTailOf(rowName, l)

		if pol == label.PolarityOf(l) {
			// Positive side: unseal the expected sealed tail and merge.
			if len(residual.Fields()) == 0 {
				bundle, ok := value.UnsealTail(key, residual)
				if !ok {
					return nil, blame.Withf(blame.KindTailMismatch, tailLabel, "polymorphic tail mismatch")
				}
				out := acc
				for _, name := range bundle.Fields() {
					t, _ := bundle.Get(name)
					out = out.Insert(name, t)
				}
				// acc still carries the stale sealed-tail placeholder;
				// now that bundle's fields are merged in, the result's
				// tail is whatever openness the unsealed bundle itself
				// had, not the sealed reference it came wrapped in.
				return out.WithTail(bundle.Tail()), nil
			}
			names := residual.Fields()
			return nil, blame.Withf(blame.KindExtraField, tailLabel, "extra %s", blame.FieldList(names))
		}

		// Negative side: forbid constrained field names, then seal the
		// rest under key with polarity flipped to the binder's.
		var bad []string
		for _, name := range residual.Fields() {
			if _, ok := forbidden[name]; ok {
				bad = append(bad, name)
			}
		}
		if len(bad) > 0 {
			return nil, blame.Withf(blame.KindForbiddenTailField, tailLabel, "%s not allowed in tail", blame.FieldList(bad))
		}
		return value.SealTail(key, acc, residual), nil
	}
}

// DynTailContract and EmptyTailContract adapt the package-level
// DynTail/EmptyTail functions to the TailContract signature for
// callers that build a tail_contract table by name.
var (
	DynTailContract   TailContract = DynTail
	EmptyTailContract TailContract = EmptyTail
)
