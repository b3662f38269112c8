package value

import "sync"

// Thunk is a deferred computation of a Value. Array elements and
// record fields are stored as Thunks so that constructing a large
// composite value does nothing but allocate thunks; the actual work
// happens the first time something forces a particular element.
//
// Plain thunks (NewThunk, Ready) memoize: Force runs fn at most once
// and caches the result. Contract wrapping uses NewWrapperThunk
// instead, which is deliberately NOT memoized (spec.md §3 "Wrappers
// live as long as the wrapped value; they are not memoised" —
// re-forcing a wrapped thunk re-runs the contract check every time,
// which is what lets a contract violation introduced after the fact
// still be caught).
type Thunk struct {
	once    sync.Once
	memoize bool
	fn      func() (Value, error)
	value   Value
	err     error
}

// NewThunk defers fn until the first Force, then caches the result.
func NewThunk(fn func() (Value, error)) *Thunk {
	return &Thunk{fn: fn, memoize: true}
}

// NewWrapperThunk defers fn, like NewThunk, but does not cache: every
// Force re-runs fn. Used for the cells a contract wrapper installs
// over an array element, dict field, or record field, so each
// observation re-checks the contract rather than trusting a stale
// result.
func NewWrapperThunk(fn func() (Value, error)) *Thunk {
	return &Thunk{fn: fn, memoize: false}
}

// Ready wraps an already-computed value in a no-op Thunk.
func Ready(v Value) *Thunk {
	t := &Thunk{memoize: true}
	t.once.Do(func() {})
	t.value = v
	return t
}

// Force evaluates the thunk, caching the result for memoized thunks
// and re-running fn on every call for wrapper thunks.
func (t *Thunk) Force() (Value, error) {
	if !t.memoize {
		if t.fn == nil {
			return t.value, t.err
		}
		return t.fn()
	}
	t.once.Do(func() {
		if t.fn != nil {
			t.value, t.err = t.fn()
		}
	})
	return t.value, t.err
}
