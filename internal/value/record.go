package value

import "surge/internal/sealing"

// TailKind distinguishes the three shapes a record's tail can take
// (spec.md §3 "Record tail", §9 design notes: "a record must
// distinguish (i) open extension with Dyn-typed fields, (ii) a sealed
// opaque bundle bound to a specific key, and (iii) none").
type TailKind uint8

const (
	// TailNone means the record has no extra room: a record contract
	// with an empty_tail will blame on any residual field.
	TailNone TailKind = iota
	// TailDyn means extra fields beyond a typed prefix are allowed and
	// themselves untyped (Dyn).
	TailDyn
	// TailSealed means the extra fields are bundled opaquely under a
	// sealing key, introduced by a `forall r. {...; r}` contract.
	TailSealed
)

// Tail describes what, if anything, trails a record's explicit fields.
type Tail struct {
	Kind   TailKind
	Key    sealing.Key // valid only when Kind == TailSealed
	Bundle *Record     // the opaque extra fields, valid only when Kind == TailSealed
}

// NoTail is the zero value: no extra room.
var NoTail = Tail{Kind: TailNone}

// DynTail is the tail of a record extensible with untyped fields.
var DynTail = Tail{Kind: TailDyn}

// Record is a field map plus an optional tail. Field order is the
// insertion order of the underlying value (spec.md §4.4.5: "Field
// iteration order for diagnostics and tail extraction is insertion
// order").
type Record struct {
	order  []string
	fields map[string]*Thunk
	tail   Tail
}

// NewRecord builds a Record from fields given in insertion order, with
// the given tail.
func NewRecord(order []string, fields map[string]*Thunk, tail Tail) *Record {
	orderCopy := make([]string, len(order))
	copy(orderCopy, order)
	fieldsCopy := make(map[string]*Thunk, len(fields))
	for k, v := range fields {
		fieldsCopy[k] = v
	}
	return &Record{order: orderCopy, fields: fieldsCopy, tail: tail}
}

// EmptyRecord builds a record with no fields and the given tail.
func EmptyRecord(tail Tail) *Record {
	return &Record{tail: tail}
}

// HasField reports whether name is present (has_field).
func (r *Record) HasField(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Fields returns the field names in insertion order (fields).
func (r *Record) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the thunk for a present field.
func (r *Record) Get(name string) (*Thunk, bool) {
	t, ok := r.fields[name]
	return t, ok
}

// Tail returns the record's tail.
func (r *Record) Tail() Tail {
	return r.tail
}

// Insert returns a new record with name bound to v, preserving existing
// field order and appending name if it is new (record_insert).
func (r *Record) Insert(name string, v *Thunk) *Record {
	order := r.order
	if _, exists := r.fields[name]; !exists {
		order = make([]string, len(r.order)+1)
		copy(order, r.order)
		order[len(r.order)] = name
	}
	fields := make(map[string]*Thunk, len(r.fields)+1)
	for k, v := range r.fields {
		fields[k] = v
	}
	fields[name] = v
	return &Record{order: order, fields: fields, tail: r.tail}
}

// Remove returns a new record without name (record_remove).
func (r *Record) Remove(name string) *Record {
	if _, exists := r.fields[name]; !exists {
		return r
	}
	order := make([]string, 0, len(r.order))
	for _, n := range r.order {
		if n != name {
			order = append(order, n)
		}
	}
	fields := make(map[string]*Thunk, len(r.fields))
	for k, v := range r.fields {
		if k != name {
			fields[k] = v
		}
	}
	return &Record{order: order, fields: fields, tail: r.tail}
}

// EmptyWithTail returns an empty record carrying r's tail
// (record_empty_with_tail) — used when a record contract needs a fresh
// accumulator that still remembers the original value's tail shape.
func (r *Record) EmptyWithTail() *Record {
	return &Record{tail: r.tail}
}

// WithTail returns a copy of r with its tail replaced by tail, fields
// unchanged. Used once a sealed tail has been unsealed and its fields
// merged in, so the result no longer carries the now-stale sealed
// bundle reference.
func (r *Record) WithTail(tail Tail) *Record {
	return &Record{order: r.order, fields: r.fields, tail: tail}
}

// RecordMap eagerly applies fn to every field's forced value, returning
// a fresh record of the results (record_map). Used by the eager
// dict_type combinator, which — unlike dict_contract — never wraps.
func (r *Record) RecordMap(fn func(Value) (Value, error)) (*Record, error) {
	fields := make(map[string]*Thunk, len(r.fields))
	for _, name := range r.order {
		raw, err := r.fields[name].Force()
		if err != nil {
			return nil, err
		}
		mapped, err := fn(raw)
		if err != nil {
			return nil, err
		}
		fields[name] = Ready(mapped)
	}
	return &Record{order: r.Fields(), fields: fields, tail: r.tail}, nil
}

// SealTail returns a copy of acc whose tail bundles residual's fields
// opaquely under key (record_seal_tail).
func SealTail(key sealing.Key, acc *Record, residual *Record) *Record {
	return &Record{order: acc.Fields(), fields: acc.fields, tail: Tail{Kind: TailSealed, Key: key, Bundle: residual}}
}

// UnsealTail returns the bundle of extra fields stored under key in r's
// tail, or false if r has no sealed tail or a different key
// (record_unseal_tail).
func UnsealTail(key sealing.Key, r *Record) (*Record, bool) {
	if r.tail.Kind != TailSealed || r.tail.Key != key {
		return nil, false
	}
	return r.tail.Bundle, true
}
