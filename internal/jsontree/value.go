package jsontree

import (
	"iter"
	"slices"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull   Kind = iota // null
	KindBool               // bool
	KindNumber             // number
	KindString             // string
	KindArray              // array
	KindObject             // object
)

// IsContainer reports whether values of this kind hold other values.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// Value is a node of a JSON document tree.
type Value interface {
	Kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number, kept as its literal text.
type Number string

// String is a JSON string.
type String string

// Array is an ordered JSON array.
type Array struct {
	Items []Value
}

// Object is a JSON object whose members keep insertion order.
type Object struct {
	keys   []string
	values map[string]Value
}

func (Null) Kind() Kind    { return KindNull }
func (Bool) Kind() Kind    { return KindBool }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }
func (*Array) Kind() Kind  { return KindArray }
func (*Object) Kind() Kind { return KindObject }

// NewArray creates an array holding the given items.
func NewArray(items ...Value) *Array {
	return &Array{Items: items}
}

// Len returns the number of items.
func (a *Array) Len() int {
	return len(a.Items)
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{values: map[string]Value{}}
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the member names in order. The returned slice is a copy.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// Get returns the member value for key.
func (o *Object) Get(key string) (Value, bool) {
	if o.values == nil {
		return nil, false
	}

	v, ok := o.values[key]

	return v, ok
}

// Has reports whether the object has a member named key.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores a member. A new key is appended at the end; an existing key keeps
// its position and takes the new value.
func (o *Object) Set(key string, v Value) *Object {
	if o.values == nil {
		o.values = map[string]Value{}
	}

	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = v

	return o
}

// Delete removes a member if present.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}

	delete(o.values, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// All iterates members in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// StringValue returns the string held by v, if v is a String.
func StringValue(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// Member returns obj[key] as a string when v is an object holding a string
// member named key.
func Member(v Value, key string) (string, bool) {
	obj, ok := v.(*Object)
	if !ok {
		return "", false
	}

	m, ok := obj.Get(key)
	if !ok {
		return "", false
	}

	return StringValue(m)
}

// Clone returns a deep copy of v. Containers are never shared between v and
// the result.
func Clone(v Value) Value {
	switch x := v.(type) {
	case *Object:
		out := &Object{
			keys:   make([]string, 0, len(x.keys)),
			values: make(map[string]Value, len(x.keys)),
		}
		for k, mv := range x.All() {
			out.Set(k, Clone(mv))
		}

		return out
	case *Array:
		items := make([]Value, len(x.Items))
		for i, it := range x.Items {
			items[i] = Clone(it)
		}

		return &Array{Items: items}
	case nil:
		return Null{}
	default:
		return v
	}
}

// Equal reports whether a and b are structurally equal, including member order.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}

		for i, k := range x.keys {
			if y.keys[i] != k || !Equal(x.values[k], y.values[k]) {
				return false
			}
		}

		return true
	case *Array:
		y, ok := b.(*Array)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}

		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}

		return true
	default:
		return a == b
	}
}
