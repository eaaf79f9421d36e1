package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Marshal encodes v as compact JSON.
func Marshal(v Value) ([]byte, error) {
	return MarshalIndent(v, "")
}

// MarshalIndent encodes v with one newline per member or item and the given
// indent per nesting level. Empty containers are written as {} and [].
// An empty indent produces compact output.
func MarshalIndent(v Value, indent string) ([]byte, error) {
	e := &encoder{indent: indent}
	if err := e.value(v, 0); err != nil {
		return nil, err
	}

	return e.buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

// MarshalJSON implements json.Marshaler.
func (a *Array) MarshalJSON() ([]byte, error) {
	return Marshal(a)
}

type encoder struct {
	buf     bytes.Buffer
	scratch bytes.Buffer
	indent  string
}

func (e *encoder) value(v Value, depth int) error {
	switch x := v.(type) {
	case nil, Null:
		e.buf.WriteString("null")
	case Bool:
		if x {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case Number:
		if x == "" || !json.Valid([]byte(x)) {
			return fmt.Errorf("invalid number literal %q", string(x))
		}

		e.buf.WriteString(string(x))
	case String:
		return e.str(string(x))
	case *Array:
		return e.array(x, depth)
	case *Object:
		return e.object(x, depth)
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}

	return nil
}

func (e *encoder) array(a *Array, depth int) error {
	if len(a.Items) == 0 {
		e.buf.WriteString("[]")
		return nil
	}

	e.buf.WriteByte('[')

	for i, it := range a.Items {
		if i > 0 {
			e.buf.WriteByte(',')
		}

		e.newline(depth + 1)

		if err := e.value(it, depth+1); err != nil {
			return err
		}
	}

	e.newline(depth)
	e.buf.WriteByte(']')

	return nil
}

func (e *encoder) object(o *Object, depth int) error {
	if o.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}

	e.buf.WriteByte('{')

	i := 0
	for k, mv := range o.All() {
		if i > 0 {
			e.buf.WriteByte(',')
		}

		i++

		e.newline(depth + 1)

		if err := e.str(k); err != nil {
			return err
		}

		e.buf.WriteByte(':')

		if e.indent != "" {
			e.buf.WriteByte(' ')
		}

		if err := e.value(mv, depth+1); err != nil {
			return err
		}
	}

	e.newline(depth)
	e.buf.WriteByte('}')

	return nil
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}

	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(e.indent, depth))
}

// str writes a quoted string without HTML escaping.
func (e *encoder) str(s string) error {
	e.scratch.Reset()

	enc := json.NewEncoder(&e.scratch)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return err
	}

	out := bytes.TrimSuffix(e.scratch.Bytes(), []byte{'\n'})
	if len(out) == 0 {
		return errors.New("empty string encoding")
	}

	e.buf.Write(out)

	return nil
}
