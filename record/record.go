package record

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Kind identifies the shape of a decoded API value.
type Kind int

const (
	// Missing is the kind of an absent value (failed lookup, nil).
	Missing Kind = iota
	// Scalar is a string, number, boolean or JSON null.
	Scalar
	// Mapping is a JSON object.
	Mapping
	// List is a JSON array.
	List
)

// Value wraps one decoded API value. The zero Value is Missing.
// Lookups never panic: accessing a field of a Scalar or Missing value
// yields the requested default.
type Value struct {
	v       any
	present bool
}

// Decode parses a JSON payload into a Value. Numbers are kept as
// json.Number so large counters (rx_bytes, tx_bytes) do not lose precision.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Value{}, errors.Wrap(err, "failed to decode payload")
	}

	return Wrap(v), nil
}

// Wrap adapts an already-decoded value. Nested maps and slices must be of
// type map[string]any and []any, which is what encoding/json produces.
func Wrap(v any) Value {
	return Value{v: v, present: true}
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind {
	if !v.present {
		return Missing
	}
	switch v.v.(type) {
	case map[string]any:
		return Mapping
	case []any:
		return List
	default:
		return Scalar
	}
}

// Present reports whether the value exists at all.
func (v Value) Present() bool {
	return v.present
}

// Interface returns the underlying decoded value (nil when Missing).
func (v Value) Interface() any {
	return v.v
}

// Get looks up a key. The result is Missing unless the value is a Mapping
// that contains the key.
func (v Value) Get(key string) Value {
	m, ok := v.v.(map[string]any)
	if !ok || !v.present {
		return Value{}
	}
	inner, ok := m[key]
	if !ok {
		return Value{}
	}
	return Value{v: inner, present: true}
}

// Has reports whether the value is a Mapping containing the key.
func (v Value) Has(key string) bool {
	return v.Get(key).present
}

// Items returns the elements of a List value, or nil for any other kind.
func (v Value) Items() []Value {
	l, ok := v.v.([]any)
	if !ok || !v.present {
		return nil
	}
	out := make([]Value, len(l))
	for i, item := range l {
		out[i] = Value{v: item, present: true}
	}
	return out
}

// Str returns the value as a string, or def when the value is not a
// non-empty lookup of string kind.
func (v Value) Str(def string) string {
	if s, ok := v.StrOK(); ok {
		return s
	}
	return def
}

// StrOK returns the value as a string and whether it was one.
func (v Value) StrOK() (string, bool) {
	s, ok := v.v.(string)
	if !ok || !v.present {
		return "", false
	}
	return s, true
}

// Int returns the value as an int64, or def when it is not numeric.
func (v Value) Int(def int64) int64 {
	if n, ok := v.IntOK(); ok {
		return n
	}
	return def
}

// IntOK returns the value as an int64 and whether it was numeric.
// Fractional numbers are truncated toward zero.
func (v Value) IntOK() (int64, bool) {
	if !v.present {
		return 0, false
	}
	switch n := v.v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
		return 0, false
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// Bool returns the value as a bool, or def when it is not a boolean.
func (v Value) Bool(def bool) bool {
	b, ok := v.v.(bool)
	if !ok || !v.present {
		return def
	}
	return b
}

// MarshalJSON emits the underlying decoded value, so Values can be carried
// inside larger structures (discovered switches payloads) and serialized
// back out unchanged. A Missing value marshals as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	data, err := json.Marshal(v.v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal record value")
	}
	return data, nil
}
