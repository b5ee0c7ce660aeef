package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// JSONValue is a generic type to represent any JSON value.
// This can be a string, number, boolean, null, object, or array.
type JSONValue interface{}

// JSONObject represents a JSON object as a plain map. Iteration order is
// undefined, so the shaper visits plain maps in sorted key order. Use
// OrderedObject when document order matters.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Stream is a lazily-produced sequence of values. It is treated exactly like
// a JSONArray during shaping, except that elements are pulled from the
// producer function instead of a slice. The producer is invoked once per
// shaping call; if it wraps a single-use source, consuming it is destructive
// to the caller's copy.
type Stream func(yield func(JSONValue) bool)

// OrderedObject is a JSON object that remembers the order its keys were
// inserted in. The parser produces these so that key order in the inferred
// shape matches key order in the document.
type OrderedObject struct {
	keys   []string
	values map[string]JSONValue
}

// NewOrderedObject creates an empty OrderedObject.
func NewOrderedObject() *OrderedObject {
	return &OrderedObject{values: make(map[string]JSONValue)}
}

// Set binds key to value, appending the key if it is new. Re-setting an
// existing key keeps its original position.
func (o *OrderedObject) Set(key string, value JSONValue) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value bound to key, if any.
func (o *OrderedObject) Get(key string) (JSONValue, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *OrderedObject) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *OrderedObject) Len() int {
	return len(o.keys)
}

// Kind is the closed classification of input values. Every value the shaper
// can encounter maps to exactly one Kind; anything unrecognized is Other and
// is labeled by its dynamic type name rather than rejected.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Mapping
	Sequence
	StreamKind
	Other
)

// Leaf labels emitted for scalar values. These follow the labels the tool
// has always printed, so existing snapshots keep matching.
const (
	NullLabel   = "NoneType"
	BoolLabel   = "bool"
	IntLabel    = "int"
	FloatLabel  = "float"
	StringLabel = "str"

	// Labels for empty containers, which carry no element paths of their
	// own and are overridden by any concrete observation at the same
	// position.
	EmptyMappingLabel  = "{}"
	EmptySequenceLabel = "[]"
)

// Classify maps a value onto its Kind. json.Number is resolved to Int or
// Float depending on whether it parses as an integer.
func Classify(v JSONValue) Kind {
	switch n := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case string:
		return String
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return Int
		}
		return Float
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int
	case float32, float64:
		return Float
	case *OrderedObject, JSONObject, map[string]JSONValue:
		return Mapping
	case JSONArray, []JSONValue:
		return Sequence
	case Stream:
		return StreamKind
	default:
		return Other
	}
}

// LabelFor returns the leaf label for a scalar value. Container kinds never
// reach this; unrecognized atomics are labeled by their dynamic type name.
func LabelFor(v JSONValue) string {
	switch Classify(v) {
	case Null:
		return NullLabel
	case Bool:
		return BoolLabel
	case Int:
		return IntLabel
	case Float:
		return FloatLabel
	case String:
		return StringLabel
	default:
		return fmt.Sprintf("%T", v)
	}
}

// NumericValue returns the scalar's numeric value when its Kind is Int or
// Float. Used for the zero/nonzero qualifier.
func NumericValue(v JSONValue) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Entries returns the keys of a mapping value plus a lookup function.
// OrderedObjects iterate in document order; plain maps are sorted for
// reproducibility.
func Entries(v JSONValue) ([]string, func(string) JSONValue) {
	switch m := v.(type) {
	case *OrderedObject:
		return m.keys, func(k string) JSONValue { return m.values[k] }
	case JSONObject:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, func(k string) JSONValue { return m[k] }
	case map[string]JSONValue:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, func(k string) JSONValue { return m[k] }
	default:
		return nil, nil
	}
}

// Elements returns the elements of a sequence value as a slice.
func Elements(v JSONValue) []JSONValue {
	switch s := v.(type) {
	case JSONArray:
		return s
	case []JSONValue:
		return s
	default:
		return nil
	}
}
