package valueutil

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
)

// Kind is the JSON data model kind of a value.
type Kind string

// Value kinds.
const (
	KindNull    Kind = "null"
	KindBoolean Kind = "boolean"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindUnknown Kind = "unknown"
)

// MaxDepth bounds how far the helpers descend: pointer chains when
// dereferencing, nesting when comparing or hashing.
const MaxDepth = 100

// KindOf returns the JSON kind of v. Floats with no fractional part are
// reported as KindInteger.
func KindOf(v any) Kind {
	v, ok := deref(v)
	if !ok {
		return KindUnknown
	}
	switch x := v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case float64:
		return floatKind(x)
	case float32:
		return floatKind(float64(x))
	case json.Number:
		if _, ok := new(big.Int).SetString(string(x), 10); ok {
			return KindInteger
		}
		if f, err := x.Float64(); err == nil {
			return floatKind(f)
		}
		return KindUnknown
	case []any:
		if x == nil {
			return KindNull
		}
		return KindArray
	case map[string]any:
		if x == nil {
			return KindNull
		}
		return KindObject
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return KindNull
		}
		return KindArray
	case reflect.Array:
		return KindArray
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return KindUnknown
		}
		if rv.IsNil() {
			return KindNull
		}
		return KindObject
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return floatKind(rv.Float())
	}
	return KindUnknown
}

func floatKind(f float64) Kind {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
		return KindInteger
	}
	return KindNumber
}

// IsNumeric reports whether k is integer or number.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindNumber
}

// Deref follows pointers and interfaces to the value they hold. A nil
// pointer yields nil, as does a chain longer than MaxDepth.
func Deref(v any) any {
	v, ok := deref(v)
	if !ok {
		return nil
	}
	return v
}

func deref(v any) (any, bool) {
	switch v.(type) {
	case nil, string, bool, int, int64, float64, json.Number, []any, map[string]any:
		return v, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
		return v, true
	}
	for range MaxDepth {
		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			return rv.Interface(), true
		}
		if rv.IsNil() {
			return nil, true
		}
		rv = rv.Elem()
	}
	return nil, false
}

// AsString returns the string held by v.
func AsString(v any) (string, bool) {
	v = Deref(v)
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// AsNumber returns the exact value of a numeric v along with its float64
// approximation. Infinities and NaN have no exact value; for them the
// *big.Rat is nil.
func AsNumber(v any) (*big.Rat, float64, bool) {
	v = Deref(v)
	switch x := v.(type) {
	case int:
		return new(big.Rat).SetInt64(int64(x)), float64(x), true
	case int64:
		return new(big.Rat).SetInt64(x), float64(x), true
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	case json.Number:
		if i, ok := new(big.Int).SetString(string(x), 10); ok {
			r := new(big.Rat).SetInt(i)
			f, _ := r.Float64()
			return r, f, true
		}
		f, err := x.Float64()
		if err != nil {
			return nil, 0, false
		}
		return fromFloat(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Rat).SetInt64(rv.Int()), float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		return new(big.Rat).SetInt(new(big.Int).SetUint64(u)), float64(u), true
	case reflect.Float32, reflect.Float64:
		return fromFloat(rv.Float())
	}
	return nil, 0, false
}

func fromFloat(f float64) (*big.Rat, float64, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, f, true
	}
	return new(big.Rat).SetFloat64(f), f, true
}

// AsArray returns the elements of an array value. Typed slices are copied
// into a []any.
func AsArray(v any) ([]any, bool) {
	v = Deref(v)
	if a, ok := v.([]any); ok {
		return a, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsObject returns the members of an object value. Maps with string keys
// other than map[string]any are copied.
func AsObject(v any) (map[string]any, bool) {
	v = Deref(v)
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asBool(v any) bool {
	v = Deref(v)
	if b, ok := v.(bool); ok {
		return b
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Bool && rv.Bool()
}
