package jit

import (
	"fmt"
	"reflect"
)

// Extractor narrows a computation's result immediately after invocation,
// before any postprocess step. The two concrete forms are ByIndex and
// ByField; a nil Extractor means the raw result passes through.
type Extractor interface {
	Extract(v any) (any, error)
}

// ByIndex returns an Extractor that indexes into the result: a map lookup
// for map results, an integer index for slices, arrays, and strings. A
// missing key or out-of-range index fails with an ErrLookup-wrapped error.
func ByIndex(key any) Extractor {
	return indexExtractor{key: key}
}

// ByField returns an Extractor that reads the named exported struct field
// from the result, dereferencing pointers first. When no such field
// exists, a zero-argument method of the same name is tried. Anything else
// fails with an ErrLookup-wrapped error.
func ByField(name string) Extractor {
	return fieldExtractor{name: name}
}

type indexExtractor struct {
	key any
}

func (e indexExtractor) Extract(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(e.key)
		if !kv.IsValid() || !kv.Type().AssignableTo(rv.Type().Key()) {
			if kv.IsValid() && kv.Type().ConvertibleTo(rv.Type().Key()) {
				kv = kv.Convert(rv.Type().Key())
			} else {
				return nil, fmt.Errorf("key %v is not usable with map %T: %w", e.key, v, ErrLookup)
			}
		}
		out := rv.MapIndex(kv)
		if !out.IsValid() {
			return nil, fmt.Errorf("key %v not present in %T: %w", e.key, v, ErrLookup)
		}
		return out.Interface(), nil

	case reflect.Slice, reflect.Array, reflect.String:
		idx, err := asInt(e.key)
		if err != nil {
			return nil, fmt.Errorf("index %v is not an integer: %w", e.key, ErrLookup)
		}
		if idx < 0 || idx >= int64(rv.Len()) {
			return nil, fmt.Errorf("index %d out of range for %T of length %d: %w",
				idx, v, rv.Len(), ErrLookup)
		}
		if rv.Kind() == reflect.String {
			return string(rv.Index(int(idx)).Interface().(uint8)), nil
		}
		return rv.Index(int(idx)).Interface(), nil

	default:
		return nil, fmt.Errorf("cannot index into %T: %w", v, ErrLookup)
	}
}

type fieldExtractor struct {
	name string
}

func (e fieldExtractor) Extract(v any) (any, error) {
	rv := reflect.ValueOf(v)

	// Methods may be declared on either the value or the pointer type, so
	// try the method set before dereferencing.
	if out, ok := callNullaryMethod(rv, e.name); ok {
		return out, nil
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("field %q on nil %T: %w", e.name, v, ErrLookup)
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Struct {
		f := rv.FieldByName(e.name)
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	}

	if out, ok := callNullaryMethod(rv, e.name); ok {
		return out, nil
	}

	return nil, fmt.Errorf("%T has no field or method %q: %w", v, e.name, ErrLookup)
}

// callNullaryMethod invokes the named method when it takes no arguments and
// returns a single value, or a (value, error) pair. The bool reports
// whether such a method existed.
func callNullaryMethod(rv reflect.Value, name string) (any, bool) {
	if !rv.IsValid() {
		return nil, false
	}
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return nil, false
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() < 1 || mt.NumOut() > 2 {
		return nil, false
	}
	out := m.Call(nil)
	if len(out) == 2 {
		if err, ok := out[1].Interface().(error); ok && err != nil {
			return nil, false
		}
	}
	return out[0].Interface(), true
}
