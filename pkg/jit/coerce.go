package jit

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Typed accessors for displaying a jit value. Each accessor performs
// exactly one fresh Resolve per call; reading the same Evaluable through
// two accessors re-executes the computation twice.

// String resolves e and formats the result as display text. Strings and
// byte slices pass through, fmt.Stringer is honored, everything else goes
// through fmt's %v verb.
func String(e Evaluable) (string, error) {
	v, err := e.Resolve()
	if err != nil {
		return "", err
	}
	return stringify(v), nil
}

// Int resolves e and converts the result to an int64. Floats truncate
// toward zero and numeric strings are parsed. Anything else fails with an
// ErrCoerce-wrapped error.
func Int(e Evaluable) (int64, error) {
	v, err := e.Resolve()
	if err != nil {
		return 0, err
	}
	return asInt(v)
}

// Float resolves e and converts the result to a float64.
func Float(e Evaluable) (float64, error) {
	v, err := e.Resolve()
	if err != nil {
		return 0, err
	}
	return asFloat(v)
}

// Contains resolves e and reports whether item occurs in the result: a
// substring check for strings, element equality for slices and arrays, key
// presence for maps.
func Contains(e Evaluable, item any) (bool, error) {
	v, err := e.Resolve()
	if err != nil {
		return false, err
	}

	if s, ok := v.(string); ok {
		sub, serr := asString(item)
		if serr != nil {
			return false, serr
		}
		return strings.Contains(s, sub), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if reflect.DeepEqual(rv.Index(i).Interface(), item) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		kv := reflect.ValueOf(item)
		if kv.IsValid() && kv.Type().AssignableTo(rv.Type().Key()) {
			return rv.MapIndex(kv).IsValid(), nil
		}
		return false, nil
	default:
		return false, fmt.Errorf("containment check on %T: %w", v, ErrCoerce)
	}
}

// Seq resolves e and returns the result as an ordered slice of elements:
// the elements of a slice or array, the runes of a string as one-character
// strings, or the keys of a map (unordered).
func Seq(e Evaluable) ([]any, error) {
	v, err := e.Resolve()
	if err != nil {
		return nil, err
	}

	if s, ok := v.(string); ok {
		out := make([]any, 0, len(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		keys := rv.MapKeys()
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k.Interface()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("iteration over %T: %w", v, ErrCoerce)
	}
}

// --- conversion helpers ---

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asString(v any) (string, error) {
	return stringify(v), nil
}

func asInt(v any) (int64, error) {
	switch x := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer: %w", x, ErrCoerce)
		}
		return n, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), nil
	default:
		return 0, fmt.Errorf("%T is not numeric: %w", v, ErrCoerce)
	}
}

func asFloat(v any) (float64, error) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number: %w", s, ErrCoerce)
		}
		return f, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return 0, fmt.Errorf("%T is not numeric: %w", v, ErrCoerce)
	}
}
