package wand

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// ErrCoercion is returned (wrapped in a *CoercionError) when a value has no
// string form.
var ErrCoercion = errors.New("wand: value has no string form")

// CoercionError reports a value that Stringify could not convert.
type CoercionError struct {
	// Type is the dynamic type of the rejected value.
	Type reflect.Type
}

// Error implements the error interface.
func (e *CoercionError) Error() string {
	return fmt.Sprintf("wand: cannot convert %s to string", e.Type)
}

// Unwrap returns ErrCoercion so errors.Is works.
func (e *CoercionError) Unwrap() error {
	return ErrCoercion
}

// Stringify converts a scalar value to its string form.
//
// nil converts to "". Strings, byte slices, fmt.Stringer and error values
// convert to their text. Integers and floats use their shortest decimal
// form. true converts to "1" and false to "". Types whose underlying kind is
// one of these are converted the same way.
//
// Maps, slices, structs without a String method, functions and channels
// return a *CoercionError.
func Stringify(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case fmt.Stringer:
		if isNilPointer(x) {
			return "", nil
		}
		return x.String(), nil
	case error:
		if isNilPointer(x) {
			return "", nil
		}
		return x.Error(), nil
	case bool:
		return formatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return formatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return "", nil
		}
		return Stringify(rv.Elem().Interface())
	}

	return "", &CoercionError{Type: rv.Type()}
}

// str is the lenient form of Stringify used by every rendering path.
func str(v any) string {
	s, err := Stringify(v)
	if err != nil {
		return ""
	}
	return s
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return ""
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
