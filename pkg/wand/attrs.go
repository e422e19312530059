package wand

import (
	"cmp"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Attr is a single entry of an attribute set.
//
// A named attribute renders as name="value". A positional attribute has no
// name: its escaped value is written bare (useful for flags such as
// "disabled"), and it is dropped entirely when the value escapes to "".
type Attr struct {
	Name       string
	Value      any
	Positional bool
}

// A creates a named attribute.
func A(name string, value any) Attr {
	return Attr{Name: name, Value: value}
}

// Flag creates a positional attribute.
func Flag(value any) Attr {
	return Attr{Value: value, Positional: true}
}

// Attrs is an ordered attribute set. Entries render in slice order.
type Attrs []Attr

// Set replaces the value of the named attribute in place, or appends it if
// the set has no attribute with that name.
func (a Attrs) Set(name string, value any) Attrs {
	for i := range a {
		if !a[i].Positional && a[i].Name == name {
			a[i].Value = value
			return a
		}
	}
	return append(a, A(name, value))
}

// Get returns the value of the named attribute.
func (a Attrs) Get(name string) (any, bool) {
	for _, at := range a {
		if !at.Positional && at.Name == name {
			return at.Value, true
		}
	}
	return nil, false
}

// String serializes the set. See FormatAttrs.
func (a Attrs) String() string {
	return FormatAttrs(a)
}

// FormatAttrs serializes an attribute set. Each emitted attribute is
// preceded by a single space, so the result can be appended directly after
// a tag name; an empty set yields "".
//
// Values are escaped, names are not.
func FormatAttrs(attrs Attrs) string {
	var b strings.Builder
	writeAttrs(&b, attrs)
	return b.String()
}

func writeAttrs(b *strings.Builder, attrs Attrs) {
	for _, at := range attrs {
		v := Esc(at.Value)
		if at.Positional {
			if v == "" {
				continue
			}
			b.WriteByte(' ')
			b.WriteString(v)
			continue
		}
		b.WriteByte(' ')
		b.WriteString(at.Name)
		b.WriteString(`="`)
		b.WriteString(v)
		b.WriteByte('"')
	}
}

// AttrsFrom reports whether v is an attribute mapping and returns it as an
// ordered set.
//
// Attrs, []Attr and a single Attr are used as given. Any other map is a
// mapping whose key kind decides how its entries render: string keys are
// named attributes and integer keys are positional. A slice or array of
// anything but bytes is a list, so every element is positional in index order.
//
// Go maps are unordered, so map entries are ordered by key: lexically for
// string keys, ascending for integer keys. A map keyed by interface values
// decides per entry, with positional entries first; entries whose key is
// neither a string nor an integer are skipped. map[string]any{"0": "x"}
// still holds a named attribute.
//
// This is the only place where the argument list of Tag is inspected by
// type.
func AttrsFrom(v any) (Attrs, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case Attrs:
		return m, true
	case []Attr:
		return Attrs(m), true
	case Attr:
		return Attrs{m}, true
	case []byte:
		return nil, false
	case map[string]string:
		return named(m), true
	case map[string]any:
		return named(m), true
	case map[int]string:
		return positional(m), true
	case map[int]any:
		return positional(m), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return mapAttrs(rv), true
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		attrs := make(Attrs, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			attrs = append(attrs, Flag(rv.Index(i).Interface()))
		}
		return attrs, true
	default:
		return nil, false
	}
}

func named[V any](m map[string]V) Attrs {
	attrs := make(Attrs, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		attrs = append(attrs, A(k, m[k]))
	}
	return attrs
}

func positional[V any](m map[int]V) Attrs {
	attrs := make(Attrs, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		attrs = append(attrs, Flag(m[k]))
	}
	return attrs
}

// mapEntry is a map entry whose key has been classified.
type mapEntry struct {
	value    any
	name     string
	index    int64
	uindex   uint64
	unsigned bool
	named    bool
}

// mapAttrs converts a map of any key type using reflection.
func mapAttrs(rv reflect.Value) Attrs {
	entries := make([]mapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() == reflect.Interface {
			if k.IsNil() {
				continue
			}
			k = k.Elem()
		}

		e := mapEntry{value: iter.Value().Interface()}
		switch k.Kind() {
		case reflect.String:
			e.named = true
			e.name = k.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			e.index = k.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			e.unsigned = true
			e.uindex = k.Uint()
		default:
			continue
		}
		entries = append(entries, e)
	}

	slices.SortFunc(entries, compareEntries)

	attrs := make(Attrs, 0, len(entries))
	for _, e := range entries {
		if e.named {
			attrs = append(attrs, A(e.name, e.value))
			continue
		}
		attrs = append(attrs, Flag(e.value))
	}
	return attrs
}

// compareEntries orders positional entries before named ones, integers
// ascending and names lexically.
func compareEntries(a, b mapEntry) int {
	switch {
	case a.named != b.named:
		if a.named {
			return 1
		}
		return -1
	case a.named:
		return strings.Compare(a.name, b.name)
	}

	// Negative signed keys sort before every unsigned key.
	switch {
	case a.unsigned && b.unsigned:
		return cmp.Compare(a.uindex, b.uindex)
	case a.unsigned:
		if b.index < 0 {
			return 1
		}
		return cmp.Compare(a.uindex, uint64(b.index))
	case b.unsigned:
		if a.index < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.index), b.uindex)
	default:
		return cmp.Compare(a.index, b.index)
	}
}
