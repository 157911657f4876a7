// Package path resolves dotted property paths such as "user.address.city"
// against records.
//
// Resolution never fails loudly: when any segment is missing the result is
// reported as absent, and callers treat absent uniformly as "no value"
// (no filter match, zero loop iterations, empty substitution).
//
// # Example
//
//	v, ok := path.Resolve(record, "author.name")
//	if !ok {
//	    // at least one segment did not exist
//	}
package path

import (
	"reflect"
	"strconv"
	"strings"
)

// Separator splits a path into segments.
const Separator = "."

// lengthSegment reads the size of a sequence or string when the value has no
// key of that name.
const lengthSegment = "length"

// Split returns the segments of path. The empty path has no segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}

// Resolve walks path through data one segment at a time, carrying the
// intermediate value forward. It returns (value, true) when every segment
// exists and (nil, false) as soon as one does not.
//
// Mappings with string keys are indexed by key, sequences by a non-negative
// integer segment. The segment "length" yields the size of a sequence or
// string. An empty path, or a path with an empty segment, is absent.
func Resolve(data interface{}, path string) (interface{}, bool) {
	segments := Split(path)
	if len(segments) == 0 {
		return nil, false
	}

	current := data
	for _, seg := range segments {
		next, ok := step(current, seg)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Get is Resolve without the presence flag: absent resolves to nil.
func Get(data interface{}, path string) interface{} {
	v, _ := Resolve(data, path)
	return v
}

// Has reports whether path resolves against data.
func Has(data interface{}, path string) bool {
	_, ok := Resolve(data, path)
	return ok
}

func step(current interface{}, seg string) (interface{}, bool) {
	if seg == "" || current == nil {
		return nil, false
	}

	switch c := current.(type) {
	case map[string]interface{}:
		v, ok := c[seg]
		return v, ok
	case []interface{}:
		return index(len(c), seg, func(i int) interface{} { return c[i] })
	case []map[string]interface{}:
		return index(len(c), seg, func(i int) interface{} { return c[i] })
	case string:
		if seg == lengthSegment {
			return len([]rune(c)), true
		}
		return nil, false
	}

	rv := reflect.ValueOf(current)
	if rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		return index(rv.Len(), seg, func(i int) interface{} { return rv.Index(i).Interface() })
	}
	return nil, false
}

func index(n int, seg string, at func(int) interface{}) (interface{}, bool) {
	if seg == lengthSegment {
		return n, true
	}
	i, err := strconv.Atoi(seg)
	if err != nil || i < 0 || i >= n || seg != strconv.Itoa(i) {
		return nil, false
	}
	return at(i), true
}
