package template

import (
	"reflect"
	"strings"

	"github.com/elclanrs/templee/pkg/path"
	"github.com/elclanrs/templee/pkg/types"
)

// lookup resolves key against data; absent values come back as nil.
func lookup(data interface{}, key string) interface{} {
	v, ok := path.Resolve(data, strings.TrimSpace(key))
	if !ok {
		return nil
	}
	return v
}

func lookupString(data interface{}, key string) string {
	return types.ToString(lookup(data, key))
}

// eachItem calls fn for every element of a sequence. Anything that is not a
// sequence, absent values included, iterates zero times.
func eachItem(v interface{}, fn func(interface{})) {
	switch s := v.(type) {
	case nil, string:
		return
	case []interface{}:
		for _, item := range s {
			fn(item)
		}
		return
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return
	}
	for i := 0; i < rv.Len(); i++ {
		fn(rv.Index(i).Interface())
	}
}
