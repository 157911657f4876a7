package types

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ToNumber converts v to a float64 the way a loose numeric comparison does.
// Numbers convert directly, booleans become 1 or 0, nil becomes 0 and
// strings are parsed after trimming (the empty string is 0). Anything that
// has no numeric reading, including mappings and sequences, is NaN.
func ToNumber(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case json.Number:
		return parseNumber(string(n))
	case string:
		return parseNumber(n)
	default:
		return math.NaN()
	}
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	// ParseFloat also accepts spellings such as "inf" and "nan"; only plain
	// decimal notation counts as numeric here.
	if strings.ContainsAny(s, "nNiI_xXpP") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToString renders v as template output. Numbers use the shortest
// representation (integers carry no decimal point), sequences are joined with
// commas, mappings render as "[object Object]" and nil renders as "".
func ToString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	case float64:
		return FormatNumber(s)
	case float32:
		return FormatNumber(float64(s))
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	case fmt.Stringer:
		return s.String()
	case Record:
		return "[object Object]"
	case []interface{}:
		parts := make([]string, len(s))
		for i, item := range s {
			parts[i] = ToString(item)
		}
		return strings.Join(parts, ",")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Map, reflect.Struct:
		return "[object Object]"
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = ToString(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return ToString(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// FormatNumber formats f with the exponent rules of JavaScript's
// Number.prototype.toString: plain notation between 1e-6 and 1e21,
// exponent notation outside that range.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs < 1e-6 || abs >= 1e21 {
		str := strconv.FormatFloat(f, 'g', -1, 64)
		str = strings.Replace(str, "e-0", "e-", 1)
		str = strings.Replace(str, "e+0", "e+", 1)
		return str
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
