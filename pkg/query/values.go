package query

import (
	"strings"

	"github.com/elclanrs/templee/pkg/types"
)

// compareValues orders two values: numerically when both are numbers,
// by string form otherwise.
func compareValues(a, b interface{}) int {
	if isNumber(a) && isNumber(b) {
		x, y := types.ToNumber(a), types.ToNumber(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return strings.Compare(types.ToString(a), types.ToString(b))
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}
