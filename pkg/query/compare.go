package query

import (
	"math"
	"regexp"
	"strconv"
)

// Comparator is the symbol of a numeric comparison.
type Comparator string

// Supported comparators.
const (
	Greater      Comparator = ">"
	GreaterEqual Comparator = ">="
	Less         Comparator = "<"
	LessEqual    Comparator = "<="
	Modulo       Comparator = "%"
)

// predicates maps each comparator to its test. p is the resolved property
// value, v the operand. Comparisons involving NaN are always false.
var predicates = map[Comparator]func(p, v float64) bool{
	Greater:      func(p, v float64) bool { return p > v },
	GreaterEqual: func(p, v float64) bool { return p >= v },
	Less:         func(p, v float64) bool { return p < v },
	LessEqual:    func(p, v float64) bool { return p <= v },
	Modulo:       func(p, v float64) bool { return math.Mod(p, v) == 0 },
}

// Valid reports whether c is a known comparator.
func (c Comparator) Valid() bool {
	_, ok := predicates[c]
	return ok
}

// Test applies the comparator. Unknown comparators never match.
func (c Comparator) Test(p, v float64) bool {
	pred, ok := predicates[c]
	if !ok {
		return false
	}
	return pred(p, v)
}

// Longer symbols come first so ">=" is not read as ">" followed by "=".
var conditionPattern = regexp.MustCompile(`^(>=|<=|>|<|%)\s*([+-]?(?:\d+(?:\.\d*)?|\.\d+))`)

// ParseCondition splits a condition such as ">=10" or "%5" into its
// comparator and operand. Text after the number is ignored. ok is false when
// the condition does not start with a comparator followed by a number.
func ParseCondition(condition string) (cmp Comparator, operand float64, ok bool) {
	m := conditionPattern.FindStringSubmatch(condition)
	if m == nil {
		return "", 0, false
	}
	operand, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, false
	}
	return Comparator(m[1]), operand, true
}
