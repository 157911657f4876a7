package query_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elclanrs/templee/pkg/query"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		in      string
		cmp     query.Comparator
		operand float64
		ok      bool
	}{
		{">50", query.Greater, 50, true},
		{">=10", query.GreaterEqual, 10, true},
		{"<3", query.Less, 3, true},
		{"<= 1.5", query.LessEqual, 1.5, true},
		{"%5", query.Modulo, 5, true},
		{">.5", query.Greater, 0.5, true},
		{"> -3", query.Greater, -3, true},
		{">50abc", query.Greater, 50, true},
		{"=5", "", 0, false},
		{"=>5", "", 0, false},
		{">x", "", 0, false},
		{"abc", "", 0, false},
		{"50>", "", 0, false},
		{"", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cmp, operand, ok := query.ParseCondition(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.cmp, cmp)
			assert.Equal(t, tt.operand, operand)
		})
	}
}

func TestComparatorTest(t *testing.T) {
	nan := math.NaN()

	assert.True(t, query.Greater.Test(60, 50))
	assert.False(t, query.Greater.Test(40, 50))
	assert.True(t, query.GreaterEqual.Test(50, 50))
	assert.True(t, query.Less.Test(1, 2))
	assert.True(t, query.LessEqual.Test(2, 2))
	assert.True(t, query.Modulo.Test(15, 5))
	assert.True(t, query.Modulo.Test(-10, 5))
	assert.False(t, query.Modulo.Test(12, 5))
	assert.False(t, query.Modulo.Test(12, 0))

	for _, c := range []query.Comparator{query.Greater, query.GreaterEqual, query.Less, query.LessEqual, query.Modulo} {
		assert.True(t, c.Valid())
		assert.False(t, c.Test(nan, 5), "%s with NaN", c)
	}

	assert.False(t, query.Comparator("!=").Valid())
	assert.False(t, query.Comparator("!=").Test(1, 2))
}
