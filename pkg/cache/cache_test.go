package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elclanrs/templee/pkg/cache"
)

func TestPatternMatchesLiteralOnly(t *testing.T) {
	tests := []struct {
		literal string
		match   []string
		reject  []string
	}{
		{"John", []string{"John"}, []string{"john", "Johnny", " John"}},
		{"J.hn", []string{"J.hn"}, []string{"John"}},
		{"a+b", []string{"a+b"}, []string{"aab", "ab"}},
		{"(x)|y", []string{"(x)|y"}, []string{"x", "y"}},
		{"$1^", []string{"$1^"}, []string{"1"}},
		{"", []string{""}, []string{" "}},
		{"n/a", []string{"n/a"}, []string{"na"}},
	}

	c := cache.New(0)
	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			re := c.Pattern(tt.literal)
			for _, s := range tt.match {
				assert.Truef(t, re.MatchString(s), "%q should match %q", tt.literal, s)
			}
			for _, s := range tt.reject {
				assert.Falsef(t, re.MatchString(s), "%q should not match %q", tt.literal, s)
			}
		})
	}
}

func TestAnchored(t *testing.T) {
	assert.Equal(t, `^J\.hn$`, cache.Anchored("J.hn"))
	assert.Equal(t, `^$`, cache.Anchored(""))
}

func TestPatternReusesCompiled(t *testing.T) {
	c := cache.New(4)

	first := c.Pattern("Oslo")
	second := c.Pattern("Oslo")
	assert.Same(t, first, second)

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains("Oslo"))
	assert.False(t, c.Contains("^Oslo$"), "keys are literals, not pattern sources")
}

func TestPatternEvictsLeastRecent(t *testing.T) {
	c := cache.New(2)
	c.Pattern("a")
	c.Pattern("b")
	c.Pattern("a") // a is now the most recent
	c.Pattern("c")

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))

	// An evicted literal is rebuilt on demand.
	_, before := c.Stats()
	assert.True(t, c.Pattern("b").MatchString("b"))
	_, after := c.Stats()
	assert.Equal(t, before+1, after)
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, cache.DefaultCapacity, cache.New(0).Capacity())
	assert.Equal(t, cache.DefaultCapacity, cache.New(-3).Capacity())
	assert.Equal(t, 10, cache.New(10).Capacity())
}

func TestClear(t *testing.T) {
	c := cache.New(4)
	c.Pattern("x")
	c.Pattern("x")
	c.Clear()

	assert.Equal(t, 0, c.Len())
	hits, misses := c.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.True(t, c.Pattern("x").MatchString("x"))
}

func TestPatternConcurrent(t *testing.T) {
	c := cache.New(8)
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lit := fmt.Sprintf("v%d.", i%12)
			re := c.Pattern(lit)
			if !re.MatchString(lit) {
				t.Errorf("pattern for %q does not match itself", lit)
			}
		}(i)
	}
	wg.Wait()

	require.LessOrEqual(t, c.Len(), 8)
	hits, misses := c.Stats()
	assert.Equal(t, uint64(64), hits+misses)
}
