// Package query implements the chainable collection API of templee.
//
// A Collection wraps an ordered sequence of records. Operations never modify
// the receiver: each returns a new Collection whose records are one-level
// copies of the source records, so callers' maps are never aliased by query
// results. Data-shape problems (missing properties, wrong types, indices out
// of range) degrade to empty results instead of errors.
//
// # Example
//
//	html := query.New(people).
//	    Where("age").Is(">30").
//	    And("address.city").Is("Oslo").
//	    SortBy("name").
//	    HTML(`<li>#{name}</li>`, `<ul class="people">`)
//
// # Concurrency
//
// A Collection is immutable once built and may be shared between goroutines.
// The records returned by Get are the live backing maps; mutating them while
// other goroutines query the collection needs external synchronization.
package query

import (
	"log/slog"
	"regexp"
	"sort"

	"github.com/elclanrs/templee/pkg/path"
	"github.com/elclanrs/templee/pkg/types"
)

// Collection is an ordered sequence of records plus the comparison property
// bound by Where.
type Collection struct {
	records []types.Record
	prop    string
	opts    *Options
}

// New wraps records. The slice is used as is; Get returns it unchanged.
func New(records []types.Record, opts ...Option) *Collection {
	if records == nil {
		records = []types.Record{}
	}
	return &Collection{records: records, opts: buildOptions(opts)}
}

// derive builds a collection over copies of records, sharing c's options.
// The comparison property is not carried over.
func (c *Collection) derive(records []types.Record) *Collection {
	return &Collection{records: types.CloneAll(records), opts: c.opts}
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Get returns the backing record sequence. Treat it as read-only.
func (c *Collection) Get() []types.Record {
	return c.records
}

// GetProp returns the value of prop in each record, in order. prop is a
// plain key, not a dotted path; records without it contribute nil.
func (c *Collection) GetProp(prop string) []interface{} {
	out := make([]interface{}, len(c.records))
	for i, rec := range c.records {
		out[i] = rec[prop]
	}
	return out
}

// Where binds the comparison property consumed by Is, Filter and the numeric
// comparators. prop may be a dotted path. The receiver is not modified.
func (c *Collection) Where(prop string) *Collection {
	return &Collection{records: c.records, prop: prop, opts: c.opts}
}

// And is an alias of Where that reads better in chains.
func (c *Collection) And(prop string) *Collection {
	return c.Where(prop)
}

// Prop returns the bound comparison property, or "" when none is bound.
func (c *Collection) Prop() string {
	return c.prop
}

// Is filters by the comparison property. condition may be:
//   - a *regexp.Regexp, tested against the value's string form as is;
//   - a string starting with a comparator and a number (">50", "<=1.5",
//     "%5"), dispatched to Compare;
//   - any other value, matched as a whole-string literal.
//
// Records where the property is absent never match.
func (c *Collection) Is(condition interface{}) *Collection {
	switch cond := condition.(type) {
	case *regexp.Regexp:
		return c.matching(cond)
	case string:
		if cmp, operand, ok := ParseCondition(cond); ok {
			return c.Compare(cmp, operand)
		}
		return c.matching(c.literal(cond))
	default:
		return c.matching(c.literal(types.ToString(cond)))
	}
}

// Compare keeps the records whose comparison property, read as a number,
// satisfies cmp against operand. Non-numeric values read as NaN and never
// match; an unknown comparator matches nothing.
func (c *Collection) Compare(cmp Comparator, operand float64) *Collection {
	if !cmp.Valid() {
		c.debug("unknown comparator", slog.String("comparator", string(cmp)))
		return c.derive(nil)
	}
	return c.Filter(func(v interface{}, _ int) bool {
		return cmp.Test(types.ToNumber(v), operand)
	})
}

// Gt keeps records whose property is greater than v.
func (c *Collection) Gt(v float64) *Collection { return c.Compare(Greater, v) }

// Gte keeps records whose property is greater than or equal to v.
func (c *Collection) Gte(v float64) *Collection { return c.Compare(GreaterEqual, v) }

// Lt keeps records whose property is less than v.
func (c *Collection) Lt(v float64) *Collection { return c.Compare(Less, v) }

// Lte keeps records whose property is less than or equal to v.
func (c *Collection) Lte(v float64) *Collection { return c.Compare(LessEqual, v) }

// Mod keeps records whose property is a multiple of v.
func (c *Collection) Mod(v float64) *Collection { return c.Compare(Modulo, v) }

// Filter keeps the records for which fn returns true. fn receives the
// resolved comparison property and the record index; records where the
// property is absent are dropped without calling fn.
func (c *Collection) Filter(fn func(value interface{}, index int) bool) *Collection {
	kept := make([]types.Record, 0, len(c.records))
	for i, rec := range c.records {
		v, ok := path.Resolve(rec, c.prop)
		if ok && fn(v, i) {
			kept = append(kept, rec)
		}
	}
	return c.derive(kept)
}

// FilterRecords keeps the records for which fn returns true.
func (c *Collection) FilterRecords(fn func(rec types.Record, index int) bool) *Collection {
	kept := make([]types.Record, 0, len(c.records))
	for i, rec := range c.records {
		if fn(rec, i) {
			kept = append(kept, rec)
		}
	}
	return c.derive(kept)
}

func (c *Collection) matching(re *regexp.Regexp) *Collection {
	if re == nil {
		return c.derive(nil)
	}
	return c.Filter(func(v interface{}, _ int) bool {
		return re.MatchString(types.ToString(v))
	})
}

// literal returns the anchored pattern matching exactly s.
func (c *Collection) literal(s string) *regexp.Regexp {
	return c.opts.Cache.Pattern(s)
}

// Add appends items. Each item is a record, or a sequence of records which
// is flattened one level. Anything else is skipped.
func (c *Collection) Add(items ...interface{}) *Collection {
	out := make([]types.Record, len(c.records), len(c.records)+len(items))
	copy(out, c.records)
	for _, item := range items {
		if rec, ok := types.AsRecord(item); ok {
			out = append(out, rec)
			continue
		}
		switch seq := item.(type) {
		case []types.Record, []interface{}:
			out = append(out, types.Records(seq)...)
		default:
			c.debug("skipping non-record item", slog.Any("item", item))
		}
	}
	return c.derive(out)
}

// Slice returns records[start:end] with sequence-slice semantics: negative
// indices count from the end, end is exclusive and defaults to Len, and
// out-of-range bounds are clamped.
func (c *Collection) Slice(start int, end ...int) *Collection {
	n := len(c.records)
	from := clampIndex(start, n)
	to := n
	if len(end) > 0 {
		to = clampIndex(end[0], n)
	}
	if from >= to {
		return c.derive(nil)
	}
	return c.derive(c.records[from:to])
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

// Each calls fn for every record in order and stops early once fn returns
// true. It returns the receiver.
func (c *Collection) Each(fn func(rec types.Record, index int) bool) *Collection {
	for i, rec := range c.records {
		if fn(rec, i) {
			break
		}
	}
	return c
}

// Map returns a collection of fn's results, one per record, in order.
// A nil result becomes an empty record.
func (c *Collection) Map(fn func(rec types.Record, index int) types.Record) *Collection {
	out := make([]types.Record, len(c.records))
	for i, rec := range c.records {
		out[i] = fn(rec, i)
	}
	return c.derive(out)
}

// Sort returns the records ordered by cmp, which follows the usual
// comparator contract (negative, zero, positive). The sort is stable. A nil
// cmp compares the records' string forms, which keeps the current order for
// plain mappings.
func (c *Collection) Sort(cmp func(a, b types.Record) int) *Collection {
	if cmp == nil {
		cmp = func(a, b types.Record) int {
			return compareValues(a, b)
		}
	}
	out := types.CloneAll(c.records)
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j]) < 0
	})
	return &Collection{records: out, opts: c.opts}
}

// SortBy orders records by the value at the dotted path p: numerically when
// both values are numbers, by string form otherwise. Records where p is
// absent sort last.
func (c *Collection) SortBy(p string) *Collection {
	return c.Sort(func(a, b types.Record) int {
		av, aok := path.Resolve(a, p)
		bv, bok := path.Resolve(b, p)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		return compareValues(av, bv)
	})
}

// Reverse returns the records in reverse order.
func (c *Collection) Reverse() *Collection {
	n := len(c.records)
	out := make([]types.Record, n)
	for i, rec := range c.records {
		out[n-1-i] = rec
	}
	return c.derive(out)
}

// Eq returns a collection holding only the record at index. Negative or
// out-of-range indices give an empty collection.
func (c *Collection) Eq(index int) *Collection {
	if index < 0 || index >= len(c.records) {
		return c.derive(nil)
	}
	return c.derive(c.records[index : index+1])
}

// HTML expands template against the records. When wrap is given and starts
// with an opening tag, the output is enclosed in it and closed with the same
// tag name.
func (c *Collection) HTML(template string, wrap ...string) string {
	return c.HTMLParts([]string{template}, wrap...)
}

// HTMLParts is HTML for a template split into fragments; the fragments are
// expanded in order for each record.
func (c *Collection) HTMLParts(fragments []string, wrap ...string) string {
	w := ""
	if len(wrap) > 0 {
		w = wrap[0]
	}
	return c.opts.Engine.Render(c.records, w, fragments...)
}

func (c *Collection) debug(msg string, args ...any) {
	if c.opts.Debug {
		c.opts.Logger.Debug(msg, args...)
	}
}
