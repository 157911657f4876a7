// Package templee is a small query-and-template library for slices of plain
// records.
//
// A collection is filtered, sorted and sliced with a chainable API, then
// rendered through a placeholder template:
//
//	people := []templee.Record{
//	    {"name": "John", "age": 64, "days": []interface{}{1, 10}},
//	    {"name": "Mike", "age": 31, "days": []interface{}{4, 8}},
//	}
//
//	html := templee.New(people).
//	    Where("age").Is(">50").
//	    HTML(`<p>#{name} @{<span>={days}</span>}</p>`, `<div class="people">`)
//	// <div class="people"><p>John <span>1</span><span>10</span></p></div>
//
// # Template grammar
//
//   - #{path} substitutes the value at a dotted path.
//   - @{open={path}close} repeats open+item+close for each item of a sequence.
//   - @[path]{text={sub}text} substitutes values of the mapping at path.
//
// Missing properties never fail: they render empty, iterate zero times and
// never satisfy a filter.
//
// # More Information
//
//   - Collections: github.com/elclanrs/templee/pkg/query
//   - Templates: github.com/elclanrs/templee/pkg/template
//   - Paths: github.com/elclanrs/templee/pkg/path
//   - Loading records: github.com/elclanrs/templee/pkg/records
package templee

import (
	"github.com/elclanrs/templee/pkg/query"
	"github.com/elclanrs/templee/pkg/template"
	"github.com/elclanrs/templee/pkg/types"
)

// Record is one element of a collection.
type Record = types.Record

// Version returns the current version of templee.
func Version() string {
	return "v0.2.0"
}

// New wraps records in a chainable collection. records may be a
// []Record, a []interface{} of records or a single Record; elements that are
// not records are dropped.
func New(records interface{}, opts ...query.Option) *query.Collection {
	return query.New(types.Records(records), opts...)
}

// Expand expands template fragments against records.
func Expand(records []Record, fragments ...string) string {
	return template.Expand(records, fragments...)
}

// Render expands template fragments against records and wraps the output in
// the element opened by wrap.
func Render(records []Record, wrap string, fragments ...string) string {
	return template.Render(records, wrap, fragments...)
}
