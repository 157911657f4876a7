package template_test

import (
	"fmt"
	"testing"

	"github.com/elclanrs/templee/pkg/template"
	"github.com/elclanrs/templee/pkg/types"
)

func benchRecords(n int) []types.Record {
	recs := make([]types.Record, n)
	for i := range recs {
		recs[i] = types.Record{
			"name":    fmt.Sprintf("user-%d", i),
			"days":    []interface{}{1, 2, 3, 4},
			"address": types.Record{"city": "Oslo"},
		}
	}
	return recs
}

func BenchmarkExpandScalar(b *testing.B) {
	recs := benchRecords(100)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		template.Expand(recs, `<p>#{name}</p>`)
	}
}

func BenchmarkExpandAllPlaceholders(b *testing.B) {
	recs := benchRecords(100)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		template.Expand(recs, `<p>#{name} @{<i>={days}</i>} @[address]{<b>={city}</b>}</p>`)
	}
}
