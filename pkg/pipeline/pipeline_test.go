package pipeline_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elclanrs/templee/pkg/pipeline"
	"github.com/elclanrs/templee/pkg/query"
	"github.com/elclanrs/templee/pkg/types"
)

func people() []types.Record {
	return []types.Record{
		{"name": "John", "age": 64.0, "address": types.Record{"city": "Oslo"}},
		{"name": "Mike", "age": 31.0, "address": types.Record{"city": "Bergen"}},
		{"name": "Ann", "age": 25.0},
		{"name": "Zed", "age": 45.0, "address": types.Record{"city": "Oslo"}},
	}
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		in   string
		want pipeline.Step
	}{
		{"where:age", pipeline.Step{Op: pipeline.OpWhere, Arg: "age"}},
		{"WHERE: address.city ", pipeline.Step{Op: pipeline.OpWhere, Arg: "address.city"}},
		{"and:name", pipeline.Step{Op: pipeline.OpAnd, Arg: "name"}},
		{"is:>=10", pipeline.Step{Op: pipeline.OpIs, Arg: ">=10"}},
		{"is:a:b", pipeline.Step{Op: pipeline.OpIs, Arg: "a:b"}},
		{"is:", pipeline.Step{Op: pipeline.OpIs, Arg: ""}},
		{"sortby:name", pipeline.Step{Op: pipeline.OpSortBy, Arg: "name"}},
		{"reverse", pipeline.Step{Op: pipeline.OpReverse}},
		{"slice:1:3", pipeline.Step{Op: pipeline.OpSlice, Start: 1, End: 3, HasEnd: true}},
		{"slice:-2", pipeline.Step{Op: pipeline.OpSlice, Start: -2}},
		{"slice:2:", pipeline.Step{Op: pipeline.OpSlice, Start: 2}},
		{"eq:0", pipeline.Step{Op: pipeline.OpEq, Start: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := pipeline.ParseStep(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseStep() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStepErrors(t *testing.T) {
	tests := []struct {
		in   string
		code types.ErrorCode
	}{
		{"where:", types.ErrMissingArg},
		{"and:  ", types.ErrMissingArg},
		{"sortby", types.ErrMissingArg},
		{"explode:x", types.ErrUnknownStep},
		{"slice:a", types.ErrInvalidSlice},
		{"slice:1:b", types.ErrInvalidSlice},
		{"eq:first", types.ErrInvalidIndex},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := pipeline.ParseStep(tt.in)
			var te *types.Error
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.code, te.Code)
			assert.Equal(t, tt.in, te.Source)
		})
	}
}

func TestStepString(t *testing.T) {
	for _, text := range []string{"where:age", "is:>5", "sortby:a.b", "reverse", "slice:1:3", "slice:-2", "eq:4"} {
		step, err := pipeline.ParseStep(text)
		require.NoError(t, err)
		assert.Equal(t, text, step.String())
	}
}

func TestParseStepsRequiresWhere(t *testing.T) {
	_, err := pipeline.ParseSteps([]string{"is:>5"})
	assert.ErrorIs(t, err, types.NewError(types.ErrMissingWhere, ""))

	_, err = pipeline.ParseSteps([]string{"where:age", "is:>5", "is:<70"})
	assert.ErrorIs(t, err, types.NewError(types.ErrMissingWhere, ""))

	steps, err := pipeline.ParseSteps([]string{"where:age", "is:>5", "and:name", "is:John"})
	require.NoError(t, err)
	assert.Len(t, steps, 4)
}

func TestParseStepsUnbindsAfterOtherOps(t *testing.T) {
	for _, texts := range [][]string{
		{"where:x", "sortby:y", "is:1"},
		{"where:age", "reverse", "is:>30"},
		{"where:age", "slice:0:2", "is:>30"},
		{"and:age", "eq:0", "is:>30"},
	} {
		_, err := pipeline.ParseSteps(texts)
		assert.ErrorIsf(t, err, types.NewError(types.ErrMissingWhere, ""), "%v", texts)
	}

	// Rebinding after the reorder is accepted and filters as expected.
	steps, err := pipeline.ParseSteps([]string{"where:age", "reverse", "where:age", "is:>30"})
	require.NoError(t, err)
	recs := []types.Record{{"name": "a", "age": 40}, {"name": "b", "age": 20}}
	got := pipeline.Apply(query.New(recs), steps)
	assert.Equal(t, []interface{}{"a"}, got.GetProp("name"))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		steps []string
		want  []interface{}
	}{
		{"none", nil, []interface{}{"John", "Mike", "Ann", "Zed"}},
		{"filter", []string{"where:age", "is:>30"}, []interface{}{"John", "Mike", "Zed"}},
		{"filter twice", []string{"where:age", "is:>30", "and:address.city", "is:Oslo"}, []interface{}{"John", "Zed"}},
		{"sort and slice", []string{"sortby:name", "slice:1:3"}, []interface{}{"John", "Mike"}},
		{"reverse and eq", []string{"reverse", "eq:0"}, []interface{}{"Zed"}},
		{"open slice", []string{"slice:-1"}, []interface{}{"Zed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := pipeline.ParseSteps(tt.steps)
			require.NoError(t, err)
			got := pipeline.Apply(query.New(people()), steps).GetProp("name")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRequestRender(t *testing.T) {
	req := pipeline.Request{
		Records:  people(),
		Template: []string{`<li>#{name}`, `</li>`},
		Wrap:     `<ul>`,
		Steps:    []string{"where:address.city", "is:Oslo"},
	}
	html, err := req.Render()
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>John</li><li>Zed</li></ul>", html)

	req.Steps = []string{"bogus"}
	_, err = req.Render()
	assert.Error(t, err)
}
