// Package pipeline describes collection queries as text so they can be
// passed on a command line or inside a JSON request.
//
// A step is an operation name optionally followed by ":" and an argument:
//
//	where:age        bind the comparison property (also "and:")
//	is:>50           filter, same condition syntax as Collection.Is
//	sortby:name      order by a dotted path
//	reverse          reverse the order
//	slice:1:3        sub-sequence, end optional ("slice:-2")
//	eq:0             single record
//
// # Example
//
//	steps, err := pipeline.ParseSteps([]string{"where:age", "is:>30", "sortby:name"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c := pipeline.Apply(query.New(recs), steps)
package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/elclanrs/templee/pkg/query"
	"github.com/elclanrs/templee/pkg/types"
)

// Op names a step operation.
type Op string

// Supported operations.
const (
	OpWhere   Op = "where"
	OpAnd     Op = "and"
	OpIs      Op = "is"
	OpSortBy  Op = "sortby"
	OpReverse Op = "reverse"
	OpSlice   Op = "slice"
	OpEq      Op = "eq"
)

// Step is one parsed query operation.
type Step struct {
	Op  Op
	Arg string
	// Start and End are the slice bounds; End is only meaningful when HasEnd.
	// Start also carries the index of an eq step.
	Start  int
	End    int
	HasEnd bool
}

// String renders the step back into its textual form.
func (s Step) String() string {
	switch s.Op {
	case OpReverse:
		return string(s.Op)
	case OpSlice:
		if s.HasEnd {
			return fmt.Sprintf("%s:%d:%d", s.Op, s.Start, s.End)
		}
		return fmt.Sprintf("%s:%d", s.Op, s.Start)
	case OpEq:
		return fmt.Sprintf("%s:%d", s.Op, s.Start)
	default:
		return string(s.Op) + ":" + s.Arg
	}
}

// ParseStep parses a single step.
func ParseStep(text string) (Step, error) {
	name, arg, _ := strings.Cut(text, ":")
	op := Op(strings.ToLower(strings.TrimSpace(name)))

	switch op {
	case OpWhere, OpAnd, OpSortBy:
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return Step{}, types.NewError(types.ErrMissingArg,
				fmt.Sprintf("%s needs a property path", op)).WithSource(text)
		}
		return Step{Op: op, Arg: arg}, nil
	case OpIs:
		return Step{Op: op, Arg: arg}, nil
	case OpReverse:
		return Step{Op: op}, nil
	case OpSlice:
		return parseSlice(text, arg)
	case OpEq:
		i, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return Step{}, types.NewError(types.ErrInvalidIndex, "eq needs an integer index").
				WithSource(text).WithCause(err)
		}
		return Step{Op: op, Start: i}, nil
	default:
		return Step{}, types.NewError(types.ErrUnknownStep,
			fmt.Sprintf("unknown operation %q", name)).WithSource(text)
	}
}

func parseSlice(text, arg string) (Step, error) {
	startText, endText, hasEnd := strings.Cut(arg, ":")
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return Step{}, types.NewError(types.ErrInvalidSlice, "slice start must be an integer").
			WithSource(text).WithCause(err)
	}
	step := Step{Op: OpSlice, Start: start}
	if hasEnd && strings.TrimSpace(endText) != "" {
		end, err := strconv.Atoi(strings.TrimSpace(endText))
		if err != nil {
			return Step{}, types.NewError(types.ErrInvalidSlice, "slice end must be an integer").
				WithSource(text).WithCause(err)
		}
		step.End, step.HasEnd = end, true
	}
	return step, nil
}

// ParseSteps parses steps in order and checks that every "is" step directly
// follows a "where" or "and" step. Every other operation, including a
// previous "is", yields a collection with no comparison property bound.
func ParseSteps(texts []string) ([]Step, error) {
	steps := make([]Step, 0, len(texts))
	bound := false
	for _, text := range texts {
		step, err := ParseStep(text)
		if err != nil {
			return nil, err
		}
		if step.Op == OpIs && !bound {
			return nil, types.NewError(types.ErrMissingWhere,
				"is must follow where or and").WithSource(text)
		}
		bound = step.Op == OpWhere || step.Op == OpAnd
		steps = append(steps, step)
	}
	return steps, nil
}

// Apply runs steps against c in order and returns the resulting collection.
func Apply(c *query.Collection, steps []Step) *query.Collection {
	for _, step := range steps {
		switch step.Op {
		case OpWhere:
			c = c.Where(step.Arg)
		case OpAnd:
			c = c.And(step.Arg)
		case OpIs:
			c = c.Is(step.Arg)
		case OpSortBy:
			c = c.SortBy(step.Arg)
		case OpReverse:
			c = c.Reverse()
		case OpSlice:
			if step.HasEnd {
				c = c.Slice(step.Start, step.End)
			} else {
				c = c.Slice(step.Start)
			}
		case OpEq:
			c = c.Eq(step.Start)
		}
	}
	return c
}
