// Package rules evaluates user-defined predicates over roll-events so
// experimenters can count arbitrary outcome patterns beyond the built-in
// aggregations.
package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

// Registry manages the CEL environment and compiles roll-event predicates.
//
// Predicates see one roll-event at a time:
//
//	event    int          1-based roll-event index
//	faces    list(string) the faces rolled, in die order
//	distinct int          number of distinct faces in the event
//	jackpot  bool         whether all dice showed the same face
//
// plus a count(faces, "6") helper for per-face tallies.
type Registry struct {
	env *cel.Env
}

// NewRegistry initializes the CEL environment with the roll-event variables
// and functions.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		cel.Variable("event", cel.IntType),
		cel.Variable("faces", cel.ListType(cel.StringType)),
		cel.Variable("distinct", cel.IntType),
		cel.Variable("jackpot", cel.BoolType),

		cel.Function("count",
			cel.Overload("count_list_string",
				[]*cel.Type{cel.ListType(cel.StringType), cel.StringType},
				cel.IntType,
				cel.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
					list, ok := lhs.(traits.Lister)
					if !ok {
						return types.NewErr("count expects a list")
					}
					want := rhs.Value().(string)
					n := 0
					it := list.Iterator()
					for it.HasNext() == types.True {
						if it.Next().Value().(string) == want {
							n++
						}
					}
					return types.Int(n)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env}, nil
}

// Filter is a compiled roll-event predicate.
type Filter struct {
	program cel.Program
}

// Compile checks and compiles a predicate expression once, so it can be
// evaluated cheaply across thousands of roll-events.
func (r *Registry) Compile(expression string) (*Filter, error) {
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter %q must evaluate to a boolean, got %s", expression, ast.OutputType())
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	return &Filter{program: prog}, nil
}

// Matches evaluates the predicate against one roll-event.
func (f *Filter) Matches(event int, faces []string) (bool, error) {
	seen := make(map[string]struct{}, len(faces))
	for _, face := range faces {
		seen[face] = struct{}{}
	}

	out, _, err := f.program.Eval(map[string]any{
		"event":    event,
		"faces":    faces,
		"distinct": len(seen),
		"jackpot":  len(seen) == 1,
	})
	if err != nil {
		return false, err
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter returned non-boolean %v", out.Value())
	}
	return matched, nil
}

// CountMatches evaluates the predicate over a whole results table (rows of
// faces in die order) and returns how many roll-events matched.
func (f *Filter) CountMatches(rows [][]string) (int, error) {
	count := 0
	for i, row := range rows {
		ok, err := f.Matches(i+1, row)
		if err != nil {
			return 0, fmt.Errorf("event %d: %w", i+1, err)
		}
		if ok {
			count++
		}
	}
	return count, nil
}
