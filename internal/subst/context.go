// Package subst implements the substitution engine and the per-subproof
// context stack (spec.md §4.3): mappings from source term handle to
// target term handle, applied with variable-capture avoidance, plus
// the three substitution flavours a Context carries.
package subst

import (
	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/term"
)

// Map is a substitution: source handle -> replacement handle.
type Map map[term.Handle]term.Handle

// Context is one subproof scope's substitution bundle plus its
// bound-variable set (spec.md §4.3).
type Context struct {
	Substitutions                Map
	SubstitutionsUntilFixedPoint Map
	CumulativeSubstitutions      Map
	Bindings                     []term.SortedVar
}

// AssignmentArg is one "(:= var value)" pair from a subproof anchor.
type AssignmentArg struct {
	Var   string
	Value term.Handle
}

// BuildContext constructs the Context for a newly opened subproof.
// assignmentArgs are the anchor's "(:= var value)" pairs in order;
// parent is the enclosing context, or nil at the outermost level.
//
// substitutions_until_fixed_point is built left to right: for pair
// (x, v), the value inserted is apply(v, the map built so far) — so
// that applying the resulting map once already has the effect of
// applying the raw substitutions to a fixed point (spec.md §4.3).
func BuildContext(p *pool.Pool, e *Engine, assignmentArgs []AssignmentArg, variableArgs []term.SortedVar, parent *Context) Context {
	substitutions := make(Map, len(assignmentArgs))
	fixedPoint := make(Map, len(assignmentArgs))

	for _, a := range assignmentArgs {
		varSort := p.SortOf(a.Value)
		varHandle := p.Intern(term.NewTerminal(term.Var(a.Var, varSort)))
		substitutions[varHandle] = a.Value

		newValue := e.Apply(a.Value, fixedPoint)
		fixedPoint[varHandle] = newValue
	}

	cumulative := make(Map, len(fixedPoint))
	for k, v := range fixedPoint {
		cumulative[k] = v
	}
	if parent != nil {
		for k, v := range parent.CumulativeSubstitutions {
			value := v
			if nv, ok := fixedPoint[v]; ok {
				value = nv
			}
			cumulative[k] = value
		}
	}

	bindings := make([]term.SortedVar, len(variableArgs))
	copy(bindings, variableArgs)

	return Context{
		Substitutions:                substitutions,
		SubstitutionsUntilFixedPoint: fixedPoint,
		CumulativeSubstitutions:      cumulative,
		Bindings:                     bindings,
	}
}
