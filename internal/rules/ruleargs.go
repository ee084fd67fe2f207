package rules

import (
	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/proof"
	"github.com/alethecheck/alethecheck/internal/subst"
	"github.com/alethecheck/alethecheck/internal/term"
)

// Args is the bundle every rule predicate receives (spec.md §4.5).
// Premises have already been resolved from (depth, position) pairs
// into direct command references by the walker.
type Args struct {
	Conclusion []term.Handle
	Premises   []proof.Command
	RuleArgs   []proof.Arg
	Pool       *pool.Pool

	// Context is the top-of-stack substitution context, or nil at
	// root. Rules only ever read it.
	Context *subst.Context

	// SubproofCommands is non-nil iff this step closes a subproof,
	// holding that subproof's command list.
	SubproofCommands []proof.Command
}

// Rule is a pure predicate over Args: success is a nil error.
type Rule func(Args) *Error

// premiseClause returns the single-element conclusion clause of a
// resolved premise command, as every cutting-planes rule expects.
func premiseClause(c proof.Command) []term.Handle {
	switch c.Kind {
	case proof.KindAssume:
		return []term.Handle{c.AssumeTerm}
	case proof.KindStep:
		return c.Clause
	case proof.KindSubproof:
		return premiseClause(c.LastStep())
	}
	return nil
}
