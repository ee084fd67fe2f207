package rules

import (
	"math/big"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/term"
)

// PbMap is a pseudo-boolean sum's literal -> coefficient mapping. The
// original checker keys this by the literal's rendered string so
// structurally-identical literals unify; here the pool's hash-consing
// already guarantees that, so the literal's own canonical handle is
// the key (spec.md §4.1's interning invariant makes the string step
// redundant).
type PbMap map[term.Handle]*big.Int

// pbPattern is "(>= (+ summands...) K)": a pseudo-boolean inequality's
// sum and constant, matched with matchTerm (spec.md §4.5's
// match_term_err! contract) rather than hand-rolled tag/op/arity
// checks.
var pbPattern = parsePattern("(>= (+ summands...) k)")

// summandPattern is one "(* coeff literal)" addend of a pseudo-boolean
// sum.
var summandPattern = parsePattern("(* coeff literal)")

// parsePB matches clause against "(>= (+ (* c1 l1) ... (* ck lk) 0) K)"
// (spec.md §4.6) and returns the coefficient map and the constant K.
// The trailing 0 summand is required and otherwise ignored.
func parsePB(p *pool.Pool, clause term.Handle) (PbMap, *big.Int, *Error) {
	top, err := matchTerm(p, pbPattern, clause)
	if err != nil {
		return nil, nil, err
	}
	summands := top.rests["summands"]
	if len(summands) == 0 {
		return nil, nil, errCouldNotMatch(clause)
	}

	k, kerr := asInteger(p, top.binds["k"])
	if kerr != nil {
		return nil, nil, kerr
	}

	n := len(summands) - 1 // the trailing "0" is required, not a summand
	trailing := p.Term(summands[n])
	if trailing.Tag != term.TagTerminal || trailing.Literal.Kind != term.LitInteger || trailing.Literal.Int.Sign() != 0 {
		return nil, nil, errCouldNotMatch(clause)
	}

	pb := make(PbMap, n)
	for i := 0; i < n; i++ {
		addend, aerr := matchTerm(p, summandPattern, summands[i])
		if aerr != nil {
			return nil, nil, aerr
		}
		coeff, cerr := asInteger(p, addend.binds["coeff"])
		if cerr != nil {
			return nil, nil, cerr
		}
		pb[addend.binds["literal"]] = coeff
	}
	return pb, k, nil
}

// asInteger coerces h to its arbitrary-precision integer value,
// surfacing ExpectedInteger on anything else (spec.md §4.5).
func asInteger(p *pool.Pool, h term.Handle) (*big.Int, *Error) {
	t := p.Term(h)
	if t.Tag != term.TagTerminal || t.Literal.Kind != term.LitInteger {
		return nil, errExpectedInteger(h)
	}
	return t.Literal.Int, nil
}

// ceilDiv computes ceil(numerator / divisor) for a positive divisor
// as (numerator + divisor - 1) div divisor (spec.md §4.6). big.Int.Div
// is Euclidean division, so this also holds for a negative numerator.
func ceilDiv(numerator, divisor *big.Int) *big.Int {
	sum := new(big.Int).Add(numerator, divisor)
	sum.Sub(sum, big.NewInt(1))
	return sum.Div(sum, divisor)
}
