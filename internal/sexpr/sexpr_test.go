package sexpr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alethecheck/alethecheck/internal/proof"
	"github.com/alethecheck/alethecheck/internal/sexpr"
	"github.com/alethecheck/alethecheck/internal/term"
)

func TestParseProofSimpleAssumeStep(t *testing.T) {
	src := `
(declare-fun x1 () Int)
(assume c1 (>= (+ (* 1 x1) 0) 1))
(step t1 (cl (>= (+ (* 2 x1) 0) 2)) :rule cp_multiplication :premises (c1) :args (2))
`
	p, pf, err := sexpr.ParseProof("test.smt2", src)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Len(t, pf.Commands, 2)

	assume := pf.Commands[0]
	assert.Equal(t, proof.KindAssume, assume.Kind)
	assert.Equal(t, "c1", assume.Index)

	step := pf.Commands[1]
	assert.Equal(t, proof.KindStep, step.Kind)
	assert.Equal(t, "cp_multiplication", step.Rule)
	require.Len(t, step.Premises, 1)
	assert.Equal(t, proof.PremiseRef{Depth: 0, Position: 0}, step.Premises[0])
	require.Len(t, step.Args, 1)
	assert.Equal(t, proof.ArgTerm, step.Args[0].Kind)
}

func TestParseProofRejectsUndeclaredSymbol(t *testing.T) {
	src := `(assume c1 (= y 0))`
	_, _, err := sexpr.ParseProof("test.smt2", src)
	assert.Error(t, err)
}

func TestParseProofHandlesSubproofAnchor(t *testing.T) {
	src := `
(declare-fun x1 () Int)
(assume c1 (>= (+ (* 1 x1) 0) 1))
(anchor :step sp1 :args ((y Int)))
(step sp1.t1 (cl (>= (+ (* 1 x1) 0) 1)) :rule trust :premises (c1))
(step sp1 (cl (>= (+ (* 1 x1) 0) 1)) :rule trust :premises (sp1.t1))
(step t2 (cl (>= (+ (* 1 x1) 0) 1)) :rule trust :premises (sp1))
`
	_, pf, err := sexpr.ParseProof("test.smt2", src)
	require.NoError(t, err)
	require.Len(t, pf.Commands, 3)

	sub := pf.Commands[1]
	require.Equal(t, proof.KindSubproof, sub.Kind)
	require.Len(t, sub.Commands, 2)
	require.Len(t, sub.VariableArgs, 1)
	assert.Equal(t, "y", sub.VariableArgs[0].Name)

	outer := pf.Commands[2]
	require.Len(t, outer.Premises, 1)
	assert.Equal(t, proof.PremiseRef{Depth: 0, Position: 1}, outer.Premises[0])
}

func TestParseProofBuildsQuantifierWithFreshBinder(t *testing.T) {
	src := `
(declare-fun x1 () Int)
(assume c1 (forall ((y Int)) (= y y)))
`
	_, pf, err := sexpr.ParseProof("test.smt2", src)
	require.NoError(t, err)
	require.Len(t, pf.Commands, 1)
	assert.NotEqual(t, term.Invalid, pf.Commands[0].AssumeTerm)
}

func TestParseProofInternsEqualRationalLiteralsToSameHandle(t *testing.T) {
	src := `(assume c1 (= 1.500 1.5))`
	p, pf, err := sexpr.ParseProof("test.smt2", src)
	require.NoError(t, err)
	require.Len(t, pf.Commands, 1)

	// "1.500" and "1.5" are the same rational value, so the pool
	// interns them to the same handle regardless of decimal spelling.
	eq := p.Term(pf.Commands[0].AssumeTerm)
	require.Len(t, eq.Args, 2)
	assert.Equal(t, eq.Args[0], eq.Args[1])
}

func TestDeclareFunWithIndexedSortSharesHandleAcrossOccurrences(t *testing.T) {
	src := `
(declare-fun bv1 () (_ BitVec 32))
(declare-fun bv2 () (_ BitVec 32))
(assume c1 (= bv1 bv2))
`
	p, pf, err := sexpr.ParseProof("test.smt2", src)
	require.NoError(t, err)
	eq := p.Term(pf.Commands[0].AssumeTerm)
	require.Len(t, eq.Args, 2)
	assert.Equal(t, p.SortOf(eq.Args[0]), p.SortOf(eq.Args[1]))
}

func TestDeclareFunDistinctArityProducesDistinctFunctionSort(t *testing.T) {
	src := `
(declare-fun f (Int) Int)
(declare-fun x1 () Int)
(assume c1 (= (f x1) x1))
`
	p, pf, err := sexpr.ParseProof("test.smt2", src)
	require.NoError(t, err)
	require.Len(t, pf.Commands, 1)

	// f takes one argument and x1 none, so their function sorts differ.
	eq := p.Term(pf.Commands[0].AssumeTerm)
	require.Len(t, eq.Args, 2)
	app := p.Term(eq.Args[0])
	assert.NotEqual(t, p.SortOf(app.Func), p.SortOf(eq.Args[1]))
}
