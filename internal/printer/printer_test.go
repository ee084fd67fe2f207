package printer_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/printer"
	"github.com/alethecheck/alethecheck/internal/proof"
	"github.com/alethecheck/alethecheck/internal/term"
)

func TestWriteProofRendersStepWithPremisesAndArgs(t *testing.T) {
	p := pool.New()
	x1 := p.Intern(term.NewTerminal(term.Var("x1", p.IntSort())))
	one := p.Intern(term.NewTerminal(term.Integer(big.NewInt(1))))
	two := p.Intern(term.NewTerminal(term.Integer(big.NewInt(2))))
	zero := p.Intern(term.NewTerminal(term.Integer(big.NewInt(0))))

	mul1 := p.Intern(term.NewOp(term.OpMul, []term.Handle{one, x1}))
	sum1 := p.Intern(term.NewOp(term.OpAdd, []term.Handle{mul1, zero}))
	premise := p.Intern(term.NewOp(term.OpGe, []term.Handle{sum1, one}))

	mul2 := p.Intern(term.NewOp(term.OpMul, []term.Handle{two, x1}))
	sum2 := p.Intern(term.NewOp(term.OpAdd, []term.Handle{mul2, zero}))
	conclusion := p.Intern(term.NewOp(term.OpGe, []term.Handle{sum2, two}))

	pf := &proof.Proof{
		Premises: []term.Handle{premise},
		Commands: []proof.Command{
			{Kind: proof.KindAssume, Index: "c1", AssumeTerm: premise},
			{
				Kind:     proof.KindStep,
				Index:    "t1",
				Clause:   []term.Handle{conclusion},
				Rule:     "cp_multiplication",
				Premises: []proof.PremiseRef{{Depth: 0, Position: 0}},
				Args:     []proof.Arg{proof.TermArg(two)},
			},
		},
	}

	var out strings.Builder
	err := printer.New(p, &out).WriteProof(pf)
	assert.Nil(t, err)
	assert.Equal(t,
		"(step t1 (cl (>= (+ (* 2 x1) 0) 2)) :rule cp_multiplication :premises (c1) :args (2))\n",
		out.String())
}

func TestWriteProofRendersAssignArgsAndSubproofPremise(t *testing.T) {
	p := pool.New()
	boolSort := p.BoolSort()
	x := p.Intern(term.NewTerminal(term.Var("x", boolSort)))

	inner := proof.Command{Kind: proof.KindStep, Index: "s1", Clause: []term.Handle{x}, Rule: "trust"}
	pf := &proof.Proof{
		Commands: []proof.Command{
			{Kind: proof.KindSubproof, Commands: []proof.Command{inner}},
			{
				Kind:     proof.KindStep,
				Index:    "t1",
				Clause:   []term.Handle{x},
				Rule:     "trust",
				Premises: []proof.PremiseRef{{Depth: 0, Position: 0}},
				Args:     []proof.Arg{proof.AssignArg("y", x)},
			},
		},
	}

	var out strings.Builder
	err := printer.New(p, &out).WriteProof(pf)
	assert.Nil(t, err)
	assert.Equal(t,
		"(step s1 (cl x) :rule trust)\n(step t1 (cl x) :rule trust :premises (s1) :args ((:= y x)))\n",
		out.String())
}

func TestFormatRationalExactDecimal(t *testing.T) {
	p := pool.New()
	r := new(big.Rat).SetFrac(big.NewInt(5), big.NewInt(4)) // 1.25
	h := p.Intern(term.NewTerminal(term.Rational(r)))

	var out strings.Builder
	pf := &proof.Proof{Commands: []proof.Command{{Kind: proof.KindStep, Index: "t1", Clause: []term.Handle{h}, Rule: "trust"}}}
	assert.Nil(t, printer.New(p, &out).WriteProof(pf))
	assert.Equal(t, "(step t1 (cl 1.25) :rule trust)\n", out.String())
}
