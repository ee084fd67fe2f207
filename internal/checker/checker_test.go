package checker_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alethecheck/alethecheck/internal/checker"
	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/proof"
	"github.com/alethecheck/alethecheck/internal/term"
)

func pbTerm(p *pool.Pool, k int64, coeff int64, lit string) term.Handle {
	litHandle := p.Intern(term.NewTerminal(term.Var(lit, p.IntSort())))
	coeffHandle := p.Intern(term.NewTerminal(term.Integer(big.NewInt(coeff))))
	mul := p.Intern(term.NewOp(term.OpMul, []term.Handle{coeffHandle, litHandle}))
	zero := p.Intern(term.NewTerminal(term.Integer(big.NewInt(0))))
	sum := p.Intern(term.NewOp(term.OpAdd, []term.Handle{mul, zero}))
	kHandle := p.Intern(term.NewTerminal(term.Integer(big.NewInt(k))))
	return p.Intern(term.NewOp(term.OpGe, []term.Handle{sum, kHandle}))
}

func TestCheckAcceptsSimpleCpMultiplicationProof(t *testing.T) {
	p := pool.New()
	premise := pbTerm(p, 1, 1, "x1")
	conclusion := pbTerm(p, 2, 2, "x1")

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
				Args:     []proof.Arg{proof.TermArg(p.Intern(term.NewTerminal(term.Integer(big.NewInt(2)))))},
			},
		},
	}

	c := checker.New(p, checker.Config{})
	assert.Nil(t, c.Check(pf))
}

func TestCheckRejectsAssumeNotMatchingPremise(t *testing.T) {
	p := pool.New()
	premise := pbTerm(p, 1, 1, "x1")
	other := pbTerm(p, 9, 9, "x9")

	pf := &proof.Proof{
		Premises: []term.Handle{premise},
		Commands: []proof.Command{
			{Kind: proof.KindAssume, Index: "c1", AssumeTerm: other},
		},
	}

	c := checker.New(p, checker.Config{})
	err := c.Check(pf)
	assert.NotNil(t, err)
}

func TestCheckRejectsUnknownRule(t *testing.T) {
	p := pool.New()
	premise := pbTerm(p, 1, 1, "x1")

	pf := &proof.Proof{
		Premises: []term.Handle{premise},
		Commands: []proof.Command{
			{Kind: proof.KindAssume, Index: "c1", AssumeTerm: premise},
			{
				Kind:     proof.KindStep,
				Index:    "t1",
				Clause:   []term.Handle{premise},
				Rule:     "not_a_real_rule",
				Premises: []proof.PremiseRef{{Depth: 0, Position: 0}},
			},
		},
	}

	c := checker.New(p, checker.Config{})
	err := c.Check(pf)
	assert.NotNil(t, err)

	cerr, ok := err.(*checker.Error)
	assert.True(t, ok)
	assert.Equal(t, "not_a_real_rule", cerr.RuleName)
}

func TestCheckSkipsUnknownRuleWhenConfigured(t *testing.T) {
	p := pool.New()
	premise := pbTerm(p, 1, 1, "x1")

	pf := &proof.Proof{
		Premises: []term.Handle{premise},
		Commands: []proof.Command{
			{Kind: proof.KindAssume, Index: "c1", AssumeTerm: premise},
			{
				Kind:     proof.KindStep,
				Index:    "t1",
				Clause:   []term.Handle{premise},
				Rule:     "not_a_real_rule",
				Premises: []proof.PremiseRef{{Depth: 0, Position: 0}},
			},
		},
	}

	c := checker.New(p, checker.Config{SkipUnknownRules: true})
	assert.Nil(t, c.Check(pf))
}

func TestCheckWalksIntoSubproofAndPopsContext(t *testing.T) {
	p := pool.New()
	premise := pbTerm(p, 1, 1, "x1")

	innerStep := proof.Command{
		Kind:   proof.KindStep,
		Index:  "s1",
		Clause: []term.Handle{premise},
		Rule:   "trust",
	}

	pf := &proof.Proof{
		Premises: []term.Handle{premise},
		Commands: []proof.Command{
			{Kind: proof.KindAssume, Index: "c1", AssumeTerm: premise},
			{
				Kind:     proof.KindSubproof,
				Commands: []proof.Command{innerStep},
			},
			{
				Kind:     proof.KindStep,
				Index:    "t1",
				Clause:   []term.Handle{premise},
				Rule:     "trust",
				Premises: []proof.PremiseRef{{Depth: 0, Position: 0}},
			},
		},
	}

	c := checker.New(p, checker.Config{})
	assert.Nil(t, c.Check(pf))
}
