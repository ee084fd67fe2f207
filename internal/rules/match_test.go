package rules

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/term"
)

func TestMatchTermCapturesFixedAndVariadicArgs(t *testing.T) {
	p := pool.New()
	c1 := p.Intern(term.NewTerminal(term.Integer(big.NewInt(2))))
	l1 := p.Intern(term.NewTerminal(term.Var("x1", p.IntSort())))
	c2 := p.Intern(term.NewTerminal(term.Integer(big.NewInt(3))))
	l2 := p.Intern(term.NewTerminal(term.Var("x2", p.IntSort())))
	summand1 := p.Intern(term.NewOp(term.OpMul, []term.Handle{c1, l1}))
	summand2 := p.Intern(term.NewOp(term.OpMul, []term.Handle{c2, l2}))
	zero := p.Intern(term.NewTerminal(term.Integer(big.NewInt(0))))
	sum := p.Intern(term.NewOp(term.OpAdd, []term.Handle{summand1, summand2, zero}))
	k := p.Intern(term.NewTerminal(term.Integer(big.NewInt(5))))
	clause := p.Intern(term.NewOp(term.OpGe, []term.Handle{sum, k}))

	res, err := matchTerm(p, parsePattern("(>= (+ summands...) k)"), clause)

	assert.Nil(t, err)
	assert.Equal(t, k, res.binds["k"])
	assert.Equal(t, []term.Handle{summand1, summand2, zero}, res.rests["summands"])
}

func TestMatchTermRejectsWrongHeadOperator(t *testing.T) {
	p := pool.New()
	a := p.Intern(term.NewTerminal(term.Integer(big.NewInt(1))))
	b := p.Intern(term.NewTerminal(term.Integer(big.NewInt(2))))
	sum := p.Intern(term.NewOp(term.OpAdd, []term.Handle{a, b}))

	_, err := matchTerm(p, parsePattern("(* coeff literal)"), sum)

	assert.NotNil(t, err)
	assert.Equal(t, CouldNotMatch, err.Kind)
}

func TestMatchTermRejectsNonApplicationTerm(t *testing.T) {
	p := pool.New()
	a := p.Intern(term.NewTerminal(term.Integer(big.NewInt(1))))

	_, err := matchTerm(p, parsePattern("(* coeff literal)"), a)

	assert.NotNil(t, err)
}
