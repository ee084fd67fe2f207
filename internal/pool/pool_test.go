package pool_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/term"
)

func TestInternIsCanonical(t *testing.T) {
	p := pool.New()

	x := term.NewTerminal(term.Var("x", p.IntSort()))
	h1 := p.Intern(x)
	h2 := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))

	assert.Equal(t, h1, h2)
}

func TestInternDistinguishesDifferentTerms(t *testing.T) {
	p := pool.New()

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))

	assert.NotEqual(t, x, y)
}

func TestInternSameIntegerValue(t *testing.T) {
	p := pool.New()

	a := p.Intern(term.NewTerminal(term.Integer(big.NewInt(7))))
	b := p.Intern(term.NewTerminal(term.Integer(big.NewInt(7))))

	assert.Equal(t, a, b)
}

func TestDeepEqualRequiresSameOrder(t *testing.T) {
	p := pool.New()

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))

	xy := p.Intern(term.NewOp(term.OpAdd, []term.Handle{x, y}))
	yx := p.Intern(term.NewOp(term.OpAdd, []term.Handle{y, x}))

	assert.False(t, p.DeepEqual(xy, yx))
	assert.True(t, p.EqualModuloReordering(xy, yx))
}

func TestEqualModuloReorderingNotAlphaEquivalence(t *testing.T) {
	p := pool.New()

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))

	forallX := p.Intern(term.NewQuant(term.Forall,
		[]term.SortedVar{{Name: "x", Sort: p.IntSort()}}, x))
	forallY := p.Intern(term.NewQuant(term.Forall,
		[]term.SortedVar{{Name: "y", Sort: p.IntSort()}}, y))

	assert.False(t, p.EqualModuloReordering(forallX, forallY))
}

func TestEqualModuloReorderingNonCommutativeOpStaysOrdered(t *testing.T) {
	p := pool.New()

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))

	xy := p.Intern(term.NewOp(term.OpSub, []term.Handle{x, y}))
	yx := p.Intern(term.NewOp(term.OpSub, []term.Handle{y, x}))

	assert.False(t, p.EqualModuloReordering(xy, yx))
}

func TestSortOfArithmetic(t *testing.T) {
	p := pool.New()

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))
	sum := p.Intern(term.NewOp(term.OpAdd, []term.Handle{x, y}))

	assert.Equal(t, p.IntSort(), p.SortOf(sum))
}

func TestSortOfComparisonIsBool(t *testing.T) {
	p := pool.New()

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))
	ge := p.Intern(term.NewOp(term.OpGe, []term.Handle{x, y}))

	assert.Equal(t, p.BoolSort(), p.SortOf(ge))
}

func TestFreeVarsUnderQuantifierExcludesBoundName(t *testing.T) {
	p := pool.New()

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))
	body := p.Intern(term.NewOp(term.OpAdd, []term.Handle{x, y}))
	forall := p.Intern(term.NewQuant(term.Forall,
		[]term.SortedVar{{Name: "x", Sort: p.IntSort()}}, body))

	fv := p.FreeVars(forall)

	_, hasX := fv["x"]
	_, hasY := fv["y"]
	assert.False(t, hasX)
	assert.True(t, hasY)
}

func TestFreeVarsOfLetIncludesBindingValueVars(t *testing.T) {
	p := pool.New()

	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))
	z := p.Intern(term.NewTerminal(term.Var("z", p.IntSort())))
	letTerm := p.Intern(term.NewLet(
		[]term.Binding{{Name: "x", Value: y}},
		z,
	))

	fv := p.FreeVars(letTerm)

	_, hasY := fv["y"]
	_, hasZ := fv["z"]
	assert.True(t, hasY)
	assert.True(t, hasZ)
}
