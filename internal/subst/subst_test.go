package subst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/subst"
	"github.com/alethecheck/alethecheck/internal/term"
)

func TestApplySimpleReplacement(t *testing.T) {
	p := pool.New()
	e := subst.NewEngine(p)

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))
	body := p.Intern(term.NewOp(term.OpAdd, []term.Handle{x, x}))

	result := e.Apply(body, subst.Map{x: y})

	expected := p.Intern(term.NewOp(term.OpAdd, []term.Handle{y, y}))
	assert.Equal(t, expected, result)
}

func TestApplyAvoidsCaptureUnderQuantifier(t *testing.T) {
	p := pool.New()
	e := subst.NewEngine(p)

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))

	// forall y . x  with  [x := y]  must not let the substituted y be
	// captured by the binder: the bound y has to be renamed.
	body := p.Intern(term.NewQuant(term.Forall,
		[]term.SortedVar{{Name: "y", Sort: p.IntSort()}}, x))

	result := e.Apply(body, subst.Map{x: y})

	resultTerm := p.Term(result)
	assert.Equal(t, term.TagQuant, resultTerm.Tag)
	assert.NotEqual(t, "y", resultTerm.Bindings[0].Name)

	innerVar := p.Term(resultTerm.Body)
	assert.Equal(t, "y", innerVar.Literal.VarName)
}

func TestApplyDoesNotTouchBoundOccurrence(t *testing.T) {
	p := pool.New()
	e := subst.NewEngine(p)

	x := p.Intern(term.NewTerminal(term.Var("x", p.IntSort())))
	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))

	// forall x . x  with  [x := y]  leaves the bound x untouched.
	body := p.Intern(term.NewQuant(term.Forall,
		[]term.SortedVar{{Name: "x", Sort: p.IntSort()}}, x))

	result := e.Apply(body, subst.Map{x: y})
	assert.Equal(t, body, result)
}

func TestBuildContextFixedPoint(t *testing.T) {
	p := pool.New()
	e := subst.NewEngine(p)

	fSort := p.Intern(term.NewSort(term.FunctionSort([]term.Handle{p.IntSort(), p.IntSort()})))
	f := p.Intern(term.NewTerminal(term.Var("f", fSort)))

	y := p.Intern(term.NewTerminal(term.Var("y", p.IntSort())))
	z := p.Intern(term.NewTerminal(term.Var("z", p.IntSort())))
	fy := p.Intern(term.NewApp(f, []term.Handle{y}))

	// assignment_args = ((:= y z) (:= x (f y)))
	ctx := subst.BuildContext(p, e, []subst.AssignmentArg{
		{Var: "y", Value: z},
		{Var: "x", Value: fy},
	}, nil, nil)

	xHandle := p.Intern(term.NewTerminal(term.Var("x", p.SortOf(fy))))
	substituted := ctx.SubstitutionsUntilFixedPoint[xHandle]

	fz := p.Intern(term.NewApp(f, []term.Handle{z}))
	assert.Equal(t, fz, substituted)
}
