package pool

import "github.com/alethecheck/alethecheck/internal/term"

// SortOf returns the sort handle of h, computing it on first request
// and caching the result on h thereafter (spec.md §4.1: "cached on
// first request per handle"). Argument sorts are assumed consistent
// with function/operator signatures — that is checked by whatever
// produced the term (the parser), not re-verified here.
func (p *Pool) SortOf(h term.Handle) term.Handle {
	if s, ok := p.sortCache[h]; ok {
		return s
	}
	s := p.computeSortOf(h)
	p.sortCache[h] = s
	return s
}

func (p *Pool) computeSortOf(h term.Handle) term.Handle {
	t := p.terms[h]
	switch t.Tag {
	case term.TagTerminal:
		switch t.Literal.Kind {
		case term.LitInteger:
			return p.IntSort()
		case term.LitRational:
			return p.RealSort()
		case term.LitString:
			return p.StringSort()
		case term.LitVar:
			return t.Literal.VarSort
		}
	case term.TagApp:
		fnSort := p.terms[p.SortOf(t.Func)]
		if fnSort.Tag == term.TagSort && fnSort.SortValue.Kind == term.SortFunction && len(fnSort.SortValue.Args) > 0 {
			return fnSort.SortValue.Args[len(fnSort.SortValue.Args)-1]
		}
		return p.boolSort
	case term.TagOp:
		return p.opSort(t)
	case term.TagSort:
		return h
	case term.TagQuant:
		return p.boolSort
	case term.TagChoice:
		return t.Bindings[0].Sort
	case term.TagLet:
		return p.SortOf(t.Body)
	}
	return p.boolSort
}

func (p *Pool) opSort(t term.Term) term.Handle {
	switch t.Op {
	case term.OpAdd, term.OpSub, term.OpMul, term.OpDiv, term.OpNeg:
		if len(t.Args) == 0 {
			return p.intSort
		}
		return p.SortOf(t.Args[0])
	case term.OpIte:
		if len(t.Args) == 3 {
			return p.SortOf(t.Args[1])
		}
		return p.boolSort
	default:
		// Ge, Gt, Le, Lt, Eq, And, Or, Not, Implies, Distinct
		return p.boolSort
	}
}
