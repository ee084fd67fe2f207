// Package pool implements the term pool: the hash-consing store that
// gives every structurally equal term a single canonical handle, plus
// the two caches (sort-of, free-vars) that are keyed off that handle
// and never invalidated (spec.md §4.1).
//
// The pool is the only mutable resource in a check run (spec.md §5);
// it is exclusively owned by the Checker for the run's duration, and
// everything else — rules, the substitution engine, the printer —
// only ever holds a handle into it.
package pool

import "github.com/alethecheck/alethecheck/internal/term"

// Pool owns term storage. It is not safe for concurrent use; the
// checker holds an exclusive handle to it for the whole run
// (spec.md §5).
type Pool struct {
	terms []term.Term          // terms[0] is an unused placeholder; real handles start at 1
	index map[uint64][]term.Handle

	sortCache     map[term.Handle]term.Handle
	freeVarsCache map[term.Handle]VarSet

	boolSort, intSort, realSort, stringSort term.Handle
}

// VarSet maps a free variable's name to its declared sort handle.
type VarSet map[string]term.Handle

// New creates an empty pool and pre-interns the built-in sorts, since
// almost every term the checker builds needs one of them.
func New() *Pool {
	p := &Pool{
		terms:         make([]term.Term, 1, 256),
		index:         make(map[uint64][]term.Handle, 256),
		sortCache:     make(map[term.Handle]term.Handle),
		freeVarsCache: make(map[term.Handle]VarSet),
	}
	p.boolSort = p.Intern(term.NewSort(term.BoolSort()))
	p.intSort = p.Intern(term.NewSort(term.IntSort()))
	p.realSort = p.Intern(term.NewSort(term.RealSort()))
	p.stringSort = p.Intern(term.NewSort(term.StringSort()))
	return p
}

func (p *Pool) BoolSort() term.Handle   { return p.boolSort }
func (p *Pool) IntSort() term.Handle    { return p.intSort }
func (p *Pool) RealSort() term.Handle   { return p.realSort }
func (p *Pool) StringSort() term.Handle { return p.stringSort }

// Term dereferences a handle. It panics on an out-of-range handle:
// every handle in circulation was returned by Intern on this same
// pool, so such a handle is a programming error, not recoverable
// input. term.Invalid (0) does not panic; it yields the unused
// placeholder's zero Term.
func (p *Pool) Term(h term.Handle) term.Term {
	return p.terms[h]
}

// Intern returns the canonical handle for t, storing it if this is
// the first structurally-equal term seen. Expected O(1): a fingerprint
// hash buckets candidates, and only terms that collide on the
// fingerprint pay for the (cheap, since children are already handles)
// shallow equality check.
func (p *Pool) Intern(t term.Term) term.Handle {
	fp := fingerprint(t)
	for _, h := range p.index[fp] {
		if shallowEqual(p.terms[h], t) {
			return h
		}
	}
	h := term.Handle(len(p.terms))
	p.terms = append(p.terms, t)
	p.index[fp] = append(p.index[fp], h)
	return h
}

// shallowEqual compares two Term values field-by-field without
// recursing into children: because children are already handles
// interned by this same pool, handle equality already decides
// structural equality for them (the pool's canonicity invariant).
func shallowEqual(a, b term.Term) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case term.TagTerminal:
		return a.Literal.Equal(b.Literal)
	case term.TagApp:
		return a.Func == b.Func && handlesEqual(a.Args, b.Args)
	case term.TagOp:
		return a.Op == b.Op && handlesEqual(a.Args, b.Args)
	case term.TagSort:
		return a.SortValue.Equal(b.SortValue)
	case term.TagQuant:
		return a.Quantifier == b.Quantifier && a.Body == b.Body && sortedVarsEqual(a.Bindings, b.Bindings)
	case term.TagChoice:
		return a.Body == b.Body && sortedVarsEqual(a.Bindings, b.Bindings)
	case term.TagLet:
		return a.Body == b.Body && bindingsEqual(a.LetBindings, b.LetBindings)
	}
	return false
}

func handlesEqual(a, b []term.Handle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedVarsEqual(a, b []term.SortedVar) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func bindingsEqual(a, b []term.Binding) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
