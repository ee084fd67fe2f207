package pool

import "github.com/alethecheck/alethecheck/internal/term"

// DeepEqual is structural recursion with a short-circuit on handle
// identity (spec.md §4.2). Because every sub-handle reachable from a
// and b was produced by this same pool's Intern, the canonicity
// invariant means this always terminates in one shallow comparison —
// but it is written as genuine recursion so the predicate remains
// correct if ever asked to compare handles from different pools.
func (p *Pool) DeepEqual(a, b term.Handle) bool {
	if a == b {
		return true
	}
	ta, tb := p.terms[a], p.terms[b]
	if ta.Tag != tb.Tag {
		return false
	}
	switch ta.Tag {
	case term.TagTerminal:
		return ta.Literal.Equal(tb.Literal)
	case term.TagApp:
		return p.DeepEqual(ta.Func, tb.Func) && p.deepEqualSeq(ta.Args, tb.Args)
	case term.TagOp:
		return ta.Op == tb.Op && p.deepEqualSeq(ta.Args, tb.Args)
	case term.TagSort:
		return p.deepEqualSort(ta.SortValue, tb.SortValue)
	case term.TagQuant:
		return ta.Quantifier == tb.Quantifier &&
			p.deepEqualBindings(ta.Bindings, tb.Bindings) &&
			p.DeepEqual(ta.Body, tb.Body)
	case term.TagChoice:
		return p.deepEqualBindings(ta.Bindings, tb.Bindings) && p.DeepEqual(ta.Body, tb.Body)
	case term.TagLet:
		return p.deepEqualLetBindings(ta.LetBindings, tb.LetBindings) && p.DeepEqual(ta.Body, tb.Body)
	}
	return false
}

func (p *Pool) deepEqualSeq(a, b []term.Handle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !p.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (p *Pool) deepEqualSort(a, b term.Sort) bool {
	if a.Kind != b.Kind || a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !p.DeepEqual(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

func (p *Pool) deepEqualBindings(a, b []term.SortedVar) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !p.DeepEqual(a[i].Sort, b[i].Sort) {
			return false
		}
	}
	return true
}

func (p *Pool) deepEqualLetBindings(a, b []term.Binding) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !p.DeepEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// EqualModuloReordering is structural equality except that the
// children of a commutative operator (=, and, or, distinct, +, *) are
// compared as multisets rather than in order (spec.md §4.2). This is
// not alpha-equivalence: quantifier/let/choice binders are still
// compared positionally.
func (p *Pool) EqualModuloReordering(a, b term.Handle) bool {
	if a == b {
		return true
	}
	ta, tb := p.terms[a], p.terms[b]
	if ta.Tag != tb.Tag {
		return false
	}
	switch ta.Tag {
	case term.TagTerminal:
		return ta.Literal.Equal(tb.Literal)
	case term.TagApp:
		if ta.Func != tb.Func {
			return false
		}
		return p.eqModuloSeq(ta.Args, tb.Args)
	case term.TagOp:
		if ta.Op != tb.Op {
			return false
		}
		if ta.Op.Commutative() {
			return p.multisetEqual(ta.Args, tb.Args)
		}
		return p.eqModuloSeq(ta.Args, tb.Args)
	case term.TagSort:
		return p.deepEqualSort(ta.SortValue, tb.SortValue)
	case term.TagQuant:
		return ta.Quantifier == tb.Quantifier &&
			p.deepEqualBindings(ta.Bindings, tb.Bindings) &&
			p.EqualModuloReordering(ta.Body, tb.Body)
	case term.TagChoice:
		return p.deepEqualBindings(ta.Bindings, tb.Bindings) && p.EqualModuloReordering(ta.Body, tb.Body)
	case term.TagLet:
		return p.deepEqualLetBindings(ta.LetBindings, tb.LetBindings) && p.EqualModuloReordering(ta.Body, tb.Body)
	}
	return false
}

func (p *Pool) eqModuloSeq(a, b []term.Handle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !p.EqualModuloReordering(a[i], b[i]) {
			return false
		}
	}
	return true
}

// multisetEqual matches each element of a against some not-yet-used
// element of b under EqualModuloReordering. Proof clauses are small
// (single digits to low tens of literals), so the O(n^2) greedy
// matching is not a bottleneck.
func (p *Pool) multisetEqual(a, b []term.Handle) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if p.EqualModuloReordering(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
