package pool

import "github.com/alethecheck/alethecheck/internal/term"

// FreeVars returns the set of (name, sort) pairs free in h, caching the
// result on h (spec.md §4.1). Used by capture analysis during
// substitution.
func (p *Pool) FreeVars(h term.Handle) VarSet {
	if vs, ok := p.freeVarsCache[h]; ok {
		return vs
	}
	vs := p.computeFreeVars(h)
	p.freeVarsCache[h] = vs
	return vs
}

func (p *Pool) computeFreeVars(h term.Handle) VarSet {
	t := p.terms[h]
	switch t.Tag {
	case term.TagTerminal:
		if t.Literal.Kind == term.LitVar {
			return VarSet{t.Literal.VarName: t.Literal.VarSort}
		}
		return VarSet{}
	case term.TagApp:
		result := p.unionFreeVars(t.Func)
		for _, a := range t.Args {
			result = mergeVarSets(result, p.FreeVars(a))
		}
		return result
	case term.TagOp:
		result := VarSet{}
		for _, a := range t.Args {
			result = mergeVarSets(result, p.FreeVars(a))
		}
		return result
	case term.TagSort:
		return VarSet{}
	case term.TagQuant, term.TagChoice:
		result := copyVarSet(p.FreeVars(t.Body))
		for _, b := range t.Bindings {
			delete(result, b.Name)
		}
		return result
	case term.TagLet:
		result := copyVarSet(p.FreeVars(t.Body))
		for _, b := range t.LetBindings {
			delete(result, b.Name)
		}
		for _, b := range t.LetBindings {
			result = mergeVarSets(result, p.FreeVars(b.Value))
		}
		return result
	}
	return VarSet{}
}

func (p *Pool) unionFreeVars(h term.Handle) VarSet {
	return copyVarSet(p.FreeVars(h))
}

func copyVarSet(vs VarSet) VarSet {
	out := make(VarSet, len(vs))
	for k, v := range vs {
		out[k] = v
	}
	return out
}

func mergeVarSets(a, b VarSet) VarSet {
	for k, v := range b {
		a[k] = v
	}
	return a
}
