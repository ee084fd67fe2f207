package subst

import (
	"fmt"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/term"
)

// Engine applies substitution maps to terms through a pool, memoising
// results keyed by (term handle, map identity) as spec.md §4.3
// requires. A Map's identity for memoisation purposes is the Go map
// value's own identity, which is stable because a Context builds each
// of its three maps exactly once and never mutates them afterward.
type Engine struct {
	p        *pool.Pool
	memo     map[memoKey]term.Handle
	freshCtr int
}

type memoKey struct {
	h term.Handle
	m mapIdent
}

func NewEngine(p *pool.Pool) *Engine {
	return &Engine{p: p, memo: make(map[memoKey]term.Handle)}
}

// Apply returns h with every free occurrence of a domain handle of m
// replaced by its image, avoiding variable capture under Quant/Choice/
// Let binders (spec.md §4.3). Total on well-formed inputs: there is no
// error return.
func (e *Engine) Apply(h term.Handle, m Map) term.Handle {
	if len(m) == 0 {
		return h
	}
	key := memoKey{h: h, m: identify(m)}
	if v, ok := e.memo[key]; ok {
		return v
	}
	result := e.apply(h, m)
	e.memo[key] = result
	return result
}

func (e *Engine) apply(h term.Handle, m Map) term.Handle {
	if target, ok := m[h]; ok {
		return target
	}
	t := e.p.Term(h)
	switch t.Tag {
	case term.TagTerminal, term.TagSort:
		return h
	case term.TagApp:
		return e.p.Intern(term.NewApp(e.Apply(t.Func, m), e.applySeq(t.Args, m)))
	case term.TagOp:
		return e.p.Intern(term.NewOp(t.Op, e.applySeq(t.Args, m)))
	case term.TagQuant:
		bindings, body := e.applyUnderBinder(t.Bindings, t.Body, m)
		return e.p.Intern(term.NewQuant(t.Quantifier, bindings, body))
	case term.TagChoice:
		bindings, body := e.applyUnderBinder(t.Bindings, t.Body, m)
		return e.p.Intern(term.NewChoice(bindings[0], body))
	case term.TagLet:
		return e.applyLet(t, m)
	}
	return h
}

func (e *Engine) applySeq(hs []term.Handle, m Map) []term.Handle {
	out := make([]term.Handle, len(hs))
	for i, h := range hs {
		out[i] = e.Apply(h, m)
	}
	return out
}

// applyUnderBinder substitutes m through body under the given binder,
// removing each bound variable from the effective map and, if an
// image term in the map would capture a bound variable's name,
// alpha-renaming that bound variable to a fresh name first.
func (e *Engine) applyUnderBinder(bindings []term.SortedVar, body term.Handle, m Map) ([]term.SortedVar, term.Handle) {
	boundHandle := make(map[term.Handle]bool, len(bindings))
	for _, b := range bindings {
		boundHandle[e.p.Intern(term.NewTerminal(term.Var(b.Name, b.Sort)))] = true
	}

	restricted := make(Map, len(m))
	capturing := make(map[string]bool)
	for k, v := range m {
		if boundHandle[k] {
			continue
		}
		restricted[k] = v
		fv := e.p.FreeVars(v)
		for _, b := range bindings {
			if _, ok := fv[b.Name]; ok {
				capturing[b.Name] = true
			}
		}
	}

	newBindings := make([]term.SortedVar, len(bindings))
	copy(newBindings, bindings)

	rename := Map{}
	for i, b := range bindings {
		if !capturing[b.Name] {
			continue
		}
		fresh := e.freshName(b.Name)
		old := e.p.Intern(term.NewTerminal(term.Var(b.Name, b.Sort)))
		newBindings[i] = term.SortedVar{Name: fresh, Sort: b.Sort}
		rename[old] = e.p.Intern(term.NewTerminal(term.Var(fresh, b.Sort)))
	}

	newBody := body
	if len(rename) > 0 {
		newBody = e.Apply(newBody, rename)
	}
	newBody = e.Apply(newBody, restricted)
	return newBindings, newBody
}

// applyLet substitutes through a Let term. Bindings are parallel: each
// binding's value is substituted in the outer scope, then the bound
// names are treated as a binder over the body exactly like Quant/
// Choice, including alpha-renaming on capture.
func (e *Engine) applyLet(t term.Term, m Map) term.Handle {
	sortedVars := make([]term.SortedVar, len(t.LetBindings))
	newValues := make([]term.Handle, len(t.LetBindings))
	for i, b := range t.LetBindings {
		newValues[i] = e.Apply(b.Value, m)
		sortedVars[i] = term.SortedVar{Name: b.Name, Sort: e.p.SortOf(b.Value)}
	}

	newBound, newBody := e.applyUnderBinder(sortedVars, t.Body, m)

	finalBindings := make([]term.Binding, len(t.LetBindings))
	for i := range t.LetBindings {
		finalBindings[i] = term.Binding{Name: newBound[i].Name, Value: newValues[i]}
	}
	return e.p.Intern(term.NewLet(finalBindings, newBody))
}

func (e *Engine) freshName(base string) string {
	e.freshCtr++
	return fmt.Sprintf("%s~%d", base, e.freshCtr)
}

// mapIdent is a map's cache identity: since a Map is never mutated
// after a Context builds it, its allocation's pointer value is a
// stable identity for memoisation purposes.
type mapIdent struct {
	ptr uintptr
}

func identify(m Map) mapIdent {
	return mapIdent{ptr: mapPointer(m)}
}
