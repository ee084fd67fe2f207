package sexpr

import (
	"fmt"
	"math/big"

	"github.com/alethecheck/alethecheck/internal/term"
)

// buildTerm converts one S-expression form into an interned term
// handle. Literals (integers, decimals, strings) are recognized by
// shape; "true"/"false" and declared symbols resolve against b.funcs;
// everything else is either a known operator application, a binder
// form ("forall"/"exists"/"let"/"choice"), or an uninterpreted
// function application.
func (b *Builder) buildTerm(n *Node) (term.Handle, error) {
	if n.Atom != nil {
		return b.buildAtom(*n.Atom)
	}
	if len(n.List) == 0 {
		return term.Invalid, fmt.Errorf("empty term form")
	}

	head := n.List[0]
	if head.Atom == nil {
		return term.Invalid, fmt.Errorf("expected an operator/function symbol, got a list")
	}

	switch *head.Atom {
	case "forall", "exists":
		return b.buildQuant(n)
	case "choice":
		return b.buildChoice(n)
	case "let":
		return b.buildLet(n)
	case "-":
		// Overloaded: binary subtraction or unary negation, per
		// SMT-LIB's "-" (spec.md treats both as OpSub/OpNeg shapes).
		if len(n.List) == 2 {
			arg, err := b.buildTerm(n.List[1])
			if err != nil {
				return term.Invalid, err
			}
			return b.pool.Intern(term.NewOp(term.OpNeg, []term.Handle{arg})), nil
		}
		return b.buildOpApp(term.OpSub, n.List[1:])
	}

	if op, ok := term.OperatorByName(*head.Atom); ok {
		return b.buildOpApp(op, n.List[1:])
	}

	return b.buildApp(n)
}

func (b *Builder) buildAtom(s string) (term.Handle, error) {
	switch s {
	case "true":
		return b.boolConst("true"), nil
	case "false":
		return b.boolConst("false"), nil
	}
	if isInteger(s) {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return term.Invalid, fmt.Errorf("malformed integer literal %q", s)
		}
		return b.pool.Intern(term.NewTerminal(term.Integer(v))), nil
	}
	if isRational(s) {
		r, ok := ratFromDecimal(s)
		if !ok {
			return term.Invalid, fmt.Errorf("malformed rational literal %q", s)
		}
		return b.pool.Intern(term.NewTerminal(term.Rational(r))), nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return b.pool.Intern(term.NewTerminal(term.String(s[1 : len(s)-1]))), nil
	}
	if h, ok := b.funcs[s]; ok {
		return h, nil
	}
	return term.Invalid, fmt.Errorf("undeclared symbol %q", s)
}

// boolConst interns "true"/"false" as a nullary Var literal of Bool
// sort, registering it in b.funcs so later occurrences in the same
// proof resolve to the same handle without re-interning the lookup.
func (b *Builder) boolConst(name string) term.Handle {
	if h, ok := b.funcs[name]; ok {
		return h
	}
	h := b.pool.Intern(term.NewTerminal(term.Var(name, b.pool.BoolSort())))
	b.funcs[name] = h
	return h
}

func (b *Builder) buildOpApp(op term.Operator, argNodes []*Node) (term.Handle, error) {
	args := make([]term.Handle, 0, len(argNodes))
	for _, a := range argNodes {
		h, err := b.buildTerm(a)
		if err != nil {
			return term.Invalid, err
		}
		args = append(args, h)
	}
	return b.pool.Intern(term.NewOp(op, args)), nil
}

func (b *Builder) buildApp(n *Node) (term.Handle, error) {
	name, err := symbolOf(n, 0)
	if err != nil {
		return term.Invalid, err
	}
	fn, ok := b.funcs[name]
	if !ok {
		return term.Invalid, fmt.Errorf("undeclared function %q", name)
	}
	args := make([]term.Handle, 0, len(n.List)-1)
	for _, a := range n.List[1:] {
		h, err := b.buildTerm(a)
		if err != nil {
			return term.Invalid, err
		}
		args = append(args, h)
	}
	return b.pool.Intern(term.NewApp(fn, args)), nil
}

// buildBindingList parses "((v1 s1) (v2 s2) ...)" into SortedVars,
// registering each as a fresh Var literal in b.funcs for the duration
// of the enclosing binder's body, and returns the previous bindings
// so the caller can restore shadowed names afterward.
func (b *Builder) buildBindingList(n *Node) ([]term.SortedVar, map[string]term.Handle, error) {
	vars := make([]term.SortedVar, 0, len(n.List))
	shadowed := map[string]term.Handle{}
	for _, entry := range n.List {
		if len(entry.List) != 2 {
			return nil, nil, fmt.Errorf("expected a (name sort) binding pair")
		}
		name, err := symbolOf(entry, 0)
		if err != nil {
			return nil, nil, err
		}
		sort, err := b.resolveSortNode(entry.List[1])
		if err != nil {
			return nil, nil, err
		}
		if prev, ok := b.funcs[name]; ok {
			shadowed[name] = prev
		}
		h := b.pool.Intern(term.NewTerminal(term.Var(name, sort)))
		b.funcs[name] = h
		vars = append(vars, term.SortedVar{Name: name, Sort: sort})
	}
	return vars, shadowed, nil
}

func (b *Builder) restoreBindings(vars []term.SortedVar, shadowed map[string]term.Handle) {
	for _, v := range vars {
		if prev, ok := shadowed[v.Name]; ok {
			b.funcs[v.Name] = prev
		} else {
			delete(b.funcs, v.Name)
		}
	}
}

func (b *Builder) buildQuant(n *Node) (term.Handle, error) {
	if len(n.List) != 3 {
		return term.Invalid, fmt.Errorf("%s needs a binding list and a body", *n.List[0].Atom)
	}
	q := term.Forall
	if *n.List[0].Atom == "exists" {
		q = term.Exists
	}
	vars, shadowed, err := b.buildBindingList(n.List[1])
	if err != nil {
		return term.Invalid, err
	}
	defer b.restoreBindings(vars, shadowed)

	body, err := b.buildTerm(n.List[2])
	if err != nil {
		return term.Invalid, err
	}
	return b.pool.Intern(term.NewQuant(q, vars, body)), nil
}

func (b *Builder) buildChoice(n *Node) (term.Handle, error) {
	if len(n.List) != 3 {
		return term.Invalid, fmt.Errorf("choice needs a single (v s) binding and a body")
	}
	bindingList := n.List[1]
	if len(bindingList.List) != 1 {
		return term.Invalid, fmt.Errorf("choice binds exactly one variable")
	}
	vars, shadowed, err := b.buildBindingList(bindingList)
	if err != nil {
		return term.Invalid, err
	}
	defer b.restoreBindings(vars, shadowed)

	body, err := b.buildTerm(n.List[2])
	if err != nil {
		return term.Invalid, err
	}
	return b.pool.Intern(term.NewChoice(vars[0], body)), nil
}

func (b *Builder) buildLet(n *Node) (term.Handle, error) {
	if len(n.List) != 3 {
		return term.Invalid, fmt.Errorf("let needs a binding list and a body")
	}
	bindingsNode := n.List[1]
	bindings := make([]term.Binding, 0, len(bindingsNode.List))
	names := make([]string, 0, len(bindingsNode.List))
	shadowed := map[string]term.Handle{}

	// Values are built before any binding is registered: let is not
	// recursive, so a binding's value resolves in the outer scope.
	for _, entry := range bindingsNode.List {
		if len(entry.List) != 2 {
			return term.Invalid, fmt.Errorf("expected a (name value) let binding pair")
		}
		name, err := symbolOf(entry, 0)
		if err != nil {
			return term.Invalid, err
		}
		value, err := b.buildTerm(entry.List[1])
		if err != nil {
			return term.Invalid, err
		}
		bindings = append(bindings, term.Binding{Name: name, Value: value})
		names = append(names, name)
	}
	for i, bn := range bindings {
		if prev, ok := b.funcs[names[i]]; ok {
			shadowed[names[i]] = prev
		}
		sort := b.pool.SortOf(bn.Value)
		b.funcs[names[i]] = b.pool.Intern(term.NewTerminal(term.Var(names[i], sort)))
	}
	defer func() {
		for _, name := range names {
			if prev, ok := shadowed[name]; ok {
				b.funcs[name] = prev
			} else {
				delete(b.funcs, name)
			}
		}
	}()

	body, err := b.buildTerm(n.List[2])
	if err != nil {
		return term.Invalid, err
	}
	return b.pool.Intern(term.NewLet(bindings, body)), nil
}
