package sexpr

import (
	"fmt"

	"github.com/alethecheck/alethecheck/internal/proof"
	"github.com/alethecheck/alethecheck/internal/term"
)

// buildAnchor parses "(anchor :step <idx> :args ((:= v val) | (v s))*)"
// into a Command carrying Index (the name of the later step that
// closes this subproof) and the AssignmentArgs/VariableArgs; the
// caller attaches it to the eventual Subproof once the step named
// <idx> is reached.
func (b *Builder) buildAnchor(form *Node) (proof.Command, error) {
	cmd := proof.Command{Index: stringKeywordValue(form, ":step")}
	args := findKeywordArg(form, ":args")
	if args == nil {
		return cmd, nil
	}
	for _, entry := range args.List {
		if entry.Atom != nil {
			continue
		}
		switch {
		case len(entry.List) == 3 && mustSymbol(entry.List[0]) == ":=":
			// "(:= name value)": an assignment argument.
			name, err := symbolOf(entry, 1)
			if err != nil {
				return cmd, err
			}
			value, err := b.buildTerm(entry.List[2])
			if err != nil {
				return cmd, err
			}
			cmd.AssignmentArgs = append(cmd.AssignmentArgs, proof.Assignment{Name: name, Value: value})

		case len(entry.List) == 2:
			// "(name sort)": a variable argument.
			name, err := symbolOf(entry, 0)
			if err != nil {
				return cmd, err
			}
			sort, err := b.resolveSortNode(entry.List[1])
			if err != nil {
				return cmd, err
			}
			cmd.VariableArgs = append(cmd.VariableArgs, term.SortedVar{Name: name, Sort: sort})
			b.funcs[name] = b.pool.Intern(term.NewTerminal(term.Var(name, sort)))

		default:
			return cmd, fmt.Errorf("unrecognized anchor arg shape")
		}
	}
	return cmd, nil
}

func mustSymbol(n *Node) string {
	if n.Atom == nil {
		return ""
	}
	return *n.Atom
}

// buildCommand parses "(assume <idx> <term>)" or
// "(step <idx> (cl <term>*) :rule <name> [:premises (...)] [:args (...)])".
func (b *Builder) buildCommand(form *Node) (proof.Command, error) {
	head, err := symbolOf(form, 0)
	if err != nil {
		return proof.Command{}, err
	}

	switch head {
	case "assume":
		idx, err := symbolOf(form, 1)
		if err != nil {
			return proof.Command{}, err
		}
		if len(form.List) < 3 {
			return proof.Command{}, fmt.Errorf("assume %q is missing its term", idx)
		}
		t, err := b.buildTerm(form.List[2])
		if err != nil {
			return proof.Command{}, err
		}
		return proof.Command{Kind: proof.KindAssume, Index: idx, AssumeTerm: t}, nil

	case "step":
		return b.buildStep(form)

	default:
		return proof.Command{}, fmt.Errorf("unrecognized command form %q", head)
	}
}

func (b *Builder) buildStep(form *Node) (proof.Command, error) {
	idx, err := symbolOf(form, 1)
	if err != nil {
		return proof.Command{}, err
	}
	if len(form.List) < 3 {
		return proof.Command{}, fmt.Errorf("step %q is missing its clause", idx)
	}
	clauseNode := form.List[2]
	clauseHead, err := symbolOf(clauseNode, 0)
	if err != nil || clauseHead != "cl" {
		return proof.Command{}, fmt.Errorf("step %q: expected (cl ...) clause", idx)
	}
	clause := make([]term.Handle, 0, len(clauseNode.List)-1)
	for _, lit := range clauseNode.List[1:] {
		h, err := b.buildTerm(lit)
		if err != nil {
			return proof.Command{}, err
		}
		clause = append(clause, h)
	}

	cmd := proof.Command{Kind: proof.KindStep, Index: idx, Clause: clause}
	cmd.Rule = stringKeywordValue(form, ":rule")

	if premisesNode := findKeywordArg(form, ":premises"); premisesNode != nil {
		for _, p := range premisesNode.List {
			name, err := symbolOf(p, -1)
			if err != nil {
				return cmd, err
			}
			ref, err := b.resolvePremise(name)
			if err != nil {
				return cmd, err
			}
			cmd.Premises = append(cmd.Premises, ref)
		}
	}

	if argsNode := findKeywordArg(form, ":args"); argsNode != nil {
		for _, a := range argsNode.List {
			if len(a.List) == 3 && mustSymbol(a.List[0]) == ":=" {
				name, err := symbolOf(a, 1)
				if err != nil {
					return cmd, err
				}
				value, err := b.buildTerm(a.List[2])
				if err != nil {
					return cmd, err
				}
				cmd.Args = append(cmd.Args, proof.AssignArg(name, value))
				continue
			}
			value, err := b.buildTerm(a)
			if err != nil {
				return cmd, err
			}
			cmd.Args = append(cmd.Args, proof.TermArg(value))
		}
	}

	return cmd, nil
}

// findKeywordArg finds "(:keyword <value...>)" among form's trailing
// elements and returns a synthetic Node wrapping its payload as a
// List, so callers can range over it uniformly whether the payload
// was itself a list or a single atom.
func findKeywordArg(form *Node, keyword string) *Node {
	for i := 1; i < len(form.List)-1; i++ {
		if mustSymbol(form.List[i]) == keyword {
			payload := form.List[i+1]
			if payload.Atom != nil {
				return &Node{List: []*Node{payload}}
			}
			return payload
		}
	}
	return nil
}

func stringKeywordValue(form *Node, keyword string) string {
	for i := 1; i < len(form.List)-1; i++ {
		if mustSymbol(form.List[i]) == keyword {
			return mustSymbol(form.List[i+1])
		}
	}
	return ""
}
