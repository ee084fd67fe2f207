package sexpr

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/proof"
	"github.com/alethecheck/alethecheck/internal/term"
)

// Builder converts a generic S-expression forest into proof.Proof,
// interning every term it builds through a single pool. It tracks
// declared sorts and function symbols so repeated symbol occurrences
// resolve to the same Var literal.
type Builder struct {
	pool  *pool.Pool
	sorts map[string]term.Handle // declared sort name -> Sort-tagged handle
	funcs map[string]term.Handle // declared/assumed symbol name -> Var-literal handle

	// pendingAnchors mirrors the currently-open anchors: each entry
	// holds the assignment/variable args collected from that anchor,
	// to be attached to the Subproof command once its closing step is
	// seen.
	pendingAnchors []proof.Command

	// pendingCloseNames[i] is the index name that closes
	// pendingAnchors[i]'s subproof: an anchor's "(anchor :step <id> ...)"
	// names the later "(step <id> ...)" that concludes it, since a
	// subproof's body can hold any number of intermediate steps before
	// that conclusion.
	pendingCloseNames []string

	// indexStack[d] maps a command index name to its position within
	// the command slice at work-stack depth d, mirroring exactly the
	// (depth, position) addressing premises use (spec.md §4.4). A
	// subproof's own index (its closing step's name) is registered in
	// its *parent's* slice, so a premise reference from outside the
	// subproof resolves to the Subproof command directly.
	indexStack []map[string]int
}

func NewBuilder(p *pool.Pool) *Builder {
	return &Builder{
		pool:  p,
		sorts: map[string]term.Handle{"Bool": p.BoolSort(), "Int": p.IntSort(), "Real": p.RealSort(), "String": p.StringSort()},
		funcs: map[string]term.Handle{},
	}
}

// BuildProof converts the top-level forms of one proof file. The
// declaration forms "declare-fun", "declare-const" and "declare-sort"
// are consumed as declarations and do not themselves become commands;
// any form other than these and "assume"/"step"/"anchor" is an error.
func (b *Builder) BuildProof(forms []*Node) (*proof.Proof, error) {
	pf := &proof.Proof{}
	var subproofStack [][]proof.Command
	b.indexStack = []map[string]int{{}}

	for _, form := range forms {
		if form.Atom != nil {
			return nil, fmt.Errorf("unexpected bare atom %q at top level", *form.Atom)
		}
		head, err := symbolOf(form, 0)
		if err != nil {
			return nil, err
		}

		switch head {
		case "declare-fun", "declare-const":
			if err := b.declareFun(form); err != nil {
				return nil, err
			}
			continue
		case "declare-sort":
			if err := b.declareSort(form); err != nil {
				return nil, err
			}
			continue
		case "anchor":
			cmd, err := b.buildAnchor(form)
			if err != nil {
				return nil, err
			}
			subproofStack = append(subproofStack, []proof.Command{})
			b.indexStack = append(b.indexStack, map[string]int{})
			b.pendingAnchors = append(b.pendingAnchors, cmd)
			b.pendingCloseNames = append(b.pendingCloseNames, cmd.Index)
			continue
		}

		cmd, err := b.buildCommand(form)
		if err != nil {
			return nil, err
		}

		if len(subproofStack) > 0 {
			top := len(subproofStack) - 1
			b.indexStack[top+1][cmd.Index] = len(subproofStack[top])
			subproofStack[top] = append(subproofStack[top], cmd)

			closeName := b.pendingCloseNames[len(b.pendingCloseNames)-1]
			if cmd.Kind == proof.KindStep && cmd.Index == closeName {
				anchor := b.pendingAnchors[len(b.pendingAnchors)-1]
				b.pendingAnchors = b.pendingAnchors[:len(b.pendingAnchors)-1]
				b.pendingCloseNames = b.pendingCloseNames[:len(b.pendingCloseNames)-1]
				inner := subproofStack[top]
				subproofStack = subproofStack[:top]
				b.indexStack = b.indexStack[:top+1]

				sub := proof.Command{
					Kind:           proof.KindSubproof,
					Commands:       inner,
					AssignmentArgs: anchor.AssignmentArgs,
					VariableArgs:   anchor.VariableArgs,
				}
				closingIndex := inner[len(inner)-1].Index
				if len(subproofStack) > 0 {
					parent := len(subproofStack) - 1
					b.indexStack[parent][closingIndex] = len(subproofStack[parent])
					subproofStack[parent] = append(subproofStack[parent], sub)
				} else {
					b.indexStack[0][closingIndex] = len(pf.Commands)
					pf.Commands = append(pf.Commands, sub)
				}
			}
			continue
		}

		b.indexStack[0][cmd.Index] = len(pf.Commands)
		if cmd.Kind == proof.KindAssume {
			pf.Premises = append(pf.Premises, cmd.AssumeTerm)
		}
		pf.Commands = append(pf.Commands, cmd)
	}

	return pf, nil
}

// resolvePremise looks up an index name starting from the current
// (innermost) scope outward, matching how a nested step can still
// reference an outer premise by name.
func (b *Builder) resolvePremise(name string) (proof.PremiseRef, error) {
	for depth := len(b.indexStack) - 1; depth >= 0; depth-- {
		if pos, ok := b.indexStack[depth][name]; ok {
			return proof.PremiseRef{Depth: depth, Position: pos}, nil
		}
	}
	return proof.PremiseRef{}, fmt.Errorf("premise %q not found in any enclosing scope", name)
}

func (b *Builder) declareSort(form *Node) error {
	name, err := symbolOf(form, 1)
	if err != nil {
		return err
	}
	b.sorts[name] = b.pool.Intern(term.NewSort(term.AtomSort(name, nil)))
	return nil
}

func (b *Builder) declareFun(form *Node) error {
	name, err := symbolOf(form, 1)
	if err != nil {
		return err
	}
	// "(declare-const name sort)" has no argument-sort list.
	var argSorts []term.Handle
	retIdx := 2
	if mustSymbol(form.List[0]) == "declare-fun" {
		retIdx = 3
		if len(form.List) > 2 {
			if argSorts, err = b.resolveSortList(form.List[2]); err != nil {
				return err
			}
		}
	}
	if len(form.List) != retIdx+1 {
		return fmt.Errorf("%s %q: expected %d elements, got %d", mustSymbol(form.List[0]), name, retIdx+1, len(form.List))
	}
	retSort, err := b.resolveSortNode(form.List[retIdx])
	if err != nil {
		return err
	}
	sig := append(append([]term.Handle{}, argSorts...), retSort)
	sortHandle := b.pool.Intern(term.NewSort(term.FunctionSort(sig)))
	b.funcs[name] = b.pool.Intern(term.NewTerminal(term.Var(name, sortHandle)))
	return nil
}

func (b *Builder) resolveSortList(n *Node) ([]term.Handle, error) {
	out := make([]term.Handle, 0, len(n.List))
	for _, c := range n.List {
		h, err := b.resolveSortNode(c)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func (b *Builder) resolveSortNode(n *Node) (term.Handle, error) {
	if n.Atom == nil {
		return b.resolveIndexedSort(n)
	}
	name := *n.Atom
	if h, ok := b.sorts[name]; ok {
		return h, nil
	}
	h := b.pool.Intern(term.NewSort(term.AtomSort(name, nil)))
	b.sorts[name] = h
	return h, nil
}

// resolveIndexedSort handles "(_ name idx1 idx2 ...)" sort atoms
// (e.g. a bit-vector sort), the list-shaped form of an Identifier
// (spec.md §3 "Identifier is Simple(name) or Indexed(name, indices)").
// The identifier's rendered form becomes the sort's canonical name, so
// repeated occurrences of the same indexed sort still share a handle.
func (b *Builder) resolveIndexedSort(n *Node) (term.Handle, error) {
	if len(n.List) < 2 || mustSymbol(n.List[0]) != "_" {
		return term.Invalid, fmt.Errorf("expected a sort atom or an indexed sort (_ name idx...)")
	}
	name, err := symbolOf(n, 1)
	if err != nil {
		return term.Invalid, err
	}
	indices := make([]term.Index, 0, len(n.List)-2)
	for _, ixNode := range n.List[2:] {
		s, err := symbolOf(ixNode, -1)
		if err != nil {
			return term.Invalid, err
		}
		if isInteger(s) {
			v, convErr := strconv.ParseInt(s, 10, 64)
			if convErr != nil {
				return term.Invalid, fmt.Errorf("malformed index numeral %q", s)
			}
			indices = append(indices, term.Index{Kind: term.IndexNumeral, Numeral: v})
		} else {
			indices = append(indices, term.Index{Kind: term.IndexSymbol, Symbol: s})
		}
	}

	key := term.Indexed(name, indices).String()
	if h, ok := b.sorts[key]; ok {
		return h, nil
	}
	h := b.pool.Intern(term.NewSort(term.AtomSort(key, nil)))
	b.sorts[key] = h
	return h, nil
}

// symbolOf returns the atom text of n (idx == -1) or of n.List[idx].
func symbolOf(n *Node, idx int) (string, error) {
	target := n
	if idx >= 0 {
		if idx >= len(n.List) {
			return "", fmt.Errorf("expected at least %d elements, got %d", idx+1, len(n.List))
		}
		target = n.List[idx]
	}
	if target.Atom == nil {
		return "", fmt.Errorf("expected an atom, got a list")
	}
	return *target.Atom, nil
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i = 1
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isRational(s string) bool {
	parts := strings.SplitN(s, ".", 2)
	return len(parts) == 2 && isInteger(parts[0]) && isInteger("0"+parts[1])
}

// ratFromDecimal parses a "123.456" decimal literal into an exact
// big.Rat, matching the SMT-LIB convention of rationals written in
// decimal with at least one fractional digit (spec.md §6, printer
// rules).
func ratFromDecimal(s string) (*big.Rat, bool) {
	r, ok := new(big.Rat).SetString(s)
	return r, ok
}
