// Package printer reproduces Alethe proof source text from a checked
// proof.Proof (spec.md §6, "Printer (collaborator)"): S-expression
// syntax for steps, proof args, and terms, following the original
// checker's ast/printer.rs write_step/write_proof_arg/Display chain.
//
// Proof traversal walks the command tree with the same explicit work
// stack the checker uses (internal/checker), never recursing natively
// over subproof depth. Term rendering recurses over term structure,
// which is bounded by term depth rather than proof depth and is safe
// to express the ordinary way, matching the original's recursive
// fmt::Display impls.
package printer

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/proof"
	"github.com/alethecheck/alethecheck/internal/term"
)

// Printer writes proof source text to an underlying writer, resolving
// terms through a pool.
type Printer struct {
	pool *pool.Pool
	w    io.Writer
}

func New(p *pool.Pool, w io.Writer) *Printer {
	return &Printer{pool: p, w: w}
}

type frame struct {
	cursor   int
	commands []proof.Command
}

// WriteProof prints every step of pf in source order, one per line.
// Assume and anchor (subproof-open) commands are not themselves
// printed, matching the original's "TODO: print assume/anchor
// commands" — only steps carry rendered content worth reproducing.
func (pr *Printer) WriteProof(pf *proof.Proof) error {
	stack := []frame{{cursor: 0, commands: pf.Commands}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.cursor == len(top.commands) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				// Step past the Subproof command whose body just ended.
				stack[len(stack)-1].cursor++
			}
			continue
		}

		cmd := top.commands[top.cursor]
		switch cmd.Kind {
		case proof.KindStep:
			if err := pr.writeStep(cmd, stack); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(pr.w); err != nil {
				return err
			}
		case proof.KindSubproof:
			stack = append(stack, frame{cursor: 0, commands: cmd.Commands})
			continue
		case proof.KindAssume:
			// no output, per the original
		}

		stack[len(stack)-1].cursor++
	}
	return nil
}

// premiseIndex resolves a PremiseRef to the printable index name of
// the command it addresses, mirroring get_premise_index: a Subproof
// premise prints under the name of its closing step.
func premiseIndex(ref proof.PremiseRef, stack []frame) string {
	cmd := stack[ref.Depth].commands[ref.Position]
	if cmd.Kind == proof.KindSubproof {
		cmd = cmd.LastStep()
	}
	return cmd.Index
}

func (pr *Printer) writeStep(step proof.Command, stack []frame) error {
	var b strings.Builder
	fmt.Fprintf(&b, "(step %s (cl", step.Index)
	for _, t := range step.Clause {
		b.WriteByte(' ')
		b.WriteString(pr.term(t))
	}
	b.WriteByte(')')

	fmt.Fprintf(&b, " :rule %s", step.Rule)

	if len(step.Premises) > 0 {
		b.WriteString(" :premises (")
		for i, ref := range step.Premises {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(premiseIndex(ref, stack))
		}
		b.WriteByte(')')
	}

	if len(step.Args) > 0 {
		b.WriteString(" :args (")
		for i, a := range step.Args {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(pr.proofArg(a))
		}
		b.WriteByte(')')
	}

	b.WriteByte(')')
	_, err := io.WriteString(pr.w, b.String())
	return err
}

func (pr *Printer) proofArg(a proof.Arg) string {
	if a.Kind == proof.ArgAssign {
		return fmt.Sprintf("(:= %s %s)", a.Assign.Name, pr.term(a.Assign.Value))
	}
	return pr.term(a.Term)
}

// term renders h in SMT-LIB S-expression form, grounded on
// ast/printer.rs's Display impl for Term/Terminal/Sort/Identifier.
func (pr *Printer) term(h term.Handle) string {
	t := pr.pool.Term(h)
	switch t.Tag {
	case term.TagTerminal:
		return pr.literal(t.Literal)
	case term.TagApp:
		return writeSExpr(pr.term(t.Func), pr.termSeq(t.Args))
	case term.TagOp:
		return writeSExpr(t.Op.String(), pr.termSeq(t.Args))
	case term.TagSort:
		return pr.sort(t.SortValue)
	case term.TagQuant:
		return fmt.Sprintf("(%s %s %s)", t.Quantifier, writeBindings(pr, t.Bindings), pr.term(t.Body))
	case term.TagChoice:
		v := t.Bindings[0]
		return fmt.Sprintf("(choice ((%s %s)) %s)", v.Name, pr.term(v.Sort), pr.term(t.Body))
	case term.TagLet:
		return fmt.Sprintf("(let %s %s)", writeLetBindings(pr, t.LetBindings), pr.term(t.Body))
	}
	return "?term"
}

func (pr *Printer) termSeq(hs []term.Handle) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = pr.term(h)
	}
	return out
}

func writeSExpr(head string, tail []string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(head)
	for _, e := range tail {
		b.WriteByte(' ')
		b.WriteString(e)
	}
	b.WriteByte(')')
	return b.String()
}

func writeBindings(pr *Printer, vars []term.SortedVar) string {
	if len(vars) == 0 {
		return "()"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range vars {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%s %s)", v.Name, pr.term(v.Sort))
	}
	b.WriteByte(')')
	return b.String()
}

func writeLetBindings(pr *Printer, bindings []term.Binding) string {
	if len(bindings) == 0 {
		return "()"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, bn := range bindings {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%s %s)", bn.Name, pr.term(bn.Value))
	}
	b.WriteByte(')')
	return b.String()
}

func (pr *Printer) literal(lit term.Literal) string {
	switch lit.Kind {
	case term.LitInteger:
		return lit.Int.String()
	case term.LitRational:
		return formatRational(lit.Rat)
	case term.LitString:
		return fmt.Sprintf("%q", lit.Str)
	case term.LitVar:
		return lit.VarName
	}
	return "?literal"
}

func (pr *Printer) sort(s term.Sort) string {
	switch s.Kind {
	case term.SortBool:
		return "Bool"
	case term.SortInt:
		return "Int"
	case term.SortReal:
		return "Real"
	case term.SortString:
		return "String"
	case term.SortArray:
		return writeSExpr("Array", []string{pr.term(s.Args[0]), pr.term(s.Args[1])})
	case term.SortFunction:
		return writeSExpr("Func", pr.termSeq(s.Args))
	case term.SortAtom:
		if len(s.Args) == 0 {
			return s.Name
		}
		return writeSExpr(s.Name, pr.termSeq(s.Args))
	}
	return "?sort"
}

// formatRational renders r as an exact decimal with at least one
// fractional digit (spec.md §6). Every Rational literal this checker
// ever builds comes from parsing a decimal source literal, so the
// denominator always divides some power of ten; that lets this
// reconstruct the exact decimal instead of the original's lossy
// float64 round-trip.
func formatRational(r *big.Rat) string {
	num := new(big.Int).Set(r.Num())
	den := new(big.Int).Set(r.Denom())
	neg := num.Sign() < 0
	if neg {
		num.Neg(num)
	}

	two, five := big.NewInt(2), big.NewInt(5)
	shiftNum, shiftDen := new(big.Int).Set(num), new(big.Int).Set(den)
	digits := 0
	for shiftDen.Cmp(big.NewInt(1)) != 0 {
		switch {
		case new(big.Int).Mod(shiftDen, two).Sign() == 0:
			shiftDen.Div(shiftDen, two)
			shiftNum.Mul(shiftNum, five)
		case new(big.Int).Mod(shiftDen, five).Sign() == 0:
			shiftDen.Div(shiftDen, five)
			shiftNum.Mul(shiftNum, two)
		default:
			// Not exactly representable in decimal; fall back to a
			// long enough truncated expansion.
			s := r.FloatString(17)
			if neg {
				return "-" + s
			}
			return s
		}
		digits++
	}

	s := shiftNum.String()
	for len(s) <= digits {
		s = "0" + s
	}
	intPart, fracPart := s[:len(s)-digits], s[len(s)-digits:]
	if intPart == "" {
		intPart = "0"
	}
	if fracPart == "" {
		fracPart = "0"
	}
	result := intPart + "." + fracPart
	if neg {
		result = "-" + result
	}
	return result
}
