// Package proof holds the proof data model the parser produces and
// the checker consumes (spec.md §3): premises, the flat-with-nesting
// command sequence, and the argument shapes a rule can be given.
package proof

import "github.com/alethecheck/alethecheck/internal/term"

// CommandKind tags the variant held by a Command.
type CommandKind uint8

const (
	KindAssume CommandKind = iota
	KindStep
	KindSubproof
)

// Assignment is a "(:= name value)" pair, used both as a subproof's
// assignment_args entry and as an Assign-flavoured ProofArg.
type Assignment struct {
	Name  string
	Value term.Handle
}

// ArgKind tags the variant held by an Arg.
type ArgKind uint8

const (
	ArgTerm ArgKind = iota
	ArgAssign
)

// Arg is one element of a Step's args list: either a bare term or a
// named assignment, per spec.md §3 ("ProofArg is either Term(handle)
// or Assign(name, handle)").
type Arg struct {
	Kind   ArgKind
	Term   term.Handle // ArgTerm
	Assign Assignment  // ArgAssign
}

func TermArg(h term.Handle) Arg            { return Arg{Kind: ArgTerm, Term: h} }
func AssignArg(name string, h term.Handle) Arg { return Arg{Kind: ArgAssign, Assign: Assignment{Name: name, Value: h}} }

// PremiseRef addresses a premise command by its position in the
// command tree: Depth indexes the work stack from its root (0 = the
// proof's top-level command list), Position is the index within the
// slice at that depth.
type PremiseRef struct {
	Depth    int
	Position int
}

// Command is one element of a Proof's (or a Subproof's) command list.
type Command struct {
	Kind CommandKind

	Index string // all kinds

	// KindAssume
	AssumeTerm term.Handle

	// KindStep
	Clause    []term.Handle
	Rule      string
	Premises  []PremiseRef
	Args      []Arg
	Discharge []PremiseRef // recorded, never consulted (spec.md §3)

	// KindSubproof
	Commands      []Command
	AssignmentArgs []Assignment
	VariableArgs  []term.SortedVar
}

// LastStep returns the closing Step of a subproof's command list,
// which the parser guarantees is always the final command.
func (c Command) LastStep() Command {
	return c.Commands[len(c.Commands)-1]
}

// Proof is the checker's complete input: the accepted premise set and
// the top-level command sequence (spec.md §3).
type Proof struct {
	Premises []term.Handle
	Commands []Command
}
