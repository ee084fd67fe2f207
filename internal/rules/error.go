// Package rules implements the rule-dispatch framework (spec.md §4.5):
// the RuleArgs bundle every rule predicate receives, the RuleError
// taxonomy, shared argument-shape assertions, and the dispatch table.
// The cutting-planes family (spec.md §4.6) is the one rule family
// fully specified here; any further rule is just another entry in the
// dispatch table sharing this same contract.
package rules

import (
	"fmt"

	"github.com/alethecheck/alethecheck/internal/proof"
	"github.com/alethecheck/alethecheck/internal/term"
)

// ErrorKind tags the variant held by a RuleError (spec.md §7).
type ErrorKind uint8

const (
	UnknownRule ErrorKind = iota
	WrongNumberOfPremises
	WrongNumberOfArgs
	WrongLengthOfClause
	CouldNotMatch
	ExpectedInteger
	ExpectedRational
	ExpectedToNotBeEmpty
	Unspecified
)

// Error is the value a rule predicate returns on failure. The walker
// wraps it into a CheckerError carrying the step and rule name
// (spec.md §7); rules never construct a CheckerError themselves.
type Error struct {
	Kind ErrorKind

	Expected int
	Got      int

	// CouldNotMatch / ExpectedToNotBeEmpty
	Term term.Handle

	// ExpectedInteger / ExpectedRational: the value that was expected,
	// and the term that failed to coerce to it.
	WantTerm term.Handle
	GotTerm  term.Handle
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownRule:
		return "unknown rule"
	case WrongNumberOfPremises:
		return fmt.Sprintf("expected %d premises, got %d", e.Expected, e.Got)
	case WrongNumberOfArgs:
		return fmt.Sprintf("expected %d args, got %d", e.Expected, e.Got)
	case WrongLengthOfClause:
		return fmt.Sprintf("expected clause of length %d, got %d", e.Expected, e.Got)
	case CouldNotMatch:
		return "term did not match the expected shape"
	case ExpectedInteger:
		return "expected an integer term"
	case ExpectedRational:
		return "expected a rational term"
	case ExpectedToNotBeEmpty:
		return "expected term to not be empty"
	default:
		return "rule-specific failure"
	}
}

func errUnknownRule() *Error { return &Error{Kind: UnknownRule} }

func errWrongNumPremises(expected, got int) *Error {
	return &Error{Kind: WrongNumberOfPremises, Expected: expected, Got: got}
}

func errWrongNumArgs(expected, got int) *Error {
	return &Error{Kind: WrongNumberOfArgs, Expected: expected, Got: got}
}

func errWrongClauseLen(expected, got int) *Error {
	return &Error{Kind: WrongLengthOfClause, Expected: expected, Got: got}
}

func errCouldNotMatch(h term.Handle) *Error {
	return &Error{Kind: CouldNotMatch, Term: h}
}

func errExpectedInteger(h term.Handle) *Error {
	return &Error{Kind: ExpectedInteger, GotTerm: h}
}

func errExpectedToNotBeEmpty(h term.Handle) *Error {
	return &Error{Kind: ExpectedToNotBeEmpty, Term: h}
}

// assertNumPremises, assertNumArgs, and assertClauseLen are the
// common argument-shape guards every rule is expected to open with
// (spec.md §4.5).
func assertNumPremises(premises []proof.Command, n int) *Error {
	if len(premises) != n {
		return errWrongNumPremises(n, len(premises))
	}
	return nil
}

func assertNumArgs(args []proof.Arg, n int) *Error {
	if len(args) != n {
		return errWrongNumArgs(n, len(args))
	}
	return nil
}

func assertClauseLen(clause []term.Handle, n int) *Error {
	if len(clause) != n {
		return errWrongClauseLen(n, len(clause))
	}
	return nil
}
