package term

import "math/big"

// LiteralKind tags the variant held by a Literal.
type LiteralKind uint8

const (
	LitInteger LiteralKind = iota
	LitRational
	LitString
	LitVar
)

// Literal is a Terminal term: an arbitrary-precision numeral, a
// string constant, or a declared/bound variable reference.
//
// Only the field matching Kind is meaningful; the others are zero
// values. Int and Rat use math/big so that constants of any magnitude
// that a solver emits (bit-blasted pseudo-boolean coefficients in
// particular) are represented exactly.
type Literal struct {
	Kind LiteralKind

	Int *big.Int
	Rat *big.Rat
	Str string

	VarName string
	VarSort Handle
}

func Integer(v *big.Int) Literal { return Literal{Kind: LitInteger, Int: v} }
func Rational(v *big.Rat) Literal { return Literal{Kind: LitRational, Rat: v} }
func String(v string) Literal    { return Literal{Kind: LitString, Str: v} }
func Var(name string, sort Handle) Literal {
	return Literal{Kind: LitVar, VarName: name, VarSort: sort}
}

// Equal is deep structural equality between two literals.
func (l Literal) Equal(o Literal) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case LitInteger:
		return l.Int.Cmp(o.Int) == 0
	case LitRational:
		return l.Rat.Cmp(o.Rat) == 0
	case LitString:
		return l.Str == o.Str
	case LitVar:
		return l.VarName == o.VarName && l.VarSort == o.VarSort
	}
	return false
}
