package rules

import (
	"math/big"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/proof"
)

// CpAddition is "cp_addition": 2 premises, 0 args (spec.md §4.6).
// C[l] must equal L[l]+R[l] where both define l, or whichever side
// defines it otherwise; dom(L) and dom(R) must each be a subset of
// dom(C).
func CpAddition(a Args) *Error {
	if err := assertNumPremises(a.Premises, 2); err != nil {
		return err
	}
	if err := assertNumArgs(a.RuleArgs, 0); err != nil {
		return err
	}
	if err := assertClauseLen(a.Conclusion, 1); err != nil {
		return err
	}

	leftClause := premiseClause(a.Premises[0])
	if err := assertClauseLen(leftClause, 1); err != nil {
		return err
	}
	rightClause := premiseClause(a.Premises[1])
	if err := assertClauseLen(rightClause, 1); err != nil {
		return err
	}

	pbL, kL, err := parsePB(a.Pool, leftClause[0])
	if err != nil {
		return err
	}
	pbR, kR, err := parsePB(a.Pool, rightClause[0])
	if err != nil {
		return err
	}
	pbC, kC, err := parsePB(a.Pool, a.Conclusion[0])
	if err != nil {
		return err
	}

	wantK := new(big.Int).Add(kL, kR)
	if wantK.Cmp(kC) != 0 {
		return errExpectedInteger(a.Conclusion[0])
	}

	for lit := range pbL {
		if _, ok := pbC[lit]; !ok {
			return errExpectedToNotBeEmpty(a.Conclusion[0])
		}
	}
	for lit := range pbR {
		if _, ok := pbC[lit]; !ok {
			return errExpectedToNotBeEmpty(a.Conclusion[0])
		}
	}

	for lit, coeffC := range pbC {
		coeffL, inL := pbL[lit]
		coeffR, inR := pbR[lit]
		switch {
		case inL && inR:
			want := new(big.Int).Add(coeffL, coeffR)
			if want.Cmp(coeffC) != 0 {
				return errExpectedInteger(a.Conclusion[0])
			}
		case inL:
			if coeffL.Cmp(coeffC) != 0 {
				return errExpectedInteger(a.Conclusion[0])
			}
		case inR:
			if coeffR.Cmp(coeffC) != 0 {
				return errExpectedInteger(a.Conclusion[0])
			}
		default:
			return errExpectedToNotBeEmpty(leftClause[0])
		}
	}

	return nil
}

// CpMultiplication is "cp_multiplication": 1 premise, 1 integer arg s
// (spec.md §4.6). dom(C) must equal dom(P), and C[l] = s*P[l].
func CpMultiplication(a Args) *Error {
	if err := assertNumPremises(a.Premises, 1); err != nil {
		return err
	}
	if err := assertNumArgs(a.RuleArgs, 1); err != nil {
		return err
	}
	if err := assertClauseLen(a.Conclusion, 1); err != nil {
		return err
	}

	clause := premiseClause(a.Premises[0])
	if err := assertClauseLen(clause, 1); err != nil {
		return err
	}

	scalar, err := argAsInteger(a.Pool, a.RuleArgs[0])
	if err != nil {
		return err
	}

	pbP, kP, err := parsePB(a.Pool, clause[0])
	if err != nil {
		return err
	}
	pbC, kC, err := parsePB(a.Pool, a.Conclusion[0])
	if err != nil {
		return err
	}

	wantK := new(big.Int).Mul(scalar, kP)
	if wantK.Cmp(kC) != 0 {
		return errExpectedInteger(a.Conclusion[0])
	}

	for lit := range pbC {
		if _, ok := pbP[lit]; !ok {
			return errExpectedToNotBeEmpty(a.Conclusion[0])
		}
	}

	for lit, coeffP := range pbP {
		coeffC, ok := pbC[lit]
		if !ok {
			return errExpectedToNotBeEmpty(clause[0])
		}
		want := new(big.Int).Mul(scalar, coeffP)
		if want.Cmp(coeffC) != 0 {
			return errExpectedInteger(a.Conclusion[0])
		}
	}

	return nil
}

// CpDivision is "cp_division": 1 premise, 1 positive integer arg d
// (spec.md §4.6). K_c must be ceil(K_p/d); literals present in both
// P and C must satisfy C[l] = ceil(P[l]/d); literals only in P are
// permitted, literals only in C are a shape error.
func CpDivision(a Args) *Error {
	if err := assertNumPremises(a.Premises, 1); err != nil {
		return err
	}
	if err := assertNumArgs(a.RuleArgs, 1); err != nil {
		return err
	}
	if err := assertClauseLen(a.Conclusion, 1); err != nil {
		return err
	}

	clause := premiseClause(a.Premises[0])
	if err := assertClauseLen(clause, 1); err != nil {
		return err
	}

	divisor, err := argAsInteger(a.Pool, a.RuleArgs[0])
	if err != nil {
		return err
	}
	if divisor.Sign() <= 0 {
		return errExpectedInteger(a.RuleArgs[0].Term)
	}

	pbP, kP, err := parsePB(a.Pool, clause[0])
	if err != nil {
		return err
	}
	pbC, kC, err := parsePB(a.Pool, a.Conclusion[0])
	if err != nil {
		return err
	}

	wantK := ceilDiv(kP, divisor)
	if wantK.Cmp(kC) != 0 {
		return errExpectedInteger(a.Conclusion[0])
	}

	for lit := range pbC {
		coeffP, inP := pbP[lit]
		if !inP {
			return errCouldNotMatch(a.Conclusion[0])
		}
		want := ceilDiv(coeffP, divisor)
		if want.Cmp(pbC[lit]) != 0 {
			return errExpectedInteger(a.Conclusion[0])
		}
	}

	return nil
}

// CpSaturation is "cp_saturation": 1 premise, 0 args (spec.md §4.6).
// C[l] must equal min(K_p, P[l]) for every l in dom(P), and dom(C)
// must equal dom(P).
func CpSaturation(a Args) *Error {
	if err := assertNumPremises(a.Premises, 1); err != nil {
		return err
	}
	if err := assertNumArgs(a.RuleArgs, 0); err != nil {
		return err
	}
	if err := assertClauseLen(a.Conclusion, 1); err != nil {
		return err
	}

	clause := premiseClause(a.Premises[0])
	if err := assertClauseLen(clause, 1); err != nil {
		return err
	}

	pbP, kP, err := parsePB(a.Pool, clause[0])
	if err != nil {
		return err
	}
	pbC, kC, err := parsePB(a.Pool, a.Conclusion[0])
	if err != nil {
		return err
	}

	if kP.Cmp(kC) != 0 {
		return errExpectedInteger(a.Conclusion[0])
	}

	for lit := range pbC {
		if _, ok := pbP[lit]; !ok {
			return errExpectedToNotBeEmpty(a.Conclusion[0])
		}
	}

	for lit := range pbP {
		if _, ok := pbC[lit]; !ok {
			return errExpectedToNotBeEmpty(a.Conclusion[0])
		}
	}

	for lit, coeffP := range pbP {
		coeffC, ok := pbC[lit]
		if !ok {
			return errExpectedToNotBeEmpty(clause[0])
		}
		want := coeffP
		if kP.Cmp(coeffP) < 0 {
			want = kP
		}
		if want.Cmp(coeffC) != 0 {
			return errExpectedInteger(a.Conclusion[0])
		}
	}

	return nil
}

// argAsInteger coerces a ProofArg that is expected to be a bare term
// argument into its integer value.
func argAsInteger(p *pool.Pool, arg proof.Arg) (*big.Int, *Error) {
	if arg.Kind != proof.ArgTerm {
		return nil, errExpectedInteger(arg.Assign.Value)
	}
	return asInteger(p, arg.Term)
}
