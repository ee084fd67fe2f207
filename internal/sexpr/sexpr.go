package sexpr

import (
	"github.com/fatih/color"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/proof"
)

// ParseProof parses a whole proof file (named name, for diagnostics)
// and builds it against a fresh term pool, returning both so the
// caller can hand the pool to the checker and reuse it for printing.
func ParseProof(name, src string) (*pool.Pool, *proof.Proof, error) {
	forms, err := ParseString(name, src)
	if err != nil {
		return nil, nil, err
	}
	p := pool.New()
	pf, err := NewBuilder(p).BuildProof(forms)
	if err != nil {
		color.Red("error in %s: %s", name, err)
		return nil, nil, err
	}
	return p, pf, nil
}
