package rules

// table is the static name -> rule-function map (spec.md §4.5). Any
// further rule beyond the cutting-planes family is just another
// entry here sharing the same Args contract.
var table = map[string]Rule{
	"trust": trust,

	"cp_addition":       CpAddition,
	"cp_multiplication": CpMultiplication,
	"cp_division":        CpDivision,
	"cp_saturation":      CpSaturation,
}

// trust is the distinguished always-succeeding rule used by tests
// (spec.md §4.5).
func trust(Args) *Error { return nil }

// Lookup resolves a rule name to its checker. The second return value
// is false for an unregistered name; the caller (the walker) decides
// whether that is UnknownRule or a configured no-op.
func Lookup(name string) (Rule, bool) {
	r, ok := table[name]
	return r, ok
}
