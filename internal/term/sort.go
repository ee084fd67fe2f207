package term

// SortKind tags the variant held by a Sort.
type SortKind uint8

const (
	SortBool SortKind = iota
	SortInt
	SortReal
	SortString
	SortArray    // Args = [domain, range]
	SortFunction // Args = [arg1, ..., argN, ret]
	SortAtom     // Name + Args (possibly empty, e.g. an uninterpreted sort)
)

// Sort is a reified sort value, itself stored as a Term variant
// (Term.Tag == TagSort) so that sorts share the pool's interning and
// can be referenced by Handle like any other term.
type Sort struct {
	Kind SortKind
	Name string
	Args []Handle
}

// Equal is deep structural equality between two sorts (Args are
// already-canonical handles, so this does not need to recurse through
// the pool).
func (s Sort) Equal(o Sort) bool {
	if s.Kind != o.Kind || s.Name != o.Name || len(s.Args) != len(o.Args) {
		return false
	}
	for i := range s.Args {
		if s.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

func BoolSort() Sort   { return Sort{Kind: SortBool} }
func IntSort() Sort    { return Sort{Kind: SortInt} }
func RealSort() Sort   { return Sort{Kind: SortReal} }
func StringSort() Sort { return Sort{Kind: SortString} }

func ArraySort(domain, rng Handle) Sort {
	return Sort{Kind: SortArray, Args: []Handle{domain, rng}}
}

func FunctionSort(argsAndRet []Handle) Sort {
	return Sort{Kind: SortFunction, Args: argsAndRet}
}

func AtomSort(name string, args []Handle) Sort {
	return Sort{Kind: SortAtom, Name: name, Args: args}
}
