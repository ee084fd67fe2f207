package term

import "strconv"

// IdentifierKind tags the variant held by an Identifier.
type IdentifierKind uint8

const (
	IdentSimple IdentifierKind = iota
	IdentIndexed
)

// IndexKind tags whether an Identifier's index is a numeral or a
// symbol, as SMT-LIB indexed identifiers (e.g. "(_ extract 31 0)")
// allow both.
type IndexKind uint8

const (
	IndexNumeral IndexKind = iota
	IndexSymbol
)

// Index is one element of an Indexed identifier's index list.
type Index struct {
	Kind    IndexKind
	Numeral int64
	Symbol  string
}

// Identifier names an uninterpreted function, sort atom or indexed
// family member.
type Identifier struct {
	Kind    IdentifierKind
	Name    string
	Indices []Index
}

func Simple(name string) Identifier { return Identifier{Kind: IdentSimple, Name: name} }

func Indexed(name string, indices []Index) Identifier {
	return Identifier{Kind: IdentIndexed, Name: name, Indices: indices}
}

func (id Identifier) String() string {
	if id.Kind == IdentSimple {
		return id.Name
	}
	s := "(_ " + id.Name
	for _, ix := range id.Indices {
		if ix.Kind == IndexNumeral {
			s += " " + strconv.FormatInt(ix.Numeral, 10)
		} else {
			s += " " + ix.Symbol
		}
	}
	return s + ")"
}
