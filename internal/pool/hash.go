package pool

import (
	"hash"
	"hash/fnv"
	"strconv"

	"github.com/alethecheck/alethecheck/internal/term"
)

// fingerprint produces a bucketing hash for t. It never needs to be
// collision-free: Intern falls back to shallowEqual for anything that
// lands in the same bucket. Keeping it cheap (no recursion into
// sub-pools, just the handles/primitives already on hand) is what
// makes Intern's expected case O(1).
func fingerprint(t term.Term) uint64 {
	h := fnv.New64a()
	writeByte(h, byte(t.Tag))
	switch t.Tag {
	case term.TagTerminal:
		writeByte(h, byte(t.Literal.Kind))
		switch t.Literal.Kind {
		case term.LitInteger:
			writeString(h, t.Literal.Int.String())
		case term.LitRational:
			writeString(h, t.Literal.Rat.String())
		case term.LitString:
			writeString(h, t.Literal.Str)
		case term.LitVar:
			writeString(h, t.Literal.VarName)
			writeHandle(h, t.Literal.VarSort)
		}
	case term.TagApp:
		writeHandle(h, t.Func)
		writeHandles(h, t.Args)
	case term.TagOp:
		writeByte(h, byte(t.Op))
		writeHandles(h, t.Args)
	case term.TagSort:
		writeByte(h, byte(t.SortValue.Kind))
		writeString(h, t.SortValue.Name)
		writeHandles(h, t.SortValue.Args)
	case term.TagQuant:
		writeByte(h, byte(t.Quantifier))
		writeSortedVars(h, t.Bindings)
		writeHandle(h, t.Body)
	case term.TagChoice:
		writeSortedVars(h, t.Bindings)
		writeHandle(h, t.Body)
	case term.TagLet:
		for _, b := range t.LetBindings {
			writeString(h, b.Name)
			writeHandle(h, b.Value)
		}
		writeHandle(h, t.Body)
	}
	return h.Sum64()
}

func writeByte(h hash.Hash64, b byte) { h.Write([]byte{b}) }

func writeString(h hash.Hash64, s string) {
	h.Write([]byte(s))
	h.Write([]byte{0})
}

func writeHandle(h hash.Hash64, v term.Handle) {
	writeString(h, strconv.Itoa(int(v)))
}

func writeHandles(h hash.Hash64, vs []term.Handle) {
	for _, v := range vs {
		writeHandle(h, v)
	}
}

func writeSortedVars(h hash.Hash64, vs []term.SortedVar) {
	for _, v := range vs {
		writeString(h, v.Name)
		writeHandle(h, v.Sort)
	}
}
