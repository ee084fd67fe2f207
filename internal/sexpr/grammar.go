package sexpr

// Node is the generic S-expression tree the grammar produces: either
// a bare token (Atom) or a parenthesized sequence (List). Everything
// domain-specific — recognizing "assume", "step", operators, sorts —
// happens one layer up in the builder, which keeps this grammar
// reusable for any S-expression-based format.
type Node struct {
	Atom *string `  @(Symbol | Keyword | Number | String)`
	List []*Node `| "(" @@* ")"`
}

// Document is a whole proof file: a flat sequence of top-level forms.
type Document struct {
	Forms []*Node `@@*`
}
