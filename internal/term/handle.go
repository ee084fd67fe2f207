// Package term defines the Alethe term algebra: the tagged-union data
// model for terms, sorts and identifiers, plus the two equality
// predicates the checker relies on (deep structural equality and
// equality modulo commutative reordering).
//
// Terms themselves never carry a pointer back into the pool that
// interned them; they are referred to everywhere else by Handle, an
// opaque, comparable, hashable index. Two handles compare equal iff
// they were interned from structurally equal terms.
package term

// Handle is the canonical reference to an interned term. The zero
// Handle is never returned by a pool and is reserved as a sentinel for
// "no term".
type Handle int32

// Invalid is the sentinel handle that no real term ever receives.
const Invalid Handle = 0
