package rules

import (
	"strings"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/term"
)

// pattern is a parsed match-term shape (spec.md §4.5's
// "match_term_err!(pattern = term)"): a leaf pattern captures whatever
// handle it meets under a name; a list pattern additionally requires
// the term's head operator to match and recurses over its arguments.
// A list's last argument may instead be a "name..." token, which
// captures every remaining sibling as a slice under name rather than
// requiring an exact arity.
type pattern struct {
	isList bool
	head   string // meaningful iff isList
	args   []pattern
	rest   string // non-empty iff the last pattern element was "name..."

	capture string // meaningful iff !isList: the name this leaf binds
}

// parsePattern parses a fixed literal pattern string such as
// "(>= (+ sum...) k)" into a pattern tree. Patterns are always
// hand-written literals at call sites, never runtime input, so this
// parser is deliberately minimal: whitespace-delimited atoms and
// parens, no quoting or escaping.
func parsePattern(s string) pattern {
	toks := tokenizePattern(s)
	p, _ := parsePatternTokens(toks, 0)
	return p
}

func tokenizePattern(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch r {
		case '(', ')':
			flush()
			toks = append(toks, string(r))
		case ' ', '\t', '\n':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func parsePatternTokens(toks []string, i int) (pattern, int) {
	if toks[i] == "(" {
		i++
		head := toks[i]
		i++
		var args []pattern
		rest := ""
		for toks[i] != ")" {
			if tail, ok := strings.CutSuffix(toks[i], "..."); ok {
				rest = tail
				i++
				continue
			}
			var child pattern
			child, i = parsePatternTokens(toks, i)
			args = append(args, child)
		}
		i++ // skip ")"
		return pattern{isList: true, head: head, args: args, rest: rest}, i
	}
	atom := toks[i]
	i++
	return pattern{capture: atom}, i
}

// matchResult holds every binding a successful matchTerm produced:
// single-handle captures by name, plus any variadic-tail capture.
type matchResult struct {
	binds map[string]term.Handle
	rests map[string][]term.Handle
}

// matchTerm shape-matches h against pat, returning the bound
// sub-handles on success (spec.md §4.5). On any shape mismatch it
// returns CouldNotMatch naming h, never a partial result.
func matchTerm(p *pool.Pool, pat pattern, h term.Handle) (matchResult, *Error) {
	res := matchResult{binds: map[string]term.Handle{}, rests: map[string][]term.Handle{}}
	if !match(p, pat, h, res) {
		return matchResult{}, errCouldNotMatch(h)
	}
	return res, nil
}

func match(p *pool.Pool, pat pattern, h term.Handle, res matchResult) bool {
	if !pat.isList {
		res.binds[pat.capture] = h
		return true
	}

	t := p.Term(h)
	if t.Tag != term.TagOp {
		return false
	}
	op, ok := term.OperatorByName(pat.head)
	if !ok || t.Op != op {
		return false
	}

	if pat.rest != "" {
		if len(t.Args) < len(pat.args) {
			return false
		}
		for i, ap := range pat.args {
			if !match(p, ap, t.Args[i], res) {
				return false
			}
		}
		tail := make([]term.Handle, len(t.Args)-len(pat.args))
		copy(tail, t.Args[len(pat.args):])
		res.rests[pat.rest] = tail
		return true
	}

	if len(t.Args) != len(pat.args) {
		return false
	}
	for i, ap := range pat.args {
		if !match(p, ap, t.Args[i], res) {
			return false
		}
	}
	return true
}
