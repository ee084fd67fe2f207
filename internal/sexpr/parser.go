package sexpr

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var docParser = participle.MustBuild[Document](
	participle.Lexer(aletheLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// ParseString parses src (named name, for diagnostics) into its
// top-level forms. On a syntax error it prints a caret-style message
// to stderr — grounded on the teacher's reportParseError — and
// returns the underlying participle error.
func ParseString(name, src string) ([]*Node, error) {
	doc, err := docParser.ParseString(name, src)
	if err != nil {
		reportParseError(src, err)
		return nil, err
	}
	return doc.Forms, nil
}

func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
