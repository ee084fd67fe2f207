package sexpr

import "github.com/alecthomas/participle/v2/lexer"

// aletheLexer tokenizes the S-expression surface syntax Alethe proofs
// are written in. Modeled directly on the teacher's stateful lexer
// (grammar/lexer.go): one flat rule set, order-sensitive so that
// longer operators are tried before their punctuation prefixes.
var aletheLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `;[^\n]*`, nil},
		{"String", `"(\\.|[^"])*"`, nil},
		{"Keyword", `:(=|[a-zA-Z_][a-zA-Z0-9_\-]*)`, nil},
		{"Number", `-?[0-9]+(\.[0-9]+)?`, nil},
		{"Symbol", `[a-zA-Z_+\-*/<>=!~?$%&^.@][a-zA-Z0-9_+\-*/<>=!~?$%&^.@]*`, nil},
		{"LParen", `\(`, nil},
		{"RParen", `\)`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
