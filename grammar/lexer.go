package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var SourceLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Keywords and identifiers
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Numeric literals (float before integer)
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Integer", `[0-9]+`, nil},

		// Operators
		{"Operator", `(<<|>>|[-+*/=])`, nil},

		// Punctuation
		{"Punctuation", `[{}();:]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
