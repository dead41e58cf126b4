package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer maps raw die-spec strings into tokens for the AST definitions.
// Shorthand must come before Ident so "d6" is not swallowed as a word.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(?:faces|weights)\b`},
	{Name: "Shorthand", Pattern: `[dD]\d+`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Punct", Pattern: `[:]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// Build creates the die-spec parser based on the struct tags in ast.go
func Build() *participle.Parser[DieSpec] {
	return participle.MustBuild[DieSpec](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
	)
}
