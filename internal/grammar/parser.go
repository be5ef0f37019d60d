// Package grammar implements the lexer, participle grammar and AST
// conversion for the rule language (C1-C4). Parse is the single exported
// entry point; everything else is plumbing for it.
package grammar

import (
	"github.com/archrule/archrule/internal/ast"
)

// Parse lexes and parses source into a rule concrete tree, then lowers it
// into the domain AST. A malformed program yields a *SyntaxError.
func Parse(source string) (*ast.Rule, error) {
	tree, err := Parser.ParseString("", source)
	if err != nil {
		return nil, enrichSyntaxError(err)
	}

	return convertRule(tree)
}
