// Package archrule is the compiler front-end and multi-backend translator
// for the architectural-constraint rule language: CompileToJSON and
// CompileToCypher are its two entry points, each running the full
// parse → AST → backend pipeline in one call.
package archrule

import (
	"github.com/samber/oops"

	"github.com/archrule/archrule/internal/cypher"
	"github.com/archrule/archrule/internal/grammar"
	"github.com/archrule/archrule/internal/jsonast"
)

// CompileToJSON parses source and renders its AST as minified JSON.
func CompileToJSON(source string) (string, error) {
	rule, err := grammar.Parse(source)
	if err != nil {
		return "", oops.Code("PARSE_FAILED").With("stage", "parse").Wrap(err)
	}

	out, err := jsonast.Encode(rule)
	if err != nil {
		return "", oops.Code("JSON_ENCODE_FAILED").With("stage", "json").Wrap(err)
	}

	return out, nil
}

// CompileToCypher parses source and translates it into a Cypher query.
func CompileToCypher(source string) (string, error) {
	rule, err := grammar.Parse(source)
	if err != nil {
		return "", oops.Code("PARSE_FAILED").With("stage", "parse").Wrap(err)
	}

	out, err := cypher.Translate(rule)
	if err != nil {
		return "", oops.Code("CYPHER_TRANSLATE_FAILED").With("stage", "cypher").Wrap(err)
	}

	return out, nil
}
