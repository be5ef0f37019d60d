package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ruleLexer tokenizes the rule language (C1): reserved keywords, integer,
// string and identifier tokens, the grammar's punctuation/operators, and
// insignificant whitespace. Rules are tried in order, so the keyword set
// is matched before the generic identifier pattern — a reserved word can
// never be captured as an Ident token.
var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(not|in|or|and|xor|all|exist|true|false|if|then|else|none|except|priority|description|system|container|component|code|deploy|infrastructure)\b`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Op", Pattern: `>=|<=|==|/=|\.!|[(){}\[\]:;,?+\-*/.<>=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})
