package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// RuleAST is the top-level AST node (C4):
//
//	'rule' identifier '{' ['description:' string ';'] ['priority:' ('Error'|'Info'|'Warn') ';'] block '}'
type RuleAST struct {
	Pos         lexer.Position `parser:""`
	Name        string         `parser:"\"rule\" @Ident \"{\""`
	Description *string        `parser:"( \"description\" \":\" @String \";\" )?"`
	Priority    *string        `parser:"( \"priority\" \":\" @(\"Error\"|\"Info\"|\"Warn\") \";\" )?"`
	Body        *BlockAST      `parser:"@@ \"}\""`
}

// BlockAST is `statement (';' statement)*`, no trailing semicolon (C3).
type BlockAST struct {
	Statements []*BodyStatementAST `parser:"@@ ( \";\" @@ )*"`
}

// BodyStatementAST dispatches on lookahead: "except" / "all"|"exist" /
// otherwise assignment.
type BodyStatementAST struct {
	Except     *ExceptStmtAST `parser:"  \"except\" @@"`
	Quantifier *QuantifierAST `parser:"| @@"`
	Assignment *AssignmentAST `parser:"| @@"`
}

// ExceptStmtAST carries a single inner quantifier.
type ExceptStmtAST struct {
	Inner *QuantifierAST `parser:"@@"`
}

// AssignmentAST is `identifier = expression`.
type AssignmentAST struct {
	Name string   `parser:"@Ident"`
	Expr *ExprAST `parser:"\"=\" @@"`
}

// QuantifierAST is `('all'|'exist') '{' id (',' id)* 'in' source ':' predicate '}'`.
type QuantifierAST struct {
	Kind   string        `parser:"@(\"all\"|\"exist\")"`
	Ids    []string      `parser:"\"{\" @Ident ( \",\" @Ident )*"`
	Source *ExprAST      `parser:"\"in\" @@"`
	Pred   *PredicateAST `parser:"\":\" @@ \"}\""`
}

// PredicateAST dispatches by lookahead inside its containing braces: a
// leading boolean expression followed by ':' and another quantifier is a
// FilteredStatement; a leading "if", "all" or "exist" starts a
// BaseStatement (conditional or nested quantifier); otherwise it is a plain
// boolean expression.
type PredicateAST struct {
	Filtered *FilteredStmtAST `parser:"  @@"`
	Base     *BaseStmtAST     `parser:"| @@"`
	Stmt     *StmtExprAST     `parser:"| @@"`
}

// FilteredStmtAST is "leading : inner-quantifier".
type FilteredStmtAST struct {
	Leading *ExprAST       `parser:"@@ \":\""`
	Inner   *QuantifierAST `parser:"@@"`
}

// BaseStmtAST is a Conditional (begins with "if") or a nested Quantifier.
type BaseStmtAST struct {
	Conditional *ConditionalAST `parser:"  @@"`
	Quantifier  *QuantifierAST  `parser:"| @@"`
}

// ConditionalAST is `'if' expression 'then' predicate ['else' predicate]`.
type ConditionalAST struct {
	Cond *ExprAST      `parser:"\"if\" @@"`
	Then *PredicateAST `parser:"\"then\" @@"`
	Else *PredicateAST `parser:"( \"else\" @@ )?"`
}

// StmtExprAST is a plain boolean expression used as a predicate.
type StmtExprAST struct {
	Expr *ExprAST `parser:"@@"`
}

// ExprAST is the ternary level (C2 level 1): `cond ? then : else`. Then is
// a fresh expression (full recursion); Else continues at the logical level.
type ExprAST struct {
	Cond *LogicalExprAST `parser:"@@"`
	Then *ExprAST        `parser:"( \"?\" @@"`
	Else *LogicalExprAST `parser:"  \":\" @@ )?"`
}

// LogicalExprAST is the `and`/`or`/`xor` level (C2 level 2); all three
// share one precedence level and are left-associative.
type LogicalExprAST struct {
	Left *CompareExprAST `parser:"@@"`
	Ops  []*LogicalOpAST `parser:"@@*"`
}

type LogicalOpAST struct {
	Op    string          `parser:"@(\"and\"|\"or\"|\"xor\")"`
	Right *CompareExprAST `parser:"@@"`
}

// CompareExprAST is the comparison level (C2 level 3). Comparisons do not
// chain: at most one operator may follow the left-hand operand.
type CompareExprAST struct {
	Left *AdditiveExprAST `parser:"@@"`
	Op   *CompareOpAST    `parser:"@@?"`
}

type CompareOpAST struct {
	Eq    bool             `parser:"  @\"==\""`
	Neq   bool             `parser:"| @\"/=\""`
	Lte   bool             `parser:"| @\"<=\""`
	Gte   bool             `parser:"| @\">=\""`
	Lt    bool             `parser:"| @\"<\""`
	Gt    bool             `parser:"| @\">\""`
	NotIn bool             `parser:"| @(\"not\" \"in\")"`
	In    bool             `parser:"| @\"in\""`
	Right *AdditiveExprAST `parser:"@@"`
}

// AdditiveExprAST is the `+`/`-` level (C2 level 4).
type AdditiveExprAST struct {
	Left *MultiplicativeExprAST `parser:"@@"`
	Ops  []*AdditiveOpAST       `parser:"@@*"`
}

type AdditiveOpAST struct {
	Op    string                 `parser:"@(\"+\"|\"-\")"`
	Right *MultiplicativeExprAST `parser:"@@"`
}

// MultiplicativeExprAST is the `*`/`/` level (C2 level 5).
type MultiplicativeExprAST struct {
	Left *UnaryExprAST           `parser:"@@"`
	Ops  []*MultiplicativeOpAST  `parser:"@@*"`
}

type MultiplicativeOpAST struct {
	Op    string        `parser:"@(\"*\"|\"/\")"`
	Right *UnaryExprAST `parser:"@@"`
}

// UnaryExprAST is the `not` prefix level (C2 level 6).
type UnaryExprAST struct {
	Not     bool            `parser:"@\"not\"?"`
	Operand *PostfixExprAST `parser:"@@"`
}

// PostfixExprAST is the `.name` / `.!name` access level (C2 level 7).
type PostfixExprAST struct {
	Atom     *AtomExprAST   `parser:"@@"`
	Accesses []*AccessOpAST `parser:"@@*"`
}

type AccessOpAST struct {
	Safe bool   `parser:"( @\".!\""`
	Dot  bool   `parser:"| @\".\" )"`
	Prop string `parser:"@Ident"`
}

// AtomExprAST is C2 level 8: parenthesized expression, keyword, literal,
// or identifier-expression (bare name, or a call if followed by '(').
type AtomExprAST struct {
	Paren   *ExprAST      `parser:"  \"(\" @@ \")\""`
	True    bool          `parser:"| @\"true\""`
	False   bool          `parser:"| @\"false\""`
	Keyword string        `parser:"| @(\"system\"|\"container\"|\"component\"|\"code\"|\"deploy\"|\"infrastructure\"|\"none\")"`
	Int     *int64        `parser:"| @Int"`
	Str     *string       `parser:"| @String"`
	Set     *SetLitAST    `parser:"| @@"`
	Call    *CallOrVarAST `parser:"| @@"`
}

// SetLitAST is `[ simple-literal (, simple-literal)* ]`; at least one
// element is required syntactically.
type SetLitAST struct {
	Items []*SimpleLitAST `parser:"\"[\" @@ ( \",\" @@ )* \"]\""`
}

type SimpleLitAST struct {
	Str   *string `parser:"  @String"`
	True  bool    `parser:"| @\"true\""`
	False bool    `parser:"| @\"false\""`
	Int   *int64  `parser:"| @Int"`
}

// CallOrVarAST is a bare name, optionally followed by a parenthesized
// argument list — a Call if the list is present, a Variable otherwise.
type CallOrVarAST struct {
	Name string      `parser:"@Ident"`
	Args *ArgListAST `parser:"@@?"`
}

type ArgListAST struct {
	Args []*ExprAST `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
}

// Parser is the participle parser singleton built from the grammar above.
var Parser = participle.MustBuild[RuleAST](
	participle.Lexer(ruleLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
