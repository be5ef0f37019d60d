package cypher

import "github.com/archrule/archrule/internal/ast"

// Context carries the mutable translation state for a single compilation.
// A Context is created fresh per Translate call and never shared or reused
// across compilations — the only data shared between invocations is the
// read-only package-level tables (builtins, label, containmentChain and the
// operator templates).
type Context struct {
	variableTable map[string]struct{}
	variableType  map[string]ast.KeywordKind
	quantifierLvl int
	exceptRule    bool
	returns       []string
}

func newContext() *Context {
	return &Context{
		variableTable: make(map[string]struct{}),
		variableType:  make(map[string]ast.KeywordKind),
	}
}

func (c *Context) bind(name string, kind ast.KeywordKind) {
	c.variableTable[name] = struct{}{}
	c.variableType[name] = kind
}

func (c *Context) isBound(name string) bool {
	_, ok := c.variableTable[name]
	return ok
}

func (c *Context) kindOf(name string) (ast.KeywordKind, bool) {
	k, ok := c.variableType[name]
	return k, ok
}

// enterQuantifier increments the quantifier depth and returns a restore
// function that must be deferred immediately so the level is decremented
// on every exit path, normal or error.
func (c *Context) enterQuantifier() func() {
	c.quantifierLvl++
	return func() { c.quantifierLvl-- }
}

// enterExcept sets the except-rule flag and returns a restore function
// that must be deferred immediately, mirroring enterQuantifier's
// stack-discipline guarantee.
func (c *Context) enterExcept() func() {
	prev := c.exceptRule
	c.exceptRule = true
	return func() { c.exceptRule = prev }
}
