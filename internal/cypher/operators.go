package cypher

import "github.com/archrule/archrule/internal/ast"

// binaryTemplate holds the `"{} op {}"`-shaped format string for each
// binary operator, reproduced verbatim from the operator table.
var binaryTemplate = map[ast.BinaryOp]string{
	ast.PLUS:       "%s + %s",
	ast.MINUS:      "%s - %s",
	ast.MULT:       "%s * %s",
	ast.DIV:        "%s / %s",
	ast.EQ:         "%s = %s",
	ast.NOT_EQ:     "%s <> %s",
	ast.LESS:       "%s < %s",
	ast.GREATER:    "%s > %s",
	ast.LESS_EQ:    "%s <= %s",
	ast.GREATER_EQ: "%s >= %s",
	ast.IN:         "%s IN %s",
	ast.NOT_IN:     "NOT (%s IN %s)",
	ast.AND:        "%s AND %s",
	ast.OR:         "%s OR %s",
	ast.XOR:        "%s XOR %s",
}

// unaryTemplate holds the single-operand operator templates.
var unaryTemplate = map[ast.UnaryOp]string{
	ast.NEG: "-%s",
}

// accessTemplate is keyed by the Safe flag: ordinary access is "{}.{}",
// safe access guards with "exists({}.{})".
var accessTemplate = map[bool]string{
	false: "%s.%s",
	true:  "exists(%s.%s)",
}
