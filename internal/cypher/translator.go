// Package cypher implements the Cypher query-generation backend (C7): a
// tree walk over the parsed AST parameterized by a per-invocation mutable
// Context. Translate is the single exported entry point.
package cypher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/archrule/archrule/internal/ast"
)

// Translate renders rule as a Cypher query. Each call builds its own
// Context; nothing is shared across calls.
func Translate(rule *ast.Rule) (string, error) {
	if rule == nil {
		return "", brokenAST("rule")
	}

	ctx := newContext()

	body, err := translateBlock(ctx, rule.Body)
	if err != nil {
		return "", err
	}

	header := fmt.Sprintf("// [RULE]: %s\n// [DESCRIPTION]: %s\n// [PRIORITY]: %s\n",
		rule.Name, rule.Description, rule.Priority.String())

	return header + body + " RETURN " + strings.Join(ctx.returns, " ,"), nil
}

func translateBlock(ctx *Context, b ast.Block) (string, error) {
	parts := make([]string, 0, len(b.Statements))
	for _, stmt := range b.Statements {
		s, err := translateBodyStatement(ctx, stmt)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

func translateBodyStatement(ctx *Context, s ast.BodyStatement) (string, error) {
	if s == nil {
		return "", brokenAST("body statement")
	}

	switch v := s.(type) {
	case *ast.Assignment:
		return translateAssignment(ctx, v)

	case *ast.Except:
		restore := ctx.enterExcept()
		defer restore()

		inner, err := translateQuantifier(ctx, v.Inner)
		if err != nil {
			return "", err
		}
		return "AND NOT ( " + inner + " )", nil

	case *ast.Quantifier:
		return translateQuantifier(ctx, v)

	default:
		return "", brokenAST("body statement")
	}
}

func translateAssignment(ctx *Context, a *ast.Assignment) (string, error) {
	expr, err := translateExpr(ctx, a.Expr)
	if err != nil {
		return "", err
	}
	ctx.bind(a.Name, ast.NONE)
	return fmt.Sprintf("WITH %s AS %s", expr, a.Name), nil
}

func translateQuantifier(ctx *Context, q *ast.Quantifier) (string, error) {
	if q == nil {
		return "", brokenAST("quantifier")
	}

	restore := ctx.enterQuantifier()
	defer restore()
	level := ctx.quantifierLvl

	source, err := translateSource(ctx, q)
	if err != nil {
		return "", err
	}

	predicate, err := translatePredicate(ctx, q.Predicate)
	if err != nil {
		return "", err
	}

	if level == 1 {
		ctx.returns = q.Identifiers
	}

	switch {
	case level == 1 && !ctx.exceptRule:
		if q.Kind == ast.All {
			return fmt.Sprintf("%s NOT (%s)", source, predicate), nil
		}
		return fmt.Sprintf("%s (%s)", source, predicate), nil

	case level == 1 && ctx.exceptRule:
		if q.Kind == ast.All {
			return fmt.Sprintf("NOT (%s)", predicate), nil
		}
		return fmt.Sprintf("(%s)", predicate), nil

	default:
		if q.Kind == ast.All {
			return fmt.Sprintf("NOT EXISTS { %s NOT (%s) }", source, predicate), nil
		}
		return fmt.Sprintf("EXISTS { %s (%s) }", source, predicate), nil
	}
}

func translatePredicate(ctx *Context, p ast.Predicate) (string, error) {
	if p == nil {
		return "", brokenAST("predicate")
	}

	switch v := p.(type) {
	case *ast.Quantifier:
		return translateQuantifier(ctx, v)

	case *ast.Conditional:
		return translateConditional(ctx, v)

	case *ast.StatementExpression:
		return translateExpr(ctx, v.Expr)

	case *ast.FilteredStatement:
		leading, err := translateExpr(ctx, v.Leading)
		if err != nil {
			return "", err
		}
		inner, err := translateQuantifier(ctx, v.Inner)
		if err != nil {
			return "", err
		}
		return leading + " AND " + inner, nil

	default:
		return "", brokenAST("predicate")
	}
}

func translateConditional(ctx *Context, c *ast.Conditional) (string, error) {
	if c == nil {
		return "", brokenAST("conditional")
	}

	cond, err := translateExpr(ctx, c.Cond)
	if err != nil {
		return "", err
	}

	then, err := translatePredicate(ctx, c.Then)
	if err != nil {
		return "", err
	}

	elseStr := "true"
	if c.Else != nil {
		elseStr, err = translatePredicate(ctx, c.Else)
		if err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("CASE WHEN (%s) THEN (%s) ELSE (%s) END", cond, then, elseStr), nil
}

// translateSource both binds the quantifier's
// identifiers into ctx and returns the MATCH clause that produces them.
func translateSource(ctx *Context, q *ast.Quantifier) (string, error) {
	ids := q.Identifiers

	switch src := q.Source.(type) {
	case *ast.Keyword:
		lbl, ok := label[src.Kind]
		if !ok {
			return "", unsupportedSource(fmt.Sprintf("keyword %s has no node label", src.Kind))
		}

		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf("(%s:%s)", id, lbl))
			ctx.bind(id, src.Kind)
		}

		clause := "MATCH " + strings.Join(parts, ", ") + " " + pairwiseInequality(ids)
		return clause, nil

	case *ast.Variable:
		if !ctx.isBound(src.Name) {
			return "", unboundIdentifier(src.Name)
		}
		kind, _ := ctx.kindOf(src.Name)

		parts := make([]string, 0, len(ids))
		if kind == ast.DEPLOY {
			for _, id := range ids {
				parts = append(parts, fmt.Sprintf("(%s)-[:CONTAINS*]->(:ContainerInstance)-[:INSTANCE_OF]->(%s:Container)", src.Name, id))
				ctx.bind(id, ast.CONTAINER)
			}
		} else {
			next, ok := containmentChain[kind]
			if !ok {
				return "", unsupportedSource(fmt.Sprintf("kind %s has no containment successor", kind))
			}
			for _, id := range ids {
				parts = append(parts, fmt.Sprintf("(%s)-[:CONTAINS*]->(%s)", src.Name, id))
				ctx.bind(id, next)
			}
		}

		clause := "MATCH " + strings.Join(parts, ", ") + " " + pairwiseInequality(ids)
		return clause, nil

	case *ast.Call:
		return translateCallSource(ctx, src, ids)

	default:
		return "", unsupportedSource("quantifier source is not a keyword, variable or recognized call")
	}
}

func translateCallSource(ctx *Context, call *ast.Call, ids []string) (string, error) {
	switch call.Name {
	case "route":
		if len(call.Args) != 2 {
			return "", unknownFunction("route")
		}
		a, err := translateExpr(ctx, call.Args[0])
		if err != nil {
			return "", err
		}
		b, err := translateExpr(ctx, call.Args[1])
		if err != nil {
			return "", err
		}

		clause := fmt.Sprintf("MATCH p = (%s)-[*1..]->(%s)", a, b)
		for _, id := range ids {
			clause += fmt.Sprintf(" UNWIND nodes(p) AS %s WITH %s", id, id)
			ctx.bind(id, ast.NONE)
		}
		clause += " " + pairwiseInequality(ids)
		return clause, nil

	case "instance":
		if len(ids) < 1 {
			return "", unsupportedSource("instance requires at least one identifier")
		}
		if len(ids) > 1 {
			return "", unsupportedSource("instance supports only a single identifier")
		}
		if len(call.Args) != 1 {
			return "", unknownFunction("instance")
		}

		c, err := translateExpr(ctx, call.Args[0])
		if err != nil {
			return "", err
		}

		ctx.bind(ids[0], ast.NONE)
		route := builtins["route"].expand([]string{ids[0], c})
		return fmt.Sprintf("MATCH (%s:ContainerInstance)-%s", ids[0], route), nil

	default:
		return "", unsupportedSource(fmt.Sprintf("call %s cannot be used as a quantifier source", call.Name))
	}
}

// pairwiseInequality always emits the WHERE keyword, even for a single
// identifier, where the `<>` chain is empty and WHERE is left to be
// followed directly by the predicate clause.
func pairwiseInequality(ids []string) string {
	var b strings.Builder
	b.WriteString("WHERE")
	if len(ids) < 2 {
		return b.String()
	}

	b.WriteString(" ")
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			b.WriteString(ids[i])
			b.WriteString(" <> ")
			b.WriteString(ids[j])
			b.WriteString(" AND ")
		}
	}
	return b.String()
}

func translateExpr(ctx *Context, e ast.Expression) (string, error) {
	if e == nil {
		return "", brokenAST("expression")
	}

	switch v := e.(type) {
	case *ast.Keyword:
		if v.Kind == ast.NONE {
			return "[]", nil
		}
		lbl, ok := label[v.Kind]
		if !ok {
			return "", brokenAST("keyword")
		}
		return lbl, nil

	case *ast.Literal:
		return translateLiteral(ctx, v)

	case *ast.Variable:
		if !ctx.isBound(v.Name) {
			return "", unboundIdentifier(v.Name)
		}
		return v.Name, nil

	case *ast.Call:
		return translateCall(ctx, v)

	case *ast.Access:
		operand, err := translateExpr(ctx, v.Operand)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(accessTemplate[v.Safe], operand, v.Prop), nil

	case *ast.Unary:
		operand, err := translateExpr(ctx, v.Operand)
		if err != nil {
			return "", err
		}
		tmpl, ok := unaryTemplate[v.Op]
		if !ok {
			return "", brokenAST("unary operator")
		}
		return fmt.Sprintf(tmpl, operand), nil

	case *ast.Binary:
		left, err := translateExpr(ctx, v.Left)
		if err != nil {
			return "", err
		}
		right, err := translateExpr(ctx, v.Right)
		if err != nil {
			return "", err
		}
		tmpl, ok := binaryTemplate[v.Op]
		if !ok {
			return "", brokenAST("binary operator")
		}
		return fmt.Sprintf(tmpl, left, right), nil

	case *ast.Ternary:
		cond, err := translateExpr(ctx, v.Cond)
		if err != nil {
			return "", err
		}
		then, err := translateExpr(ctx, v.Then)
		if err != nil {
			return "", err
		}
		elseExpr, err := translateExpr(ctx, v.Else)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("CASE WHEN (%s) THEN (%s) ELSE (%s) END", cond, then, elseExpr), nil

	default:
		return "", brokenAST("expression")
	}
}

func translateLiteral(ctx *Context, l *ast.Literal) (string, error) {
	switch l.Kind {
	case ast.IntLit:
		return strconv.FormatInt(l.Int, 10), nil
	case ast.StringLit:
		return strconv.Quote(l.Str), nil
	case ast.BoolLit:
		if l.Bool {
			return "true", nil
		}
		return "false", nil
	case ast.SetLit:
		items := make([]string, 0, len(l.Set))
		for _, elem := range l.Set {
			s, err := translateExpr(ctx, elem)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return "[" + strings.Join(items, ", ") + "]", nil
	default:
		return "", brokenAST("literal")
	}
}

func translateCall(ctx *Context, call *ast.Call) (string, error) {
	b, ok := builtins[call.Name]
	if !ok {
		return "", unknownFunction(call.Name)
	}

	if len(call.Args) != b.arity {
		return "", unknownFunction(fmt.Sprintf("%s (expected %d argument(s), got %d)", call.Name, b.arity, len(call.Args)))
	}

	if b.expand == nil {
		return "", unsupportedSource(fmt.Sprintf("function %s may only be used as a quantifier source", call.Name))
	}

	args := make([]string, 0, len(call.Args))
	for _, a := range call.Args {
		s, err := translateExpr(ctx, a)
		if err != nil {
			return "", err
		}
		args = append(args, s)
	}

	return b.expand(args), nil
}
