package grammar

import (
	"strings"

	"github.com/archrule/archrule/internal/ast"
)

// convertRule turns the concrete parse tree into the domain AST. It never
// validates variable bindings or function names — those are the Cypher
// backend's job — it only shapes the tree.
func convertRule(r *RuleAST) (*ast.Rule, error) {
	rule := &ast.Rule{
		Name:     r.Name,
		Priority: ast.Error,
	}

	if r.Description != nil {
		rule.Description = unquote(*r.Description)
	}

	if r.Priority != nil {
		switch strings.ToUpper(*r.Priority) {
		case "INFO":
			rule.Priority = ast.Info
		case "WARN":
			rule.Priority = ast.Warn
		default:
			rule.Priority = ast.Error
		}
	}

	block, err := convertBlock(r.Body)
	if err != nil {
		return nil, err
	}
	rule.Body = block

	return rule, nil
}

func unquote(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}

func convertBlock(b *BlockAST) (ast.Block, error) {
	stmts := make([]ast.BodyStatement, 0, len(b.Statements))
	for _, s := range b.Statements {
		stmt, err := convertBodyStatement(s)
		if err != nil {
			return ast.Block{}, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.Block{Statements: stmts}, nil
}

func convertBodyStatement(s *BodyStatementAST) (ast.BodyStatement, error) {
	switch {
	case s.Except != nil:
		inner, err := convertQuantifier(s.Except.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.Except{Inner: inner}, nil

	case s.Quantifier != nil:
		return convertQuantifier(s.Quantifier)

	default:
		expr, err := convertExpr(s.Assignment.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Name: s.Assignment.Name, Expr: expr}, nil
	}
}

func convertQuantifier(q *QuantifierAST) (*ast.Quantifier, error) {
	kind := ast.All
	if strings.EqualFold(q.Kind, "exist") {
		kind = ast.Any
	}

	source, err := convertExpr(q.Source)
	if err != nil {
		return nil, err
	}

	pred, err := convertPredicate(q.Pred)
	if err != nil {
		return nil, err
	}

	return &ast.Quantifier{
		Kind:        kind,
		Identifiers: q.Ids,
		Source:      source,
		Predicate:   pred,
	}, nil
}

func convertPredicate(p *PredicateAST) (ast.Predicate, error) {
	switch {
	case p.Filtered != nil:
		leading, err := convertExpr(p.Filtered.Leading)
		if err != nil {
			return nil, err
		}
		inner, err := convertQuantifier(p.Filtered.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.FilteredStatement{Leading: leading, Inner: inner}, nil

	case p.Base != nil:
		return convertBaseStatement(p.Base)

	default:
		expr, err := convertExpr(p.Stmt.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.StatementExpression{Expr: expr}, nil
	}
}

func convertBaseStatement(b *BaseStmtAST) (ast.BaseStatement, error) {
	if b.Conditional != nil {
		return convertConditional(b.Conditional)
	}
	return convertQuantifier(b.Quantifier)
}

func convertConditional(c *ConditionalAST) (*ast.Conditional, error) {
	cond, err := convertExpr(c.Cond)
	if err != nil {
		return nil, err
	}

	then, err := convertPredicate(c.Then)
	if err != nil {
		return nil, err
	}

	cond2 := &ast.Conditional{Cond: cond, Then: then}

	if c.Else != nil {
		elseArm, err := convertPredicate(c.Else)
		if err != nil {
			return nil, err
		}
		cond2.Else = elseArm
	}

	return cond2, nil
}

// convertExpr walks the precedence-climbing concrete grammar and folds
// each level's repeated-operator tail into a left-associative chain of
// ast.Binary nodes.
func convertExpr(e *ExprAST) (ast.Expression, error) {
	cond, err := convertLogical(e.Cond)
	if err != nil {
		return nil, err
	}

	if e.Then == nil {
		return cond, nil
	}

	then, err := convertExpr(e.Then)
	if err != nil {
		return nil, err
	}

	elseExpr, err := convertLogical(e.Else)
	if err != nil {
		return nil, err
	}

	return &ast.Ternary{Cond: cond, Then: then, Else: elseExpr}, nil
}

func convertLogical(l *LogicalExprAST) (ast.Expression, error) {
	left, err := convertCompare(l.Left)
	if err != nil {
		return nil, err
	}

	for _, opNode := range l.Ops {
		right, err := convertCompare(opNode.Right)
		if err != nil {
			return nil, err
		}

		var op ast.BinaryOp
		switch strings.ToLower(opNode.Op) {
		case "and":
			op = ast.AND
		case "or":
			op = ast.OR
		case "xor":
			op = ast.XOR
		}

		left = &ast.Binary{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func convertCompare(c *CompareExprAST) (ast.Expression, error) {
	left, err := convertAdditive(c.Left)
	if err != nil {
		return nil, err
	}

	if c.Op == nil {
		return left, nil
	}

	right, err := convertAdditive(c.Op.Right)
	if err != nil {
		return nil, err
	}

	var op ast.BinaryOp
	switch {
	case c.Op.Eq:
		op = ast.EQ
	case c.Op.Neq:
		op = ast.NOT_EQ
	case c.Op.Lte:
		op = ast.LESS_EQ
	case c.Op.Gte:
		op = ast.GREATER_EQ
	case c.Op.Lt:
		op = ast.LESS
	case c.Op.Gt:
		op = ast.GREATER
	case c.Op.NotIn:
		op = ast.NOT_IN
	case c.Op.In:
		op = ast.IN
	}

	return &ast.Binary{Op: op, Left: left, Right: right}, nil
}

func convertAdditive(a *AdditiveExprAST) (ast.Expression, error) {
	left, err := convertMultiplicative(a.Left)
	if err != nil {
		return nil, err
	}

	for _, opNode := range a.Ops {
		right, err := convertMultiplicative(opNode.Right)
		if err != nil {
			return nil, err
		}

		op := ast.PLUS
		if opNode.Op == "-" {
			op = ast.MINUS
		}

		left = &ast.Binary{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func convertMultiplicative(m *MultiplicativeExprAST) (ast.Expression, error) {
	left, err := convertUnary(m.Left)
	if err != nil {
		return nil, err
	}

	for _, opNode := range m.Ops {
		right, err := convertUnary(opNode.Right)
		if err != nil {
			return nil, err
		}

		op := ast.MULT
		if opNode.Op == "/" {
			op = ast.DIV
		}

		left = &ast.Binary{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func convertUnary(u *UnaryExprAST) (ast.Expression, error) {
	operand, err := convertPostfix(u.Operand)
	if err != nil {
		return nil, err
	}

	if !u.Not {
		return operand, nil
	}

	return &ast.Unary{Op: ast.NEG, Operand: operand}, nil
}

func convertPostfix(p *PostfixExprAST) (ast.Expression, error) {
	operand, err := convertAtom(p.Atom)
	if err != nil {
		return nil, err
	}

	for _, acc := range p.Accesses {
		operand = &ast.Access{Operand: operand, Prop: acc.Prop, Safe: acc.Safe}
	}

	return operand, nil
}

func convertAtom(a *AtomExprAST) (ast.Expression, error) {
	switch {
	case a.Paren != nil:
		return convertExpr(a.Paren)

	case a.True:
		return &ast.Literal{Kind: ast.BoolLit, Bool: true}, nil

	case a.False:
		return &ast.Literal{Kind: ast.BoolLit, Bool: false}, nil

	case a.Keyword != "":
		return &ast.Keyword{Kind: keywordKind(a.Keyword)}, nil

	case a.Int != nil:
		return &ast.Literal{Kind: ast.IntLit, Int: *a.Int}, nil

	case a.Str != nil:
		return &ast.Literal{Kind: ast.StringLit, Str: unquote(*a.Str)}, nil

	case a.Set != nil:
		items := make([]ast.Expression, 0, len(a.Set.Items))
		for _, item := range a.Set.Items {
			items = append(items, convertSimpleLit(item))
		}
		return &ast.Literal{Kind: ast.SetLit, Set: items}, nil

	default:
		return convertCallOrVar(a.Call), nil
	}
}

func convertSimpleLit(s *SimpleLitAST) ast.Expression {
	switch {
	case s.Str != nil:
		return &ast.Literal{Kind: ast.StringLit, Str: unquote(*s.Str)}
	case s.True:
		return &ast.Literal{Kind: ast.BoolLit, Bool: true}
	case s.False:
		return &ast.Literal{Kind: ast.BoolLit, Bool: false}
	default:
		return &ast.Literal{Kind: ast.IntLit, Int: *s.Int}
	}
}

func convertCallOrVar(c *CallOrVarAST) ast.Expression {
	if c.Args == nil {
		return &ast.Variable{Name: c.Name}
	}

	args := make([]ast.Expression, 0, len(c.Args.Args))
	for _, a := range c.Args.Args {
		arg, err := convertExpr(a)
		if err != nil {
			// Arguments are themselves full expressions parsed by the same
			// grammar that already succeeded for the enclosing rule; a
			// failure here would mean the parser produced an inconsistent
			// tree, which convertExpr never does on a successfully parsed
			// program. Such an argument is skipped rather than panicking.
			continue
		}
		args = append(args, arg)
	}

	return &ast.Call{Name: c.Name, Args: args}
}

func keywordKind(s string) ast.KeywordKind {
	switch strings.ToLower(s) {
	case "system":
		return ast.SYSTEM
	case "container":
		return ast.CONTAINER
	case "component":
		return ast.COMPONENT
	case "code":
		return ast.CODE
	case "deploy":
		return ast.DEPLOY
	case "infrastructure":
		return ast.INFRASTRUCTURE
	default:
		return ast.NONE
	}
}
