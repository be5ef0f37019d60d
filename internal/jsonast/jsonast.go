// Package jsonast implements the JSON backend (C6): a recursive visitor
// that emits the parsed AST verbatim as a structured, language-neutral
// JSON tree. It never inspects variable scope or function names — that
// validation belongs to the Cypher backend.
package jsonast

import (
	"encoding/json"

	"github.com/archrule/archrule/internal/ast"
)

// node is the single JSON shape every AST node marshals into. Only the
// fields relevant to a given type tag are populated; the rest are omitted.
type node struct {
	Type        string  `json:"type"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Blocks      []*node `json:"blocks,omitempty"`

	Left     *node `json:"left,omitempty"`
	Right    *node `json:"right,omitempty"`
	Operand  *node `json:"operand,omitempty"`
	Property string `json:"property,omitempty"`

	Value any   `json:"value,omitempty"`
	Items []any `json:"items,omitempty"`

	Args      []string `json:"args,omitempty"`
	Source    *node    `json:"source,omitempty"`
	Predicate *node    `json:"predicate,omitempty"`

	Cond *node `json:"cond,omitempty"`
	Then *node `json:"then,omitempty"`
	Else *node `json:"else,omitempty"`

	Inner   *node `json:"inner,omitempty"`
	Leading *node `json:"leading,omitempty"`

	Expr *node `json:"expr,omitempty"`

	CallArgs []*node `json:"callArgs,omitempty"`
}

// Encode renders rule as minified JSON. A nil child anywhere in the tree
// is a BrokenASTError: the parser is expected to never produce one.
func Encode(rule *ast.Rule) (string, error) {
	n, err := encodeRule(rule)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(n)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func encodeRule(r *ast.Rule) (*node, error) {
	if r == nil {
		return nil, &BrokenASTError{Where: "rule"}
	}

	blocks := make([]*node, 0, len(r.Body.Statements))
	for _, stmt := range r.Body.Statements {
		n, err := encodeBodyStatement(stmt)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, n)
	}

	return &node{
		Type:        "rule",
		Name:        r.Name,
		Description: r.Description,
		Priority:    r.Priority.String(),
		Blocks:      blocks,
	}, nil
}

func encodeBodyStatement(s ast.BodyStatement) (*node, error) {
	if s == nil {
		return nil, &BrokenASTError{Where: "body statement"}
	}

	switch v := s.(type) {
	case *ast.Assignment:
		expr, err := encodeExpression(v.Expr)
		if err != nil {
			return nil, err
		}
		return &node{Type: "assignment", Name: v.Name, Expr: expr}, nil

	case *ast.Except:
		inner, err := encodeQuantifier(v.Inner)
		if err != nil {
			return nil, err
		}
		return &node{Type: "except", Inner: inner}, nil

	case *ast.Quantifier:
		return encodeQuantifier(v)

	default:
		return nil, &BrokenASTError{Where: "body statement"}
	}
}

func encodeQuantifier(q *ast.Quantifier) (*node, error) {
	if q == nil {
		return nil, &BrokenASTError{Where: "quantifier"}
	}

	source, err := encodeExpression(q.Source)
	if err != nil {
		return nil, err
	}

	pred, err := encodePredicate(q.Predicate)
	if err != nil {
		return nil, err
	}

	return &node{
		Type:      q.Kind.String(),
		Args:      q.Identifiers,
		Source:    source,
		Predicate: pred,
	}, nil
}

func encodePredicate(p ast.Predicate) (*node, error) {
	if p == nil {
		return nil, &BrokenASTError{Where: "predicate"}
	}

	switch v := p.(type) {
	case *ast.Quantifier:
		return encodeQuantifier(v)

	case *ast.Conditional:
		return encodeConditional(v)

	case *ast.StatementExpression:
		return encodeExpression(v.Expr)

	case *ast.FilteredStatement:
		leading, err := encodeExpression(v.Leading)
		if err != nil {
			return nil, err
		}
		inner, err := encodeQuantifier(v.Inner)
		if err != nil {
			return nil, err
		}
		return &node{Type: "filtered", Leading: leading, Inner: inner}, nil

	default:
		return nil, &BrokenASTError{Where: "predicate"}
	}
}

func encodeConditional(c *ast.Conditional) (*node, error) {
	if c == nil {
		return nil, &BrokenASTError{Where: "conditional"}
	}

	cond, err := encodeExpression(c.Cond)
	if err != nil {
		return nil, err
	}

	then, err := encodePredicate(c.Then)
	if err != nil {
		return nil, err
	}

	n := &node{Type: "conditional", Cond: cond, Then: then}

	if c.Else != nil {
		elseNode, err := encodePredicate(c.Else)
		if err != nil {
			return nil, err
		}
		n.Else = elseNode
	}

	return n, nil
}

func encodeExpression(e ast.Expression) (*node, error) {
	if e == nil {
		return nil, &BrokenASTError{Where: "expression"}
	}

	switch v := e.(type) {
	case *ast.Keyword:
		return &node{Type: "keyword", Value: v.Kind.String()}, nil

	case *ast.Literal:
		return encodeLiteral(v)

	case *ast.Variable:
		return &node{Type: "variable", Name: v.Name}, nil

	case *ast.Call:
		args := make([]*node, 0, len(v.Args))
		for _, a := range v.Args {
			argNode, err := encodeExpression(a)
			if err != nil {
				return nil, err
			}
			args = append(args, argNode)
		}
		return &node{Type: "call", Name: v.Name, CallArgs: args}, nil

	case *ast.Access:
		operand, err := encodeExpression(v.Operand)
		if err != nil {
			return nil, err
		}
		typ := "ACCESS"
		if v.Safe {
			typ = "SAFE_ACCESS"
		}
		return &node{Type: typ, Operand: operand, Property: v.Prop}, nil

	case *ast.Unary:
		operand, err := encodeExpression(v.Operand)
		if err != nil {
			return nil, err
		}
		return &node{Type: v.Op.String(), Operand: operand}, nil

	case *ast.Binary:
		left, err := encodeExpression(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpression(v.Right)
		if err != nil {
			return nil, err
		}
		return &node{Type: v.Op.String(), Left: left, Right: right}, nil

	case *ast.Ternary:
		cond, err := encodeExpression(v.Cond)
		if err != nil {
			return nil, err
		}
		then, err := encodeExpression(v.Then)
		if err != nil {
			return nil, err
		}
		elseNode, err := encodeExpression(v.Else)
		if err != nil {
			return nil, err
		}
		return &node{Type: "ternary", Cond: cond, Then: then, Else: elseNode}, nil

	default:
		return nil, &BrokenASTError{Where: "expression"}
	}
}

func encodeLiteral(l *ast.Literal) (*node, error) {
	switch l.Kind {
	case ast.IntLit:
		return &node{Type: "literal", Value: l.Int}, nil
	case ast.StringLit:
		return &node{Type: "literal", Value: l.Str}, nil
	case ast.BoolLit:
		return &node{Type: "literal", Value: l.Bool}, nil
	case ast.SetLit:
		items := make([]any, 0, len(l.Set))
		for _, elem := range l.Set {
			litElem, ok := elem.(*ast.Literal)
			if !ok {
				return nil, &BrokenASTError{Where: "set literal"}
			}
			encoded, err := encodeLiteral(litElem)
			if err != nil {
				return nil, err
			}
			items = append(items, encoded.Value)
		}
		return &node{Type: "set", Items: items}, nil
	default:
		return nil, &BrokenASTError{Where: "literal"}
	}
}
