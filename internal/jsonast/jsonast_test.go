package jsonast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archrule/archrule/internal/ast"
	"github.com/archrule/archrule/internal/grammar"
)

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	return m
}

func TestEncode_TopLevelFields(t *testing.T) {
	rule, err := grammar.Parse(`rule Example {
		description: "example";
		priority: Info;
		all { c in container : true }
	}`)
	require.NoError(t, err)

	out, err := Encode(rule)
	require.NoError(t, err)

	m := decode(t, out)
	assert.Equal(t, "rule", m["type"])
	assert.Equal(t, "Example", m["name"])
	assert.Equal(t, "example", m["description"])
	assert.Equal(t, "INFO", m["priority"])
	assert.NotEmpty(t, m["blocks"])
}

func TestEncode_QuantifierShape(t *testing.T) {
	rule, err := grammar.Parse(`rule X { exist { a, b in component : a /= b } }`)
	require.NoError(t, err)

	out, err := Encode(rule)
	require.NoError(t, err)

	m := decode(t, out)
	blocks := m["blocks"].([]any)
	require.Len(t, blocks, 1)
	q := blocks[0].(map[string]any)
	assert.Equal(t, "ANY", q["type"])
	assert.Equal(t, []any{"a", "b"}, q["args"])
	assert.NotNil(t, q["source"])
	assert.NotNil(t, q["predicate"])
}

func TestEncode_BinaryOperatorTypeTag(t *testing.T) {
	rule, err := grammar.Parse(`rule X { all { c in component : c.a == c.b } }`)
	require.NoError(t, err)

	out, err := Encode(rule)
	require.NoError(t, err)

	m := decode(t, out)
	q := m["blocks"].([]any)[0].(map[string]any)
	pred := q["predicate"].(map[string]any)
	assert.Equal(t, "EQ", pred["type"])
	assert.NotNil(t, pred["left"])
	assert.NotNil(t, pred["right"])
}

func TestEncode_AccessTypeTags(t *testing.T) {
	rule, err := grammar.Parse(`rule X { all { c in component : c.a == c.!b } }`)
	require.NoError(t, err)

	out, err := Encode(rule)
	require.NoError(t, err)

	m := decode(t, out)
	q := m["blocks"].([]any)[0].(map[string]any)
	pred := q["predicate"].(map[string]any)
	left := pred["left"].(map[string]any)
	right := pred["right"].(map[string]any)
	assert.Equal(t, "ACCESS", left["type"])
	assert.Equal(t, "SAFE_ACCESS", right["type"])
}

func TestEncode_SetLiteral(t *testing.T) {
	rule, err := grammar.Parse(`rule X { all { c in component : c.layer in ["a", "b"] } }`)
	require.NoError(t, err)

	out, err := Encode(rule)
	require.NoError(t, err)

	m := decode(t, out)
	q := m["blocks"].([]any)[0].(map[string]any)
	pred := q["predicate"].(map[string]any)
	set := pred["right"].(map[string]any)
	assert.Equal(t, "set", set["type"])
	assert.Equal(t, []any{"a", "b"}, set["items"])
}

func TestEncode_ConditionalWithoutElse(t *testing.T) {
	rule, err := grammar.Parse(`rule X { all { c in component : if c.exposed then c.safe } }`)
	require.NoError(t, err)

	out, err := Encode(rule)
	require.NoError(t, err)

	m := decode(t, out)
	q := m["blocks"].([]any)[0].(map[string]any)
	pred := q["predicate"].(map[string]any)
	assert.Equal(t, "conditional", pred["type"])
	assert.NotNil(t, pred["cond"])
	assert.NotNil(t, pred["then"])
	_, hasElse := pred["else"]
	assert.False(t, hasElse)
}

func TestEncode_ExceptAndFiltered(t *testing.T) {
	rule, err := grammar.Parse(`rule X {
		except all { c in component : c.public : all { d in c.dependencies : d.internal } }
	}`)
	require.NoError(t, err)

	out, err := Encode(rule)
	require.NoError(t, err)

	m := decode(t, out)
	except := m["blocks"].([]any)[0].(map[string]any)
	assert.Equal(t, "except", except["type"])
	inner := except["inner"].(map[string]any)
	filtered := inner["predicate"].(map[string]any)
	assert.Equal(t, "filtered", filtered["type"])
	assert.NotNil(t, filtered["leading"])
	assert.NotNil(t, filtered["inner"])
}

func TestEncode_NilChildIsBrokenAST(t *testing.T) {
	rule := &ast.Rule{Name: "broken", Body: ast.Block{Statements: []ast.BodyStatement{
		&ast.Assignment{Name: "x", Expr: nil},
	}}}

	_, err := Encode(rule)
	require.Error(t, err)

	var brokenErr *BrokenASTError
	assert.ErrorAs(t, err, &brokenErr)
}
