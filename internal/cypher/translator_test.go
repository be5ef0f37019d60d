package cypher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archrule/archrule/internal/grammar"
)

func translateSrc(t *testing.T, src string) (string, error) {
	t.Helper()
	rule, err := grammar.Parse(src)
	require.NoError(t, err)
	return Translate(rule)
}

func TestTranslate_Header(t *testing.T) {
	out, err := translateSrc(t, `rule Example {
		description: "example rule";
		priority: Info;
		all { c in container : true }
	}`)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "// [RULE]: Example\n"))
	assert.Contains(t, out, "// [DESCRIPTION]: example rule\n")
	assert.Contains(t, out, "// [PRIORITY]: INFO\n")
}

func TestTranslate_KeywordSourceSingleIdentifier(t *testing.T) {
	out, err := translateSrc(t, `rule X { all { c in container : true } }`)
	require.NoError(t, err)
	assert.Contains(t, out, "MATCH (c:Container) WHERE")
	assert.Contains(t, out, "WHERE NOT (true)")
	assert.True(t, strings.HasSuffix(out, "RETURN c"))
}

func TestTranslate_KeywordSourceMultipleIdentifiers(t *testing.T) {
	out, err := translateSrc(t, `rule X { all { a, b in component : a /= b } }`)
	require.NoError(t, err)
	assert.Contains(t, out, "MATCH (a:Component), (b:Component)")
	assert.Contains(t, out, "WHERE a <> b AND")
}

func TestTranslate_ExistentialTemplate(t *testing.T) {
	out, err := translateSrc(t, `rule X { exist { c in code : true } }`)
	require.NoError(t, err)
	assert.Contains(t, out, "MATCH (c:Code) WHERE (true)")
	assert.NotContains(t, out, "NOT (true)")
}

func TestTranslate_NestedQuantifierOverAccessIsUnsupported(t *testing.T) {
	out, err := translateSrc(t, `rule X {
		all { c in component : exist { d in c.dependencies : true } }
	}`)
	// c.dependencies is an access expression, not a valid source shape.
	require.Error(t, err)
	_ = out
}

func TestTranslate_NestedQuantifierOverVariable(t *testing.T) {
	out, err := translateSrc(t, `rule X {
		all { s in system : all { c in s : true } }
	}`)
	require.NoError(t, err)
	assert.Contains(t, out, "(s)-[:CONTAINS*]->(c)")
	assert.Contains(t, out, "EXISTS {")
}

func TestTranslate_DeployContainment(t *testing.T) {
	out, err := translateSrc(t, `rule X {
		all { n in deploy : all { c in n : true } }
	}`)
	require.NoError(t, err)
	assert.Contains(t, out, "[:INSTANCE_OF]->(c:Container)")
}

func TestTranslate_UnsupportedContainmentKind(t *testing.T) {
	_, err := translateSrc(t, `rule X {
		all { c in code : all { d in c : true } }
	}`)
	require.Error(t, err)
	var terr *TranslateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindUnsupportedSource, terr.Kind)
}

func TestTranslate_ExceptStatement(t *testing.T) {
	out, err := translateSrc(t, `rule X { except all { c in component : c.layer == "infra" } }`)
	require.NoError(t, err)
	assert.Contains(t, out, "AND NOT (")
	assert.Contains(t, out, "NOT (c.layer = \"infra\")")
}

func TestTranslate_Assignment(t *testing.T) {
	out, err := translateSrc(t, `rule X {
		lst = ["a", "b"];
		all { c in component : c.tech in lst }
	}`)
	require.NoError(t, err)
	assert.Contains(t, out, `WITH ["a", "b"] AS lst`)
	assert.Contains(t, out, "c.tech IN lst")
}

func TestTranslate_UnboundVariable(t *testing.T) {
	_, err := translateSrc(t, `rule X { all { c in component : notbound == 1 } }`)
	require.Error(t, err)
	var terr *TranslateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindUnboundIdentifier, terr.Kind)
}

func TestTranslate_UnknownFunction(t *testing.T) {
	_, err := translateSrc(t, `rule X { all { c in component : nope(c) == true } }`)
	require.Error(t, err)
	var terr *TranslateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindUnknownFunction, terr.Kind)
}

func TestTranslate_FunctionArityMismatch(t *testing.T) {
	_, err := translateSrc(t, `rule X { all { c in component : articulation(c, c) == true } }`)
	require.Error(t, err)
	var terr *TranslateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindUnknownFunction, terr.Kind)
}

func TestTranslate_ArticulationExpansion(t *testing.T) {
	out, err := translateSrc(t, `rule X { all { c in component : articulation(c) } }`)
	require.NoError(t, err)
	assert.Contains(t, out, "c.articulationPoint IS NULL OR c.articulationPoint = 0")
}

func TestTranslate_ConditionalExpansion(t *testing.T) {
	out, err := translateSrc(t, `rule X {
		all { c in component : if c.exposed then c.authenticated else true }
	}`)
	require.NoError(t, err)
	assert.Contains(t, out, "CASE WHEN (c.exposed) THEN (c.authenticated) ELSE (true) END")
}

func TestTranslate_ConditionalWithoutElseDefaultsToTrue(t *testing.T) {
	out, err := translateSrc(t, `rule X { all { c in component : if c.exposed then c.safe } }`)
	require.NoError(t, err)
	assert.Contains(t, out, "ELSE (true) END")
}

func TestTranslate_FilteredStatement(t *testing.T) {
	out, err := translateSrc(t, `rule X {
		all { c in component : c.public : all { d in c.dependencies : d.internal } }
	}`)
	require.Error(t, err)
	_ = out
}

func TestTranslate_AccessTemplates(t *testing.T) {
	out, err := translateSrc(t, `rule X { all { c in component : c.a == c.!b } }`)
	require.NoError(t, err)
	assert.Contains(t, out, "c.a = exists(c.b)")
}

func TestTranslate_OperatorTable(t *testing.T) {
	out, err := translateSrc(t, `rule X {
		all { c in component : (c.a + c.b - c.c) * c.d / c.e < c.f and c.g > c.h or c.i xor c.j }
	}`)
	require.NoError(t, err)
	assert.Contains(t, out, "+")
	assert.Contains(t, out, "-")
	assert.Contains(t, out, "*")
	assert.Contains(t, out, "/")
	assert.Contains(t, out, "<")
	assert.Contains(t, out, ">")
	assert.Contains(t, out, "AND")
	assert.Contains(t, out, "OR")
	assert.Contains(t, out, "XOR")
}

func TestTranslate_ReturnsFromOutermostQuantifier(t *testing.T) {
	out, err := translateSrc(t, `rule X { all { a, b in component : a /= b } }`)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "RETURN a ,b"))
}

func TestTranslate_BrokenASTOnNilChild(t *testing.T) {
	_, err := Translate(nil)
	require.Error(t, err)
	var terr *TranslateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindBrokenAST, terr.Kind)
}
