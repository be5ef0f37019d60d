package cypher

import "github.com/archrule/archrule/internal/ast"

// label maps a KeywordKind to its Cypher node label. NONE has no
// label; it is only ever used as a literal value, never a quantifier source.
var label = map[ast.KeywordKind]string{
	ast.SYSTEM:         "SoftwareSystem",
	ast.CONTAINER:      "Container",
	ast.COMPONENT:      "Component",
	ast.CODE:           "Code",
	ast.DEPLOY:         "DeploymentNode",
	ast.INFRASTRUCTURE: "InfrastructureNode",
}

// containmentChain maps a bound variable's kind to the kind of the next
// level down the architecture hierarchy a quantifier iterating "inside" it
// produces. CODE, INFRASTRUCTURE and NONE have no entry: iterating
// inside them is unsupported.
var containmentChain = map[ast.KeywordKind]ast.KeywordKind{
	ast.SYSTEM:    ast.CONTAINER,
	ast.CONTAINER: ast.COMPONENT,
	ast.COMPONENT: ast.CODE,
}
