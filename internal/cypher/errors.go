package cypher

import "fmt"

// TranslateError is the Cypher backend's single structured error shape,
// covering every fatal condition in the translation error taxonomy:
// unbound identifiers, unknown functions, unsupported source shapes and
// broken-AST invariant violations.
type TranslateError struct {
	Kind    string
	Message string
}

func (e *TranslateError) Error() string {
	return fmt.Sprintf("cypher translation error (%s): %s", e.Kind, e.Message)
}

const (
	KindUnboundIdentifier = "UnboundIdentifier"
	KindUnknownFunction   = "UnknownFunction"
	KindUnsupportedSource = "UnsupportedSource"
	KindBrokenAST         = "BrokenAST"
)

func unboundIdentifier(name string) error {
	return &TranslateError{Kind: KindUnboundIdentifier, Message: fmt.Sprintf("Variable %s not exist in current context", name)}
}

func unknownFunction(name string) error {
	return &TranslateError{Kind: KindUnknownFunction, Message: fmt.Sprintf("Function %s not exist", name)}
}

func unsupportedSource(reason string) error {
	return &TranslateError{Kind: KindUnsupportedSource, Message: reason}
}

func brokenAST(where string) error {
	return &TranslateError{Kind: KindBrokenAST, Message: fmt.Sprintf("broken AST: missing child at %s", where)}
}
