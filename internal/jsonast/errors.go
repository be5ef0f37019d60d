package jsonast

import "fmt"

// BrokenASTError is raised when a null child is encountered where the AST
// invariants guarantee one must be present. It signals a bug in the parser
// or a malformed tree handed to the backend directly, never a user error.
type BrokenASTError struct {
	Where string
}

func (e *BrokenASTError) Error() string {
	return fmt.Sprintf("broken AST: missing child at %s", e.Where)
}
