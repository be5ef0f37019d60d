package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// SyntaxError wraps a parse failure with the position it occurred at, when
// participle reports one.
type SyntaxError struct {
	Pos     lexer.Position
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// enrichSyntaxError attaches a source position to a raw participle error so
// callers never have to special-case participle's own error types.
func enrichSyntaxError(err error) error {
	if err == nil {
		return nil
	}

	if perr, ok := err.(participle.Error); ok {
		return &SyntaxError{Pos: perr.Position(), Message: perr.Message()}
	}

	return &SyntaxError{Message: err.Error()}
}
