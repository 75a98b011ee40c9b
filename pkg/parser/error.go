package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is a located parse failure.
type Error struct {
	Message string
	Line    int
	Offset  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: parse error: %s", e.Line, e.Offset, e.Message)
}

// InternalError means a rule broke one of its own invariants, e.g. a sub-parse
// that did not consume the slice it was given. It is never recovered from.
type InternalError struct {
	Rule   string
	Line   int
	Offset int
	Rest   string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%d:%d: internal error in %s: unconsumed input %q", e.Line, e.Offset, e.Rule, e.Rest)
}

// IsInternal reports whether err is or wraps an *InternalError.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}

func fail[C any](c Cursor[C], format string, v ...any) error {
	return &Error{Message: fmt.Sprintf(format, v...), Line: c.Line(), Offset: c.Offset()}
}

func internal[C any](c Cursor[C], rule string) error {
	return &InternalError{Rule: rule, Line: c.Line(), Offset: c.Offset(), Rest: c.Rest()}
}
