// Package errors defines the diagnostic kinds the Lift core can report.
// Every lowering routine returns a CompilerError on failure; the first
// one aborts compilation, so no partial IR module is ever emitted.
// Formatting follows the shape of
// github.com/cwbudde/go-dws's internal/errors.CompilerError, trimmed of
// source-line/caret rendering since the core's input tree carries no
// lexer positions (lexing and parsing are out of scope).
package errors

import "fmt"

// Kind classifies a diagnostic.
type Kind int

const (
	DuplicateSymbol Kind = iota
	UndeclaredName
	UnitOperand
	TypeMismatch
	MissingArgument
	MissingReturn
	UnsupportedTypeAtABI
	MapLiteralKeyType
	UnsupportedDataType
	AliasCycle
)

func (k Kind) String() string {
	switch k {
	case DuplicateSymbol:
		return "DuplicateSymbol"
	case UndeclaredName:
		return "UndeclaredName"
	case UnitOperand:
		return "UnitOperand"
	case TypeMismatch:
		return "TypeMismatch"
	case MissingArgument:
		return "MissingArgument"
	case MissingReturn:
		return "MissingReturn"
	case UnsupportedTypeAtABI:
		return "UnsupportedTypeAtABI"
	case MapLiteralKeyType:
		return "MapLiteralKeyType"
	case UnsupportedDataType:
		return "UnsupportedDataType"
	case AliasCycle:
		return "AliasCycle"
	default:
		return "UnknownError"
	}
}

// CompilerError is the single human-readable diagnostic the core reports
// at its boundary. Detail carries extra context (a name, a type
// description) useful to callers that want structured access without
// re-parsing Message.
type CompilerError struct {
	Kind    Kind
	Message string
	Detail  string
}

func (e *CompilerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
}

// New builds a CompilerError with a formatted message.
func New(kind Kind, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetail attaches Detail to an existing error, for call sites that add
// context as an error propagates (e.g. the enclosing function name).
func (e *CompilerError) WithDetail(detail string) *CompilerError {
	return &CompilerError{Kind: e.Kind, Message: e.Message, Detail: detail}
}
