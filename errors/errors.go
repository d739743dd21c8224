package errors

import "strings"

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse     Phase = "parse"     // source text to tree
	PhaseTransform Phase = "transform" // tree to module
	PhaseEncode    Phase = "encode"    // module to text/binary
)

// Kind categorizes the error
type Kind string

const (
	KindInvariant   Kind = "invariant"   // broken input contract
	KindSyntax      Kind = "syntax"      // malformed source text
	KindOverflow    Kind = "overflow"    // value outside its width
	KindUnsupported Kind = "unsupported" // construct the consumer cannot express
	KindUnknownName Kind = "unknown_name" // unresolved function, label, or variable
)

// Error is the structured error type used throughout the toolkit.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Func   string // enclosing function translation, when known
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Func != "" {
		b.WriteString(" in function ")
		b.WriteString(e.Func)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by phase and kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// New builds an error for the given phase and kind.
func New(phase Phase, kind Kind, detail string) *Error {
	return &Error{Phase: phase, Kind: kind, Detail: detail}
}

// Wrap attaches a cause to a new error.
func Wrap(phase Phase, kind Kind, detail string, cause error) *Error {
	return &Error{Phase: phase, Kind: kind, Detail: detail, Cause: cause}
}
