// Package snarkerr implements the error model shared by every layer of the
// groth16 library: a fixed, closed set of error kinds (spec.md §7) plus an
// ordered chain of contextual messages attached as the error propagates up
// through the call stack.
package snarkerr

import "strings"

// Kind identifies the semantic category of a failure. Kinds are never
// inferred from string matching by callers; callers should use errors.As
// to recover the *Error and switch on Kind.
type Kind int

const (
	// Unknown is the zero value and never returned by this package.
	Unknown Kind = iota
	ShapeMismatch
	WidthMismatch
	DuplicateAbscissa
	InsufficientSrs
	WitnessUnsatisfiable
	ZeroSampled
	PublicInputCountMismatch
	VerificationFailed
	BackendError
)

func (k Kind) String() string {
	switch k {
	case ShapeMismatch:
		return "ShapeMismatch"
	case WidthMismatch:
		return "WidthMismatch"
	case DuplicateAbscissa:
		return "DuplicateAbscissa"
	case InsufficientSrs:
		return "InsufficientSrs"
	case WitnessUnsatisfiable:
		return "WitnessUnsatisfiable"
	case ZeroSampled:
		return "ZeroSampled"
	case PublicInputCountMismatch:
		return "PublicInputCountMismatch"
	case VerificationFailed:
		return "VerificationFailed"
	case BackendError:
		return "BackendError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every exported operation in
// this module. It carries a fixed Kind and a stack of human-readable
// context messages, outermost (most recently added) first, pushed by
// WithContext as the error is returned up through nested calls.
type Error struct {
	kind    Kind
	msg     string
	context []string
	wrapped error
}

// New creates a *Error of the given kind with a base message.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Wrap creates a *Error of the given kind that wraps an underlying error,
// typically one surfaced by the field/group/pairing backend.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, wrapped: err}
}

// WithContext returns a copy of e with op prepended to its context stack.
// Used at each call site that propagates an error upward, e.g.:
//
//	h, r, err := num.Div(f, t)
//	if err != nil {
//	    return nil, err.(*snarkerr.Error).WithContext("computing h(x)")
//	}
func (e *Error) WithContext(op string) *Error {
	if e == nil {
		return nil
	}
	ctx := make([]string, 0, len(e.context)+1)
	ctx = append(ctx, op)
	ctx = append(ctx, e.context...)
	return &Error{kind: e.kind, msg: e.msg, context: ctx, wrapped: e.wrapped}
}

// Kind returns the error's semantic category.
func (e *Error) Kind() Kind {
	if e == nil {
		return Unknown
	}
	return e.kind
}

// Unwrap exposes the wrapped backend error, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.wrapped
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(e.kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.msg)
	for _, c := range e.context {
		sb.WriteString(" (while ")
		sb.WriteString(c)
		sb.WriteString(")")
	}
	if e.wrapped != nil {
		sb.WriteString(": ")
		sb.WriteString(e.wrapped.Error())
	}
	return sb.String()
}

// Is reports whether target is a *Error with the same Kind, enabling
// errors.Is(err, snarkerr.New(snarkerr.ShapeMismatch, "")) style checks
// against sentinels built with this package.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == other.kind
}
