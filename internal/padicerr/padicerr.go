// Package padicerr defines the typed error taxonomy shared by the p-adic
// arithmetic, transducer and polynomial layers.
package padicerr

import "fmt"

// Kind classifies a failure the core can raise. Every Kind here is fatal:
// the core never retries, it only reports.
type Kind string

const (
	InvalidPrime       Kind = "InvalidPrime"
	IncompatiblePrime  Kind = "IncompatiblePrime"
	MalformedInput     Kind = "MalformedInput"
	Unbounded          Kind = "Unbounded"
	PseudoDivOverflow  Kind = "PseudoDivOverflow"
	DivisionByZero     Kind = "DivisionByZero"
	OutOfBounds        Kind = "OutOfBounds"
)

// Error carries a Kind plus the offending values, so callers can branch on
// errors.As without parsing a message string.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func Is(err error, kind Kind) bool {
	pe, ok := err.(*Error)
	return ok && pe.Kind == kind
}
