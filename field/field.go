// Package field declares the abstract prime-field capability (spec.md §6)
// that the polynomial algebra, R1CS/QAP and groth16 layers are built on.
// The backend package(s) supply a concrete implementation; nothing above
// this package knows, or needs to know, which field it is.
package field

import "io"

// Element is a single immutable value of the field. Every arithmetic
// operation returns a new Element rather than mutating the receiver, so
// callers never need to worry about aliasing — unlike the mutating,
// pointer-receiver style gnark-crypto's fr.Element itself uses, which the
// backend package absorbs internally.
type Element interface {
	Add(Element) Element
	Sub(Element) Element
	Mul(Element) Element
	Neg() Element

	// Inverse returns the multiplicative inverse. Fails (via the returned
	// error, not a panic) when the receiver is zero.
	Inverse() (Element, error)

	IsZero() bool
	Equal(Element) bool

	// Bytes returns the field's canonical serialization of the element.
	Bytes() []byte
}

// Field is a capability handed to every layer that needs to construct
// elements: zero/one, small-integer embeddings (used to build the
// evaluation domain, §4.2), and cryptographically secure sampling (used by
// trusted setup and the prover, §4.5-4.6).
type Field interface {
	Zero() Element
	One() Element

	// FromInt64 embeds a small integer into the field. Used to build the
	// domain D = (1, 2, ..., m).
	FromInt64(v int64) Element

	// Sample draws a uniformly random element from r, which must be a
	// cryptographically secure source (spec.md §5).
	Sample(r io.Reader) (Element, error)
}
