// Package curve declares the abstract elliptic-curve group and pairing
// capability (spec.md §6) that trusted setup, the prover and the verifier
// are parameterized over (Design Notes §9: "expose three capability
// interfaces ... and parameterize setup/prover/verifier over them").
package curve

import "github.com/nume-crypto/groth16/field"

// G1 is an element of the first source group.
type G1 interface {
	Add(G1) G1
	Neg() G1
	ScalarMul(field.Element) G1
	Equal(G1) bool
	Bytes() []byte
}

// G2 is an element of the second source group.
type G2 interface {
	Add(G2) G2
	Neg() G2
	ScalarMul(field.Element) G2
	Equal(G2) bool
	Bytes() []byte
}

// GT is an element of the pairing target group.
type GT interface {
	Mul(GT) GT
	Equal(GT) bool
}

// Pairing is the bilinear, non-degenerate map e: G1 x G2 -> GT.
type Pairing interface {
	Pair(a G1, b G2) (GT, error)

	// MultiPair computes the product Π e(a_i, b_i) in GT using a single
	// Miller loop + final exponentiation where the backend supports it,
	// which is how the verifier (spec.md §4.7) evaluates its
	// multi-pairing check efficiently instead of via repeated Pair calls
	// and GT multiplications.
	MultiPair(a []G1, b []G2) (GT, error)
}

// Backend bundles everything the higher layers need from the L0
// cryptographic primitives: the field the polynomials live over, the two
// source group generators, and the pairing engine.
type Backend interface {
	Field() field.Field

	G1Generator() G1
	G2Generator() G2

	Pairing() Pairing
}
