// Package bn254 is the default concrete cryptographic backend: it adapts
// github.com/consensys/gnark-crypto's bn254 field, groups and pairing to
// the field.Field/curve.Backend capability interfaces the rest of this
// module is written against. Nothing outside this package imports
// gnark-crypto's bn254 subpackage directly.
package bn254

import (
	"io"
	"math/big"

	gcbn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/field"
)

// elementBytes is the byte width of a canonical fr/fp element encoding.
const elementBytes = fr.Bytes

// frElement adapts gnark-crypto's mutating, pointer-receiver fr.Element to
// the immutable, value-returning field.Element interface.
type frElement struct {
	e fr.Element
}

func (a frElement) Add(b field.Element) field.Element {
	var r fr.Element
	r.Add(&a.e, &b.(frElement).e)
	return frElement{r}
}

func (a frElement) Sub(b field.Element) field.Element {
	var r fr.Element
	r.Sub(&a.e, &b.(frElement).e)
	return frElement{r}
}

func (a frElement) Mul(b field.Element) field.Element {
	var r fr.Element
	r.Mul(&a.e, &b.(frElement).e)
	return frElement{r}
}

func (a frElement) Neg() field.Element {
	var r fr.Element
	r.Neg(&a.e)
	return frElement{r}
}

func (a frElement) Inverse() (field.Element, error) {
	if a.e.IsZero() {
		return nil, errDivByZero
	}
	var r fr.Element
	r.Inverse(&a.e)
	return frElement{r}, nil
}

func (a frElement) IsZero() bool { return a.e.IsZero() }

func (a frElement) Equal(b field.Element) bool {
	bb, ok := b.(frElement)
	if !ok {
		return false
	}
	return a.e.Equal(&bb.e)
}

func (a frElement) Bytes() []byte {
	b := a.e.Bytes()
	out := make([]byte, len(b))
	copy(out, b[:])
	return out
}

func (a frElement) bigInt() *big.Int {
	var bi big.Int
	a.e.BigInt(&bi)
	return &bi
}

var errDivByZero = &zeroDivisionError{}

type zeroDivisionError struct{}

func (*zeroDivisionError) Error() string { return "bn254: inverse of zero field element" }

// fieldImpl implements field.Field over bn254's scalar field fr.
type fieldImpl struct{}

func (fieldImpl) Zero() field.Element {
	var z fr.Element
	z.SetZero()
	return frElement{z}
}

func (fieldImpl) One() field.Element {
	var z fr.Element
	z.SetOne()
	return frElement{z}
}

func (fieldImpl) FromInt64(v int64) field.Element {
	var z fr.Element
	if v < 0 {
		z.SetUint64(uint64(-v))
		z.Neg(&z)
	} else {
		z.SetUint64(uint64(v))
	}
	return frElement{z}
}

// Sample reads oversized randomness from r and reduces it modulo the
// field's order, so that a caller-supplied, possibly-seeded reader (r must
// be cryptographically secure in production, spec.md §5) fully determines
// the sampled element rather than relying on a package-global RNG.
func (fieldImpl) Sample(r io.Reader) (field.Element, error) {
	buf := make([]byte, elementBytes+16)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	var bi big.Int
	bi.SetBytes(buf)
	bi.Mod(&bi, fr.Modulus())
	var z fr.Element
	z.SetBigInt(&bi)
	return frElement{z}, nil
}

// g1Point adapts gnark-crypto's Jacobian G1 representation; arithmetic
// stays in Jacobian coordinates and only normalizes to affine when a
// scalar multiplication base point, an equality check, a serialization or
// a pairing input is needed.
type g1Point struct {
	p gcbn254.G1Jac
}

func (a g1Point) Add(b curve.G1) curve.G1 {
	var r gcbn254.G1Jac
	r.Add(&a.p, &b.(g1Point).p)
	return g1Point{r}
}

func (a g1Point) Neg() curve.G1 {
	var r gcbn254.G1Jac
	r.Neg(&a.p)
	return g1Point{r}
}

func (a g1Point) ScalarMul(s field.Element) curve.G1 {
	var aff gcbn254.G1Affine
	aff.FromJacobian(&a.p)
	var r gcbn254.G1Jac
	r.ScalarMultiplication(&aff, s.(frElement).bigInt())
	return g1Point{r}
}

func (a g1Point) Equal(b curve.G1) bool {
	bb, ok := b.(g1Point)
	if !ok {
		return false
	}
	var aAff, bAff gcbn254.G1Affine
	aAff.FromJacobian(&a.p)
	bAff.FromJacobian(&bb.p)
	return aAff.Equal(&bAff)
}

func (a g1Point) Bytes() []byte {
	var aff gcbn254.G1Affine
	aff.FromJacobian(&a.p)
	xb := aff.X.Bytes()
	yb := aff.Y.Bytes()
	out := make([]byte, 0, len(xb)+len(yb))
	out = append(out, xb[:]...)
	out = append(out, yb[:]...)
	return out
}

// g2Point mirrors g1Point for the second source group.
type g2Point struct {
	p gcbn254.G2Jac
}

func (a g2Point) Add(b curve.G2) curve.G2 {
	var r gcbn254.G2Jac
	r.Add(&a.p, &b.(g2Point).p)
	return g2Point{r}
}

func (a g2Point) Neg() curve.G2 {
	var r gcbn254.G2Jac
	r.Neg(&a.p)
	return g2Point{r}
}

func (a g2Point) ScalarMul(s field.Element) curve.G2 {
	var aff gcbn254.G2Affine
	aff.FromJacobian(&a.p)
	var r gcbn254.G2Jac
	r.ScalarMultiplication(&aff, s.(frElement).bigInt())
	return g2Point{r}
}

func (a g2Point) Equal(b curve.G2) bool {
	bb, ok := b.(g2Point)
	if !ok {
		return false
	}
	var aAff, bAff gcbn254.G2Affine
	aAff.FromJacobian(&a.p)
	bAff.FromJacobian(&bb.p)
	return aAff.Equal(&bAff)
}

func (a g2Point) Bytes() []byte {
	var aff gcbn254.G2Affine
	aff.FromJacobian(&a.p)
	x0 := aff.X.A0.Bytes()
	x1 := aff.X.A1.Bytes()
	y0 := aff.Y.A0.Bytes()
	y1 := aff.Y.A1.Bytes()
	out := make([]byte, 0, len(x0)+len(x1)+len(y0)+len(y1))
	out = append(out, x0[:]...)
	out = append(out, x1[:]...)
	out = append(out, y0[:]...)
	out = append(out, y1[:]...)
	return out
}

// gtElement adapts bn254's pairing target group element.
type gtElement struct {
	e gcbn254.GT
}

func (a gtElement) Mul(b curve.GT) curve.GT {
	var r gcbn254.GT
	r.Mul(&a.e, &b.(gtElement).e)
	return gtElement{r}
}

func (a gtElement) Equal(b curve.GT) bool {
	bb, ok := b.(gtElement)
	if !ok {
		return false
	}
	return a.e.Equal(&bb.e)
}

// pairingImpl implements curve.Pairing via gcbn254.Pair.
type pairingImpl struct{}

func (pairingImpl) Pair(a curve.G1, b curve.G2) (curve.GT, error) {
	return pairingImpl{}.MultiPair([]curve.G1{a}, []curve.G2{b})
}

func (pairingImpl) MultiPair(as []curve.G1, bs []curve.G2) (curve.GT, error) {
	aAff := make([]gcbn254.G1Affine, len(as))
	bAff := make([]gcbn254.G2Affine, len(bs))
	for i, a := range as {
		aAff[i].FromJacobian(&a.(g1Point).p)
	}
	for i, b := range bs {
		bAff[i].FromJacobian(&b.(g2Point).p)
	}
	gt, err := gcbn254.Pair(aAff, bAff)
	if err != nil {
		return nil, err
	}
	return gtElement{gt}, nil
}

// fpBytes is the byte width of a canonical fp.Element encoding, the same
// width g1Point/g2Point.Bytes use per coordinate.
const fpBytes = fp.Bytes

// FromG1Bytes reconstructs a G1 point from the encoding produced by
// g1Point.Bytes (X || Y, each fpBytes long), for deserializing proving
// keys, verifying keys and proofs.
func FromG1Bytes(b []byte) (curve.G1, error) {
	if len(b) != 2*fpBytes {
		return nil, errMalformedEncoding
	}
	var aff gcbn254.G1Affine
	aff.X.SetBytes(b[:fpBytes])
	aff.Y.SetBytes(b[fpBytes:])
	var j gcbn254.G1Jac
	j.FromAffine(&aff)
	return g1Point{j}, nil
}

// FromG2Bytes reconstructs a G2 point from the encoding produced by
// g2Point.Bytes (X.A0 || X.A1 || Y.A0 || Y.A1, each fpBytes long).
func FromG2Bytes(b []byte) (curve.G2, error) {
	if len(b) != 4*fpBytes {
		return nil, errMalformedEncoding
	}
	var aff gcbn254.G2Affine
	aff.X.A0.SetBytes(b[:fpBytes])
	aff.X.A1.SetBytes(b[fpBytes : 2*fpBytes])
	aff.Y.A0.SetBytes(b[2*fpBytes : 3*fpBytes])
	aff.Y.A1.SetBytes(b[3*fpBytes:])
	var j gcbn254.G2Jac
	j.FromAffine(&aff)
	return g2Point{j}, nil
}

var errMalformedEncoding = &malformedEncodingError{}

type malformedEncodingError struct{}

func (*malformedEncodingError) Error() string { return "bn254: malformed point encoding" }

// Backend implements curve.Backend over bn254.
type Backend struct{}

// New returns the bn254 backend: fr as the field, bn254's two source
// groups, and its optimal-ate pairing.
func New() curve.Backend { return Backend{} }

func (Backend) Field() field.Field { return fieldImpl{} }

func (Backend) G1Generator() curve.G1 {
	_, _, g1Aff, _ := gcbn254.Generators()
	var j gcbn254.G1Jac
	j.FromAffine(&g1Aff)
	return g1Point{j}
}

func (Backend) G2Generator() curve.G2 {
	_, _, _, g2Aff := gcbn254.Generators()
	var j gcbn254.G2Jac
	j.FromAffine(&g2Aff)
	return g2Point{j}
}

func (Backend) Pairing() curve.Pairing { return pairingImpl{} }
