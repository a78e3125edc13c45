// Package poly implements the dense univariate polynomial algebra layer
// (spec.md §3-4.1): exact arithmetic, Euclidean division, Lagrange
// interpolation and SRS (structured reference string) evaluation in the
// exponent, all over an arbitrary field.Field supplied by the caller.
package poly

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/field"
	"github.com/nume-crypto/groth16/snarkerr"
)

// Polynomial is a canonical dense coefficient vector: index i holds the
// coefficient of x^i. The highest-index coefficient is always non-zero,
// except for the zero polynomial, represented by the empty slice. Every
// constructor and arithmetic result in this package is canonical; there is
// no non-canonical path (Design Notes §9).
type Polynomial []field.Element

// Point is a single (x, y) sample used by LagrangeInterpolate.
type Point struct {
	X, Y field.Element
}

// New canonicalizes coeffs into a Polynomial, stripping trailing zero
// coefficients.
func New(coeffs []field.Element) Polynomial {
	return canonicalize(coeffs)
}

func canonicalize(c []field.Element) Polynomial {
	n := len(c)
	for n > 0 && c[n-1].IsZero() {
		n--
	}
	out := make(Polynomial, n)
	copy(out, c[:n])
	return out
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial
// (the spec's "degree -∞ by convention").
func (p Polynomial) Degree() int {
	return len(p) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p) == 0
}

// Equal reports structural equality of the canonicalized coefficient
// vectors.
func (p Polynomial) Equal(q Polynomial) bool {
	return slices.EqualFunc(p, q, func(a, b field.Element) bool { return a.Equal(b) })
}

// Eval evaluates p at z using Horner's rule.
func (p Polynomial) Eval(f field.Field, z field.Element) field.Element {
	acc := f.Zero()
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc.Mul(z).Add(p[i])
	}
	return acc
}

func (p Polynomial) coeff(i int, f field.Field) field.Element {
	if i < 0 || i >= len(p) {
		return f.Zero()
	}
	return p[i]
}

// Add returns p + q.
func (p Polynomial) Add(f field.Field, q Polynomial) Polynomial {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeff(i, f).Add(q.coeff(i, f))
	}
	return canonicalize(out)
}

// Sub returns p - q.
func (p Polynomial) Sub(f field.Field, q Polynomial) Polynomial {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeff(i, f).Sub(q.coeff(i, f))
	}
	return canonicalize(out)
}

// Mul returns p * q via schoolbook coefficient-wise multiplication.
func (p Polynomial) Mul(f field.Field, q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return Polynomial{}
	}
	out := make([]field.Element, len(p)+len(q)-1)
	for i := range out {
		out[i] = f.Zero()
	}
	for i, pi := range p {
		if pi.IsZero() {
			continue
		}
		for j, qj := range q {
			out[i+j] = out[i+j].Add(pi.Mul(qj))
		}
	}
	return canonicalize(out)
}

// ScalarMul returns c*P.
func (p Polynomial) ScalarMul(f field.Field, c field.Element) Polynomial {
	if c.IsZero() {
		return Polynomial{}
	}
	out := make([]field.Element, len(p))
	for i, pi := range p {
		out[i] = pi.Mul(c)
	}
	return canonicalize(out)
}

// ScalarAdd adds c to P's constant term.
func (p Polynomial) ScalarAdd(f field.Field, c field.Element) Polynomial {
	out := make([]field.Element, len(p))
	copy(out, p)
	if len(out) == 0 {
		return canonicalize([]field.Element{c})
	}
	out[0] = out[0].Add(c)
	return canonicalize(out)
}

// Div performs Euclidean long division: P = Q*D + R with deg(R) < deg(D).
// Fails with BackendError, and only when D is the zero polynomial.
func (p Polynomial) Div(f field.Field, d Polynomial) (q, r Polynomial, err error) {
	if d.IsZero() {
		return nil, nil, snarkerr.New(snarkerr.BackendError, "polynomial division by zero divisor")
	}

	remainder := make([]field.Element, len(p))
	copy(remainder, p)

	dDeg := d.Degree()
	leadInv, _ := d[dDeg].Inverse() // non-zero by canonical form

	qDeg := len(p) - len(d)
	if qDeg < 0 {
		return Polynomial{}, canonicalize(remainder), nil
	}
	quotient := make([]field.Element, qDeg+1)
	for i := range quotient {
		quotient[i] = f.Zero()
	}

	for deg := len(remainder) - 1; deg >= dDeg; deg-- {
		lead := remainder[deg]
		if lead.IsZero() {
			continue
		}
		coeff := lead.Mul(leadInv)
		quotient[deg-dDeg] = coeff
		for i, di := range d {
			idx := deg - dDeg + i
			remainder[idx] = remainder[idx].Sub(coeff.Mul(di))
		}
	}

	return canonicalize(quotient), canonicalize(remainder), nil
}

// LagrangeInterpolate returns the unique polynomial of degree < len(points)
// passing through every given point, computed as Σ y_i * L_i(x) with
// L_i(x) = Π_{j≠i} (x-x_j)/(x_i-x_j). Fails with DuplicateAbscissa if any
// two x-coordinates coincide.
func LagrangeInterpolate(f field.Field, points []Point) (Polynomial, error) {
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[i].X.Equal(points[j].X) {
				return nil, snarkerr.New(snarkerr.DuplicateAbscissa,
					fmt.Sprintf("lagrange_interpolate: duplicate abscissa at indices %d and %d", i, j))
			}
		}
	}

	result := Polynomial{}
	for i, pi := range points {
		num := Polynomial{f.One()}
		denom := f.One()
		for j, pj := range points {
			if i == j {
				continue
			}
			factor := Polynomial{pj.X.Neg(), f.One()}
			num = num.Mul(f, factor)
			denom = denom.Mul(pi.X.Sub(pj.X))
		}
		denomInv, err := denom.Inverse()
		if err != nil {
			// unreachable given the distinctness check above
			return nil, snarkerr.Wrap(snarkerr.BackendError, "lagrange_interpolate: degenerate denominator", err)
		}
		term := num.ScalarMul(f, pi.Y.Mul(denomInv))
		result = result.Add(f, term)
	}
	return result, nil
}

// groupElement is the shape shared by curve.G1 and curve.G2: both
// interfaces declare Add/ScalarMul returning their own interface type, so
// the interface type itself can stand in as the type parameter below
// (curve.G1 satisfies groupElement[curve.G1], curve.G2 satisfies
// groupElement[curve.G2]) — real parametric polymorphism rather than a
// sum type over "G1 or G2" (Design Notes §9).
type groupElement[T any] interface {
	Add(T) T
	ScalarMul(field.Element) T
}

// SRSEvaluate returns Σ c_i * srs[i], i.e. evaluates P at the secret x "in
// the exponent" using the supplied powers {x^i * G}_{i<=deg P}, without
// ever materializing x. Fails with InsufficientSrs if srs does not cover
// deg(P) (srs must carry at least the degree-0 power). Works identically
// over G1 and G2 SRS via the groupElement constraint.
func SRSEvaluate[T groupElement[T]](f field.Field, p Polynomial, srs []T) (T, error) {
	var zero T
	if len(srs) == 0 {
		return zero, snarkerr.New(snarkerr.InsufficientSrs, "srs_evaluate: empty SRS")
	}
	if p.Degree()+1 > len(srs) {
		return zero, snarkerr.New(snarkerr.InsufficientSrs,
			fmt.Sprintf("srs_evaluate: polynomial degree %d exceeds SRS coverage %d", p.Degree(), len(srs)-1))
	}

	acc := srs[0].ScalarMul(p.coeff(0, f))
	for i := 1; i < len(p); i++ {
		if p[i].IsZero() {
			continue
		}
		acc = acc.Add(srs[i].ScalarMul(p[i]))
	}
	return acc, nil
}
