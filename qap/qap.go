// Package qap implements the Quadratic Arithmetic Program transform
// (spec.md §3-4.4): column-wise Lagrange interpolation of an R1CS over a
// fixed evaluation domain, producing per-variable polynomials u_j, v_j,
// w_j and the target polynomial t(x) = Π(x - ω_i).
package qap

import (
	"github.com/nume-crypto/groth16/domain"
	"github.com/nume-crypto/groth16/field"
	"github.com/nume-crypto/groth16/internal/parallel"
	"github.com/nume-crypto/groth16/poly"
	"github.com/nume-crypto/groth16/r1cs"
)

// QAP is the polynomial encoding of an R1CS. It is read-only once built
// (spec.md §3 "Lifecycles").
type QAP struct {
	U, V, W []poly.Polynomial
	T       poly.Polynomial

	Domain          domain.Domain
	NumVariables    int
	NumConstraints  int
	NumPublicInputs int
}

// From builds the QAP for cs: chooses the domain D = (1, ..., m), then
// interpolates each column of A/B/C into u_j/v_j/w_j and builds
// t(x) = Π(x - ω_i) by iterated polynomial multiplication.
//
// Per spec.md §4.4 there are no arithmetic failure modes here under a
// correct field, and domain collisions cannot occur since the domain is
// self-chosen by this function.
func From(f field.Field, cs *r1cs.R1CS) *QAP {
	d := domain.New(f, cs.NumConstraints)

	u := make([]poly.Polynomial, cs.NumVariables)
	v := make([]poly.Polynomial, cs.NumVariables)
	w := make([]poly.Polynomial, cs.NumVariables)

	parallel.For(cs.NumVariables, func(j int) {
		u[j] = interpolateColumn(f, d, cs.A, j)
		v[j] = interpolateColumn(f, d, cs.B, j)
		w[j] = interpolateColumn(f, d, cs.C, j)
	})

	t := targetPolynomial(f, d)

	return &QAP{
		U:               u,
		V:               v,
		W:               w,
		T:               t,
		Domain:          d,
		NumVariables:    cs.NumVariables,
		NumConstraints:  cs.NumConstraints,
		NumPublicInputs: cs.NumPublicInputs,
	}
}

func interpolateColumn(f field.Field, d domain.Domain, matrix [][]field.Element, j int) poly.Polynomial {
	points := make([]poly.Point, len(d))
	for i, omega := range d {
		points[i] = poly.Point{X: omega, Y: matrix[i][j]}
	}
	// the domain is self-chosen and distinct by construction, so the
	// DuplicateAbscissa error path of LagrangeInterpolate is unreachable.
	p, err := poly.LagrangeInterpolate(f, points)
	if err != nil {
		panic(err)
	}
	return p
}

// targetPolynomial builds t(x) = Π_{i} (x - ω_i).
func targetPolynomial(f field.Field, d domain.Domain) poly.Polynomial {
	t := poly.Polynomial{f.One()}
	for _, omega := range d {
		factor := poly.Polynomial{omega.Neg(), f.One()}
		t = t.Mul(f, factor)
	}
	return t
}

// CombineWitness evaluates Σ s_j u_j(x) (or v_j, w_j) as a single
// polynomial for a full variable assignment s, used by the prover (spec
// §4.6 step 1) and by tests exercising the QAP-soundness-link property
// (spec §8 property 5).
func CombineWitness(f field.Field, polys []poly.Polynomial, s []field.Element) poly.Polynomial {
	acc := poly.Polynomial{}
	for j, pj := range polys {
		if s[j].IsZero() {
			continue
		}
		acc = acc.Add(f, pj.ScalarMul(f, s[j]))
	}
	return acc
}
