// Package r1cs implements the Rank-1 Constraint System data model
// (spec.md §3-4.3): a triple of m x n matrices (A, B, C) over a field,
// satisfied by a variable assignment s iff (A·s)∘(B·s) = C·s row-wise.
package r1cs

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/nume-crypto/groth16/field"
	"github.com/nume-crypto/groth16/internal/parallel"
	"github.com/nume-crypto/groth16/snarkerr"
)

// R1CS holds the three constraint matrices, each of shape
// NumConstraints x NumVariables. The constant-1 wire occupies variable
// index 0 by convention; the first NumPublicInputs variables (indices
// 0..NumPublicInputs-1, the constant-1 wire included) are public.
type R1CS struct {
	A, B, C         [][]field.Element
	NumConstraints  int
	NumVariables    int
	NumPublicInputs int
}

// New validates that A, B and C share the same m x n shape and that
// numPublicInputs is within bounds, and returns the resulting R1CS.
func New(a, b, c [][]field.Element, numPublicInputs int) (*R1CS, error) {
	m := len(a)
	if len(b) != m || len(c) != m {
		return nil, snarkerr.New(snarkerr.ShapeMismatch,
			fmt.Sprintf("r1cs_new: matrices have %d/%d/%d rows", len(a), len(b), len(c)))
	}

	n := 0
	if m > 0 {
		n = len(a[0])
	}
	badRow := func(row []field.Element) bool { return len(row) != n }
	if i := slices.IndexFunc(a, badRow); i >= 0 {
		return nil, snarkerr.New(snarkerr.ShapeMismatch, fmt.Sprintf("r1cs_new: row %d of A has inconsistent width", i))
	}
	if i := slices.IndexFunc(b, badRow); i >= 0 {
		return nil, snarkerr.New(snarkerr.ShapeMismatch, fmt.Sprintf("r1cs_new: row %d of B has inconsistent width", i))
	}
	if i := slices.IndexFunc(c, badRow); i >= 0 {
		return nil, snarkerr.New(snarkerr.ShapeMismatch, fmt.Sprintf("r1cs_new: row %d of C has inconsistent width", i))
	}

	if numPublicInputs > n {
		return nil, snarkerr.New(snarkerr.ShapeMismatch,
			fmt.Sprintf("r1cs_new: num_public_inputs %d exceeds variable count %d", numPublicInputs, n))
	}
	if numPublicInputs < 0 {
		return nil, snarkerr.New(snarkerr.ShapeMismatch, "r1cs_new: negative num_public_inputs")
	}

	return &R1CS{
		A:               a,
		B:               b,
		C:               c,
		NumConstraints:  m,
		NumVariables:    n,
		NumPublicInputs: numPublicInputs,
	}, nil
}

// IsSatisfiedBy performs the m dot-product-and-multiply checks
// (A_i·s)(B_i·s) = C_i·s, one per constraint row. Rows are independent of
// each other, so they are distributed across internal/parallel.For rather
// than walked sequentially.
func (r *R1CS) IsSatisfiedBy(f field.Field, s []field.Element) (bool, error) {
	if len(s) != r.NumVariables {
		return false, snarkerr.New(snarkerr.WidthMismatch,
			fmt.Sprintf("is_satisfied_by: witness has %d entries, expected %d", len(s), r.NumVariables))
	}

	ok := make([]bool, r.NumConstraints)
	parallel.For(r.NumConstraints, func(i int) {
		ok[i] = r.checkRow(f, i, s)
	})

	for _, v := range ok {
		if !v {
			return false, nil
		}
	}
	return true, nil
}

func (r *R1CS) checkRow(f field.Field, i int, s []field.Element) bool {
	av := dot(f, r.A[i], s)
	bv := dot(f, r.B[i], s)
	cv := dot(f, r.C[i], s)
	return av.Mul(bv).Equal(cv)
}

func dot(f field.Field, row []field.Element, s []field.Element) field.Element {
	acc := f.Zero()
	for j, coeff := range row {
		if coeff.IsZero() {
			continue
		}
		acc = acc.Add(coeff.Mul(s[j]))
	}
	return acc
}
