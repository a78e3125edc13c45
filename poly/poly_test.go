package poly

import (
	"crypto/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/groth16/backend/bn254"
	"github.com/nume-crypto/groth16/curve"
	"github.com/nume-crypto/groth16/field"
	"github.com/nume-crypto/groth16/snarkerr"
)

func smallPoly(f field.Field, coeffs ...int64) Polynomial {
	out := make([]field.Element, len(coeffs))
	for i, c := range coeffs {
		out[i] = f.FromInt64(c)
	}
	return New(out)
}

func TestCanonicalizationStripsTrailingZeros(t *testing.T) {
	f := bn254.New().Field()
	p := smallPoly(f, 1, 2, 0, 0)
	require.Equal(t, 1, p.Degree())
}

func TestZeroPolynomialIsEmpty(t *testing.T) {
	f := bn254.New().Field()
	p := smallPoly(f, 0, 0, 0)
	require.True(t, p.IsZero())
	require.Equal(t, -1, p.Degree())
}

func TestEvalHorner(t *testing.T) {
	f := bn254.New().Field()
	// p(x) = 1 + 2x + 3x^2, p(2) = 1 + 4 + 12 = 17
	p := smallPoly(f, 1, 2, 3)
	got := p.Eval(f, f.FromInt64(2))
	require.True(t, got.Equal(f.FromInt64(17)))
}

func TestAddSubInverse(t *testing.T) {
	f := bn254.New().Field()
	p := smallPoly(f, 1, 2, 3)
	q := smallPoly(f, 4, -5, 6, 7)
	sum := p.Add(f, q)
	back := sum.Sub(f, q)
	require.True(t, back.Equal(p))
}

func TestMulDegreeAdds(t *testing.T) {
	f := bn254.New().Field()
	p := smallPoly(f, 1, 1) // degree 1
	q := smallPoly(f, 2, 3, 4) // degree 2
	got := p.Mul(f, q)
	require.Equal(t, 3, got.Degree())
}

func TestDivIdentityExample(t *testing.T) {
	f := bn254.New().Field()
	// (x-1)(x-2) = x^2 - 3x + 2
	d := smallPoly(f, -1, 1) // x - 1
	p := smallPoly(f, 2, -3, 1)
	q, r, err := p.Div(f, d)
	require.NoError(t, err)
	require.True(t, r.IsZero())
	reconstructed := q.Mul(f, d).Add(f, r)
	require.True(t, reconstructed.Equal(p))
}

func TestDivByZeroFails(t *testing.T) {
	f := bn254.New().Field()
	p := smallPoly(f, 1, 2)
	_, _, err := p.Div(f, Polynomial{})
	require.Error(t, err)
	serr, ok := err.(*snarkerr.Error)
	require.True(t, ok)
	require.Equal(t, snarkerr.BackendError, serr.Kind())
}

func TestLagrangeInterpolateRoundTrip(t *testing.T) {
	f := bn254.New().Field()
	points := []Point{
		{X: f.FromInt64(1), Y: f.FromInt64(1)},
		{X: f.FromInt64(2), Y: f.FromInt64(4)},
		{X: f.FromInt64(3), Y: f.FromInt64(9)},
	}
	p, err := LagrangeInterpolate(f, points)
	require.NoError(t, err)
	require.LessOrEqual(t, p.Degree(), 2)
	for _, pt := range points {
		require.True(t, p.Eval(f, pt.X).Equal(pt.Y))
	}
}

func TestLagrangeInterpolateDuplicateAbscissa(t *testing.T) {
	f := bn254.New().Field()
	_, err := LagrangeInterpolate(f, []Point{
		{X: f.FromInt64(1), Y: f.FromInt64(1)},
		{X: f.FromInt64(1), Y: f.FromInt64(2)},
	})
	require.Error(t, err)
	serr, ok := err.(*snarkerr.Error)
	require.True(t, ok)
	require.Equal(t, snarkerr.DuplicateAbscissa, serr.Kind())
}

func TestSRSEvaluateMatchesEvalAtSecret(t *testing.T) {
	cb := bn254.New()
	f := cb.Field()
	g1 := cb.G1Generator()

	x := f.FromInt64(7)
	p := smallPoly(f, 1, 2, 3, 4) // degree 3

	srs := make([]curve.G1, p.Degree()+1)
	xi := f.One()
	for i := range srs {
		srs[i] = g1.ScalarMul(xi)
		xi = xi.Mul(x)
	}

	got, err := SRSEvaluate(f, p, srs)
	require.NoError(t, err)

	want := g1.ScalarMul(p.Eval(f, x))
	require.True(t, got.Equal(want))
}

func TestSRSEvaluateInsufficientSrs(t *testing.T) {
	cb := bn254.New()
	f := cb.Field()
	g1 := cb.G1Generator()
	p := smallPoly(f, 1, 2, 3)
	_, err := SRSEvaluate(f, p, []curve.G1{g1})
	require.Error(t, err)
	serr, ok := err.(*snarkerr.Error)
	require.True(t, ok)
	require.Equal(t, snarkerr.InsufficientSrs, serr.Kind())
}

// --- Property-based tests (spec.md §8 properties 1-4) ---

func smallIntGen() gopter.Gen {
	return gen.Int64Range(-500, 500)
}

func polyFromInts(f field.Field, cs []int64) Polynomial {
	out := make([]field.Element, len(cs))
	for i, c := range cs {
		out[i] = f.FromInt64(c)
	}
	return New(out)
}

func TestRingLaws(t *testing.T) {
	f := bn254.New().Field()
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	coeffGen := gen.SliceOf(smallIntGen())

	properties.Property("addition is commutative", prop.ForAll(
		func(ac, bc []int64) bool {
			a, b := polyFromInts(f, ac), polyFromInts(f, bc)
			return a.Add(f, b).Equal(b.Add(f, a))
		}, coeffGen, coeffGen,
	))

	properties.Property("addition is associative", prop.ForAll(
		func(ac, bc, cc []int64) bool {
			a, b, c := polyFromInts(f, ac), polyFromInts(f, bc), polyFromInts(f, cc)
			return a.Add(f, b).Add(f, c).Equal(a.Add(f, b.Add(f, c)))
		}, coeffGen, coeffGen, coeffGen,
	))

	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(ac, bc, cc []int64) bool {
			a, b, c := polyFromInts(f, ac), polyFromInts(f, bc), polyFromInts(f, cc)
			lhs := a.Mul(f, b.Add(f, c))
			rhs := a.Mul(f, b).Add(f, a.Mul(f, c))
			return lhs.Equal(rhs)
		}, coeffGen, coeffGen, coeffGen,
	))

	properties.Property("additive identity", prop.ForAll(
		func(ac []int64) bool {
			a := polyFromInts(f, ac)
			return a.Add(f, Polynomial{}).Equal(a)
		}, coeffGen,
	))

	properties.Property("multiplicative identity", prop.ForAll(
		func(ac []int64) bool {
			a := polyFromInts(f, ac)
			return a.Mul(f, Polynomial{f.One()}).Equal(a)
		}, coeffGen,
	))

	properties.TestingRun(t)
}

func TestDivisionIdentityProperty(t *testing.T) {
	f := bn254.New().Field()
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("P = Q*D + R with deg R < deg D", prop.ForAll(
		func(pc, dc []int64) bool {
			d := polyFromInts(f, dc)
			if d.IsZero() {
				return true
			}
			p := polyFromInts(f, pc)
			q, r, err := p.Div(f, d)
			if err != nil {
				return false
			}
			if r.Degree() >= d.Degree() {
				return false
			}
			return q.Mul(f, d).Add(f, r).Equal(p)
		}, gen.SliceOf(smallIntGen()), gen.SliceOf(smallIntGen()),
	))

	properties.TestingRun(t)
}

func TestInterpolationRoundTripProperty(t *testing.T) {
	f := bn254.New().Field()
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("interpolated polynomial passes through every sample", prop.ForAll(
		func(ys []int64) bool {
			if len(ys) == 0 {
				return true
			}
			points := make([]Point, len(ys))
			for i, y := range ys {
				points[i] = Point{X: f.FromInt64(int64(i + 1)), Y: f.FromInt64(y)}
			}
			p, err := LagrangeInterpolate(f, points)
			if err != nil {
				return false
			}
			if p.Degree() >= len(points) {
				return false
			}
			for _, pt := range points {
				if !p.Eval(f, pt.X).Equal(pt.Y) {
					return false
				}
			}
			return true
		}, gen.SliceOfN(5, smallIntGen()),
	))

	properties.TestingRun(t)
}

func TestSRSEvaluateLinearityProperty(t *testing.T) {
	cb := bn254.New()
	f := cb.Field()
	g1 := cb.G1Generator()
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	x, err := f.Sample(rand.Reader)
	require.NoError(t, err)
	const maxDeg = 6
	srs := make([]curve.G1, maxDeg+1)
	xi := f.One()
	for i := range srs {
		srs[i] = g1.ScalarMul(xi)
		xi = xi.Mul(x)
	}

	properties.Property("srs_evaluate(P, SRS) = eval(P, x) * G", prop.ForAll(
		func(cs []int64) bool {
			p := polyFromInts(f, cs)
			if p.Degree() > maxDeg {
				p = New(p[:maxDeg+1])
			}
			got, err := SRSEvaluate(f, p, srs)
			if err != nil {
				return false
			}
			want := g1.ScalarMul(p.Eval(f, x))
			return got.Equal(want)
		}, gen.SliceOfN(maxDeg+1, smallIntGen()),
	))

	properties.TestingRun(t)
}
