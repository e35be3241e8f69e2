package polynomial

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/math/sample"
)

func TestPolynomialConstant(t *testing.T) {
	deg := 10
	secret := sample.Scalar(rand.Reader)
	poly := NewPolynomial(deg, secret)
	require.Equal(t, deg, poly.Degree())
	assert.True(t, poly.Constant().Equal(secret))

	// a nil constant is a sharing of 0
	zero := NewPolynomial(deg, nil)
	assert.True(t, zero.Constant().IsZero())
}

func TestPolynomialEvaluateZeroPanics(t *testing.T) {
	poly := NewPolynomial(3, sample.Scalar(rand.Reader))
	assert.Panics(t, func() {
		poly.Evaluate(curve.NewScalar())
	})
}

func TestExponentEvaluate(t *testing.T) {
	poly := NewPolynomial(5, sample.Scalar(rand.Reader))
	polyExp := NewPolynomialExponent(poly)

	for i := 1; i <= 10; i++ {
		expected := curve.NewIdentityPoint().ScalarBaseMult(poly.EvaluateIndex(i))
		assert.True(t, expected.Equal(polyExp.EvaluateIndex(i)),
			"exponent evaluation should match the scalar evaluation in the exponent")
	}
}

func TestExponentSum(t *testing.T) {
	n := 4
	deg := 3

	polys := make([]*Polynomial, n)
	polyExps := make([]*Exponent, n)
	for i := range polys {
		polys[i] = NewPolynomial(deg, sample.Scalar(rand.Reader))
		polyExps[i] = NewPolynomialExponent(polys[i])
	}

	summed, err := Sum(polyExps)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		evaluated := curve.NewScalar()
		for _, p := range polys {
			evaluated.Add(evaluated, p.EvaluateIndex(i))
		}
		expected := curve.NewIdentityPoint().ScalarBaseMult(evaluated)
		assert.True(t, expected.Equal(summed.EvaluateIndex(i)))
	}
}

func TestExponentMarshal(t *testing.T) {
	poly := NewPolynomial(3, sample.Scalar(rand.Reader))
	polyExp := NewPolynomialExponent(poly)

	data, err := polyExp.MarshalBinary()
	require.NoError(t, err)

	polyExp2 := &Exponent{}
	require.NoError(t, polyExp2.UnmarshalBinary(data))
	assert.True(t, polyExp.Equal(polyExp2))
}

func TestShareReconstruct(t *testing.T) {
	threshold := 2
	n := 5
	secret := sample.Scalar(rand.Reader)
	poly := NewPolynomial(threshold, secret)

	shares := make(map[int]*curve.Scalar, n)
	for i := 1; i <= n; i++ {
		shares[i] = poly.EvaluateIndex(i)
	}

	// any t+1 shares recover the constant
	subsets := [][]int{{1, 2, 3}, {2, 4, 5}, {1, 3, 5}, {1, 2, 3, 4, 5}}
	for _, subset := range subsets {
		selected := make(map[int]*curve.Scalar, len(subset))
		for _, i := range subset {
			selected[i] = shares[i]
		}
		assert.True(t, secret.Equal(Reconstruct(selected)),
			"shares at %v should reconstruct the secret", subset)
	}
}

func TestPolynomialReset(t *testing.T) {
	poly := NewPolynomial(2, sample.Scalar(rand.Reader))
	poly.Reset()
	assert.True(t, poly.Constant().IsZero())
	for i := 1; i <= 5; i++ {
		assert.True(t, poly.EvaluateIndex(i).IsZero())
	}
}
