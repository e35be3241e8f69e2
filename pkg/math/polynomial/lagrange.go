package polynomial

import (
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
)

// Lagrange returns the Lagrange coefficients at 0 for the given 1-based
// party indices.
//
// The following formulas are taken from
// https://en.wikipedia.org/wiki/Lagrange_polynomial
//
//	         x₀ ⋅⋅⋅ xₖ
//	lⱼ(0) = ---------------------------------------------------
//	        xⱼ⋅(x₀ - xⱼ)⋅⋅⋅(xⱼ₋₁ - xⱼ)⋅(xⱼ₊₁ - xⱼ)⋅⋅⋅(xₖ - xⱼ)
func Lagrange(indices []int) map[int]*curve.Scalar {
	scalars := make(map[int]*curve.Scalar, len(indices))
	// numerator = x₀ ⋅ … ⋅ xₖ
	numerator := curve.NewScalarUInt32(1)
	for _, i := range indices {
		xI := curve.NewScalarUInt32(uint32(i))
		scalars[i] = xI
		numerator.Multiply(numerator, xI)
	}

	coefficients := make(map[int]*curve.Scalar, len(indices))
	tmp := curve.NewScalar()
	for _, j := range indices {
		xJ := scalars[j]
		// denominator = xⱼ⋅(x₀ - xⱼ)⋅⋅⋅(xⱼ₋₁ - xⱼ)⋅(xⱼ₊₁ - xⱼ)⋅⋅⋅(xₖ - xⱼ)
		denominator := curve.NewScalarUInt32(1)
		for _, i := range indices {
			if i == j {
				denominator.Multiply(denominator, xJ)
				continue
			}
			// tmp = xᵢ - xⱼ
			tmp.Subtract(scalars[i], xJ)
			denominator.Multiply(denominator, tmp)
		}
		lJ := curve.NewScalar().Invert(denominator)
		coefficients[j] = lJ.Multiply(lJ, numerator)
	}
	return coefficients
}

// Reconstruct recovers f(0) from the given shares {i: f(i)}, which must
// contain at least degree+1 entries.
func Reconstruct(shares map[int]*curve.Scalar) *curve.Scalar {
	indices := make([]int, 0, len(shares))
	for i := range shares {
		indices = append(indices, i)
	}
	coefficients := Lagrange(indices)

	secret := curve.NewScalar()
	tmp := curve.NewScalar()
	for _, i := range indices {
		tmp.Multiply(coefficients[i], shares[i])
		secret.Add(secret, tmp)
	}
	return secret
}
