package polynomial

import (
	"crypto/rand"

	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
	"github.com/taurusgroup/fs-dkr/pkg/math/sample"
)

// Polynomial represents f(X) = a₀ + a₁⋅X + … + aₜ⋅Xᵗ with coefficients in ℤq.
type Polynomial struct {
	coefficients []curve.Scalar
}

// NewPolynomial generates a Polynomial f(X) = constant + a₁⋅X + … + aₜ⋅Xᵗ,
// with random coefficients and degree t.
func NewPolynomial(degree int, constant *curve.Scalar) *Polynomial {
	var polynomial Polynomial
	polynomial.coefficients = make([]curve.Scalar, degree+1)

	// if the constant is nil, we interpret it as 0.
	if constant == nil {
		constant = curve.NewScalar()
	}
	polynomial.coefficients[0].Set(constant)

	for i := 1; i <= degree; i++ {
		polynomial.coefficients[i].Set(sample.Scalar(rand.Reader))
	}

	return &polynomial
}

// Evaluate evaluates the polynomial at the given index.
// We use Horner's method: https://en.wikipedia.org/wiki/Horner%27s_method
func (p *Polynomial) Evaluate(index *curve.Scalar) *curve.Scalar {
	if index.IsZero() {
		panic("polynomial: attempt to leak secret")
	}

	result := curve.NewScalar()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		// bₙ₋₁ = bₙ * x + aₙ₋₁
		result.MultiplyAdd(result, index, &p.coefficients[i])
	}
	return result
}

// EvaluateIndex evaluates the polynomial at the 1-based party index i.
func (p *Polynomial) EvaluateIndex(i int) *curve.Scalar {
	return p.Evaluate(curve.NewScalarUInt32(uint32(i)))
}

// Constant returns a reference to the constant coefficient of the polynomial.
func (p *Polynomial) Constant() *curve.Scalar {
	return &p.coefficients[0]
}

// Degree is the highest power of the Polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Reset overwrites all coefficients with 0, scrubbing the shared secret and
// the sharing randomness from memory.
func (p *Polynomial) Reset() {
	for i := range p.coefficients {
		p.coefficients[i].Zero()
	}
}
