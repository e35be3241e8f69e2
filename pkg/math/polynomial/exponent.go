package polynomial

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/taurusgroup/fs-dkr/internal/params"
	"github.com/taurusgroup/fs-dkr/pkg/math/curve"
)

// Exponent represents a polynomial whose coefficients are points on an
// elliptic curve, i.e. a Feldman commitment F(X) = [f(X)]•G to the polynomial
// f. It is the public, broadcastable part of a verifiable secret sharing.
type Exponent struct {
	coefficients []*curve.Point
}

// NewPolynomialExponent generates the Exponent polynomial
// F(X) = [a₀ + a₁⋅X + … + aₜ⋅Xᵗ]•G of the given polynomial.
func NewPolynomialExponent(polynomial *Polynomial) *Exponent {
	var p Exponent

	p.coefficients = make([]*curve.Point, len(polynomial.coefficients))
	for i := range p.coefficients {
		p.coefficients[i] = curve.NewIdentityPoint().ScalarBaseMult(&polynomial.coefficients[i])
	}

	return &p
}

// Evaluate returns F(index), using Horner's method.
func (p *Exponent) Evaluate(index *curve.Scalar) *curve.Point {
	result := curve.NewIdentityPoint()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		// Bₙ₋₁ = [x]Bₙ + Aₙ₋₁
		scaled := curve.NewIdentityPoint().ScalarMult(index, result)
		result.Add(scaled, p.coefficients[i])
	}
	return result
}

// EvaluateIndex returns F(i) for the 1-based party index i.
func (p *Exponent) EvaluateIndex(i int) *curve.Point {
	return p.Evaluate(curve.NewScalarUInt32(uint32(i)))
}

// Degree is the highest power of the Exponent.
func (p *Exponent) Degree() int {
	return len(p.coefficients) - 1
}

// Constant returns the constant coefficient A₀ = [a₀]•G.
func (p *Exponent) Constant() *curve.Point {
	return p.coefficients[0]
}

func (p *Exponent) add(q *Exponent) error {
	if len(p.coefficients) != len(q.coefficients) {
		return errors.New("polynomial: q is not the same length as p")
	}
	for i := 0; i < len(p.coefficients); i++ {
		p.coefficients[i].Add(p.coefficients[i], q.coefficients[i])
	}
	return nil
}

// Sum creates a new Exponent by summing a slice of existing ones.
func Sum(polynomials []*Exponent) (*Exponent, error) {
	summed := polynomials[0].Copy()
	for j := 1; j < len(polynomials); j++ {
		if err := summed.add(polynomials[j]); err != nil {
			return nil, err
		}
	}
	return summed, nil
}

// Copy returns a deep copy of p.
func (p *Exponent) Copy() *Exponent {
	var q Exponent
	q.coefficients = make([]*curve.Point, len(p.coefficients))
	for i := 0; i < len(p.coefficients); i++ {
		q.coefficients[i] = curve.NewIdentityPoint().Set(p.coefficients[i])
	}
	return &q
}

// Equal returns true if p and other commit to the same polynomial.
func (p *Exponent) Equal(other *Exponent) bool {
	if other == nil || len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i := 0; i < len(p.coefficients); i++ {
		if !p.coefficients[i].Equal(other.coefficients[i]) {
			return false
		}
	}
	return true
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (p *Exponent) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.BigEndian, uint32(len(p.coefficients))); err != nil {
		return 0, err
	}
	nAll := int64(4)
	for _, c := range p.coefficients {
		n, err := c.WriteTo(w)
		nAll += n
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain.
func (*Exponent) Domain() string {
	return "Exponent"
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Exponent) MarshalBinary() ([]byte, error) {
	data := make([]byte, 0, 4+len(p.coefficients)*params.BytesPoint)
	data = binary.BigEndian.AppendUint32(data, uint32(len(p.coefficients)))
	for _, c := range p.coefficients {
		b, err := c.MarshalBinary()
		if err != nil {
			return nil, err
		}
		data = append(data, b...)
	}
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Exponent) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return errors.New("polynomial.Exponent.Unmarshal: data is too small")
	}
	count := int(binary.BigEndian.Uint32(data[:4]))
	data = data[4:]
	if len(data) != count*params.BytesPoint {
		return errors.New("polynomial.Exponent.Unmarshal: wrong length")
	}
	coefficients := make([]*curve.Point, count)
	for i := 0; i < count; i++ {
		coefficients[i] = curve.NewIdentityPoint()
		if err := coefficients[i].UnmarshalBinary(data[i*params.BytesPoint : (i+1)*params.BytesPoint]); err != nil {
			return err
		}
	}
	p.coefficients = coefficients
	return nil
}
