package curve

import (
	"encoding/hex"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/taurusgroup/fs-dkr/internal/params"
)

// Point is a point on the secp256k1 curve, including the point at infinity.
type Point struct {
	p secp256k1.JacobianPoint
}

var (
	baseX secp256k1.FieldVal
	baseY secp256k1.FieldVal
)

// NewIdentityPoint returns a point set to ∞.
func NewIdentityPoint() *Point {
	var v Point
	return &v
}

// NewBasePoint returns a point initialized to the generator G.
func NewBasePoint() *Point {
	var v Point
	v.p.X.Set(&baseX)
	v.p.Y.Set(&baseY)
	v.p.Z.SetInt(1)
	return &v
}

// Set sets v = u, and returns v.
func (v *Point) Set(u *Point) *Point {
	v.p.Set(&u.p)
	return v
}

// Add sets v = p + q, and returns v.
func (v *Point) Add(p, q *Point) *Point {
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &q.p, &r)
	v.p.Set(&r)
	return v
}

// Subtract sets v = p - q, and returns v.
func (v *Point) Subtract(p, q *Point) *Point {
	var qNeg Point
	qNeg.Negate(q)
	return v.Add(p, &qNeg)
}

// Negate sets v = -p, and returns v.
func (v *Point) Negate(p *Point) *Point {
	v.Set(p)
	v.p.Y.Normalize()
	v.p.Y.Negate(1)
	v.p.Y.Normalize()
	return v
}

// ScalarBaseMult sets v = x • G, and returns v.
func (v *Point) ScalarBaseMult(x *Scalar) *Point {
	secp256k1.ScalarBaseMultNonConst(&x.s, &v.p)
	return v
}

// ScalarMult sets v = x • q, and returns v.
func (v *Point) ScalarMult(x *Scalar, q *Point) *Point {
	secp256k1.ScalarMultNonConst(&x.s, &q.p, &v.p)
	return v
}

// Equal returns true if v is equivalent to u.
func (v *Point) Equal(u *Point) bool {
	if u == nil {
		return false
	}
	v.toAffine()
	u.toAffine()
	return v.p.X.Equals(&u.p.X) && v.p.Y.Equals(&u.p.Y) && v.p.Z.Equals(&u.p.Z)
}

// IsIdentity returns true if the point is ∞.
func (v *Point) IsIdentity() bool {
	return (v.p.X.IsZero() && v.p.Y.IsZero()) || v.p.Z.IsZero()
}

func (v *Point) toAffine() *Point {
	v.p.ToAffine()
	return v
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
// The identity is written as 33 zero bytes, so that hashing stays total over
// adversarial inputs.
func (v *Point) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, params.BytesPoint)
	if !v.IsIdentity() {
		data, err := v.MarshalBinary()
		if err != nil {
			return 0, err
		}
		copy(buf, data)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (*Point) Domain() string {
	return "Point"
}

func init() {
	Gx, _ := hex.DecodeString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	Gy, _ := hex.DecodeString("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
	baseX.SetByteSlice(Gx)
	baseY.SetByteSlice(Gy)
}
