package curve

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/taurusgroup/fs-dkr/internal/params"
)

// Scalar is an element of ℤq, where q is the order of the secp256k1 group.
type Scalar struct {
	s secp256k1.ModNScalar
}

// q is the secp256k1 group order.
var q = saferith.ModulusFromBytes([]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
	0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x41,
})

// Order returns the group order q as a saferith.Modulus.
func Order() *saferith.Modulus {
	return q
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// NewScalarUInt32 returns a new Scalar set to a small constant.
// It is mostly useful for evaluation indices.
func NewScalarUInt32(i uint32) *Scalar {
	var s Scalar
	s.s.SetInt(i)
	return &s
}

// NewScalarNat returns a new Scalar equal to n (mod q).
func NewScalarNat(n *saferith.Nat) *Scalar {
	var s Scalar
	return s.SetNat(n)
}

// NewScalarInt returns a new Scalar equal to i (mod q).
func NewScalarInt(i *saferith.Int) *Scalar {
	var s Scalar
	reduced := new(saferith.Int).SetInt(i).Mod(q)
	s.setReduced(reduced)
	return &s
}

// SetNat sets s = n mod q, and returns s.
func (s *Scalar) SetNat(n *saferith.Nat) *Scalar {
	reduced := new(saferith.Nat).Mod(n, q)
	s.setReduced(reduced)
	return s
}

func (s *Scalar) setReduced(n *saferith.Nat) {
	var buf [params.BytesScalar]byte
	n.FillBytes(buf[:])
	s.s.SetBytes(&buf)
}

// Add sets s = x + y mod q, and returns s.
func (s *Scalar) Add(x, y *Scalar) *Scalar {
	s.s.Set(&x.s)
	s.s.Add(&y.s)
	return s
}

// Subtract sets s = x - y mod q, and returns s.
func (s *Scalar) Subtract(x, y *Scalar) *Scalar {
	var yNeg secp256k1.ModNScalar
	yNeg.Set(&y.s)
	yNeg.Negate()
	s.s.Set(&x.s)
	s.s.Add(&yNeg)
	return s
}

// Negate sets s = -x mod q, and returns s.
func (s *Scalar) Negate(x *Scalar) *Scalar {
	s.s.Set(&x.s)
	s.s.Negate()
	return s
}

// Multiply sets s = x * y mod q, and returns s.
func (s *Scalar) Multiply(x, y *Scalar) *Scalar {
	s.s.Set(&x.s)
	s.s.Mul(&y.s)
	return s
}

// MultiplyAdd sets s = x * y + z mod q, and returns s.
func (s *Scalar) MultiplyAdd(x, y, z *Scalar) *Scalar {
	var r secp256k1.ModNScalar
	r.Set(&x.s)
	r.Mul(&y.s)
	r.Add(&z.s)
	s.s.Set(&r)
	return s
}

// Invert sets s = x⁻¹ mod q, and returns s.
func (s *Scalar) Invert(x *Scalar) *Scalar {
	s.s.Set(&x.s)
	s.s.InverseNonConst()
	return s
}

// Set sets s = x, and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	s.s.Set(&x.s)
	return s
}

// Equal returns true if s and t are equal.
func (s *Scalar) Equal(t *Scalar) bool {
	return s.s.Equals(&t.s)
}

// IsZero returns true if s is 0.
func (s *Scalar) IsZero() bool {
	return s.s.IsZero()
}

// Zero overwrites the scalar with 0. It is used to scrub secret
// material once it is no longer needed.
func (s *Scalar) Zero() {
	s.s.Zero()
}

// Bytes returns the canonical 32 byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	data := s.s.Bytes()
	return data[:]
}

// MakeInt returns the scalar as a non-negative saferith.Int.
func MakeInt(s *Scalar) *saferith.Int {
	return new(saferith.Int).SetBytes(s.Bytes())
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (s *Scalar) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (*Scalar) Domain() string {
	return "Scalar"
}
