package paillier

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/internal/params"
	"github.com/taurusgroup/fs-dkr/pkg/math/sample"
)

// Ciphertext represents an integer of the form (1+N)ᵐρᴺ (mod N²). Two
// ciphertexts under the same public key can be combined homomorphically.
type Ciphertext struct {
	c *saferith.Nat
}

// Add sets ct to the homomorphic sum ct ⊕ ct₂, and returns ct.
//
//	ct ← ct⋅ct₂ (mod N²)
func (ct *Ciphertext) Add(pk *PublicKey, ct2 *Ciphertext) *Ciphertext {
	if ct2 == nil {
		return ct
	}
	ct.c.ModMul(ct.c, ct2.c, pk.nSquared.Modulus)
	return ct
}

// Mul sets ct to the homomorphic multiplication k ⊙ ct, and returns ct.
//
//	ct ← ctᵏ (mod N²)
func (ct *Ciphertext) Mul(pk *PublicKey, k *saferith.Int) *Ciphertext {
	if k == nil {
		return ct
	}
	ct.c = pk.nSquared.ExpI(ct.c, k)
	return ct
}

// Equal checks whether ct ≡ ctA.
func (ct *Ciphertext) Equal(ctA *Ciphertext) bool {
	if ctA == nil {
		return false
	}
	return ct.c.Eq(ctA.c) == 1
}

// Clone returns a deep copy of ct.
func (ct *Ciphertext) Clone() *Ciphertext {
	c := new(saferith.Nat).SetNat(ct.c)
	return &Ciphertext{c: c}
}

// Randomize multiplies the ciphertext's nonce by a newly generated one.
//
//	ct ← ct ⋅ nonceᴺ (mod N²)
//
// If nonce is nil, a fresh one is sampled. The updated receiver is returned,
// as well as the nonce used.
func (ct *Ciphertext) Randomize(pk *PublicKey, nonce *saferith.Nat) *saferith.Nat {
	if nonce == nil {
		nonce = sample.UnitModN(rand.Reader, pk.n.Modulus)
	}
	// ct = ct ⋅ nonceᴺ
	tmp := pk.nSquared.Exp(nonce, pk.nNat)
	ct.c.ModMul(ct.c, tmp, pk.nSquared.Modulus)
	return nonce
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	if ct == nil {
		return 0, io.ErrUnexpectedEOF
	}
	buf := make([]byte, params.BytesCiphertext)
	ct.c.FillBytes(buf)
	n, err := w.Write(buf)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (*Ciphertext) Domain() string {
	return "Paillier Ciphertext"
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	data := make([]byte, params.BytesCiphertext)
	ct.c.FillBytes(data)
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesCiphertext {
		return errors.New("paillier.Ciphertext.Unmarshal: wrong length")
	}
	ct.c = new(saferith.Nat).SetBytes(data)
	return nil
}

// Nat returns the underlying integer. The value is shared, do not modify it.
func (ct *Ciphertext) Nat() *saferith.Nat {
	return ct.c
}
