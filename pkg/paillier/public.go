package paillier

import (
	"crypto/rand"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/internal/params"
	"github.com/taurusgroup/fs-dkr/pkg/math/arith"
	"github.com/taurusgroup/fs-dkr/pkg/math/sample"
)

// PublicKey is a Paillier public key. It is comprised of an RSA modulus N,
// along with cached values used to accelerate encryption.
type PublicKey struct {
	// n = p⋅q
	n *arith.Modulus
	// nSquared = n²
	nSquared *arith.Modulus
	// nNat = n as a saferith.Nat
	nNat *saferith.Nat
	// nPlusOne = n + 1, cached for encryption
	nPlusOne *saferith.Nat
}

// NewPublicKey validates n and returns an initialized PublicKey.
func NewPublicKey(n *saferith.Modulus) *PublicKey {
	oneNat := new(saferith.Nat).SetUint64(1)
	nNat := n.Nat()
	nSquared := saferith.ModulusFromNat(new(saferith.Nat).Mul(nNat, nNat, -1))
	nPlusOne := new(saferith.Nat).Add(nNat, oneNat, -1)
	// Tightening is fine, since n is public.
	nPlusOne.Resize(nPlusOne.TrueLen())

	return &PublicKey{
		n:        arith.ModulusFromN(n),
		nSquared: arith.ModulusFromN(nSquared),
		nNat:     nNat,
		nPlusOne: nPlusOne,
	}
}

// ValidateN performs basic checks to make sure a modulus is a plausible
// Paillier public key:
//
//   - log₂(n) = params.BitsPaillier.
//   - n is odd.
func ValidateN(n *saferith.Modulus) error {
	if n == nil {
		return ErrPaillierNil
	}
	if bits := n.BitLen(); bits != params.BitsPaillier {
		return fmt.Errorf("paillier: have: %d, need %d: %w", bits, params.BitsPaillier, ErrPaillierLength)
	}
	if n.Nat().Byte(0)&1 != 1 {
		return ErrPaillierEven
	}
	return nil
}

// Enc returns the encryption of m under the public key pk, as well as the
// fresh nonce ρ used:
//
//	ct = (1+N)ᵐρᴺ (mod N²)
func (pk *PublicKey) Enc(m *saferith.Int) (*Ciphertext, *saferith.Nat) {
	nonce := sample.UnitModN(rand.Reader, pk.n.Modulus)
	return pk.EncWithNonce(m, nonce), nonce
}

// EncWithNonce returns the encryption of m under the public key pk, using
// the given nonce.
//
// The nonce must be in ℤₙˣ; the message must be in the range ±(N-2)/2.
func (pk *PublicKey) EncWithNonce(m *saferith.Int, nonce *saferith.Nat) *Ciphertext {
	mAbs := m.Abs()
	nHalf := new(saferith.Nat).SetNat(pk.nNat)
	nHalf.Rsh(nHalf, 1, -1)
	if gt, _, _ := mAbs.Cmp(nHalf); gt == 1 {
		panic("paillier.Enc: tried to encrypt message outside of range [-(N-1)/2, …, (N-1)/2]")
	}

	// (N+1)ᵐ mod N²
	c := pk.nSquared.ExpI(pk.nPlusOne, m)
	// ρᴺ mod N²
	rhoN := pk.nSquared.Exp(nonce, pk.nNat)
	// (N+1)ᵐ ρᴺ mod N²
	c.ModMul(c, rhoN, pk.nSquared.Modulus)

	return &Ciphertext{c: c}
}

// Equal returns true if pk ≡ other.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pk.nNat.Eq(other.nNat) == 1
}

// ValidateCiphertexts returns true if all ciphertexts are in the correct
// range and coprime to N².
func (pk *PublicKey) ValidateCiphertexts(cts ...*Ciphertext) bool {
	for _, ct := range cts {
		if ct == nil || ct.c == nil {
			return false
		}
		if _, _, lt := ct.c.CmpMod(pk.nSquared.Modulus); lt != 1 {
			return false
		}
		if ct.c.IsUnit(pk.nSquared.Modulus) != 1 {
			return false
		}
	}
	return true
}

// Modulus returns the public modulus N.
func (pk *PublicKey) Modulus() *saferith.Modulus {
	return pk.n.Modulus
}

// N returns N as a saferith.Nat.
// The value is shared, do not modify it.
func (pk *PublicKey) N() *saferith.Nat {
	return pk.nNat
}
