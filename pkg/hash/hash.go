package hash

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/internal/params"
	"github.com/zeebo/blake3"
)

// DigestLengthBytes is the length of a Sum output.
const DigestLengthBytes = params.SecBytes * 2 // 64

// Hash is the hash function used for Fiat–Shamir challenges and commitments.
//
// Internally, this is a wrapper around blake3, but any hash function with an
// easily extendable output would work as well.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash struct, and initializes the state with the given data.
func New(initialData ...WriterToWithDomain) *Hash {
	hash := &Hash{h: blake3.New()}
	for _, d := range initialData {
		_ = hash.WriteAny(d)
	}
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what is
// essentially a stream of pseudo-random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current
// hash state. If a different length is required, use
// io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - uint32
//   - *saferith.Nat, *saferith.Int, *saferith.Modulus
//   - hash.WriterToWithDomain
//
// This function applies its own domain separation for the first types.
// The last type already knows which domain to use, and this function respects it.
func (hash *Hash) WriteAny(data ...any) error {
	for _, d := range data {
		var err error
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "[]byte",
				Bytes:     t,
			})
		case uint32:
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "uint32",
				Bytes: []byte{
					byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t),
				},
			})
		case *saferith.Nat:
			if t == nil {
				return fmt.Errorf("hash.WriteAny: write *saferith.Nat: nil")
			}
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "Nat",
				Bytes:     t.Bytes(),
			})
		case *saferith.Int:
			if t == nil {
				return fmt.Errorf("hash.WriteAny: write *saferith.Int: nil")
			}
			sign := []byte{0}
			if t.IsNegative() == 1 {
				sign[0] = 1
			}
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "Int",
				Bytes:     append(sign, t.Abs().Bytes()...),
			})
		case *saferith.Modulus:
			if t == nil {
				return fmt.Errorf("hash.WriteAny: write *saferith.Modulus: nil")
			}
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "Modulus",
				Bytes:     t.Bytes(),
			})
		case WriterToWithDomain:
			err = writeWithDomain(hash.h, t)
		default:
			panic(fmt.Sprintf("hash.WriteAny: unsupported type %T", d))
		}
		if err != nil {
			return fmt.Errorf("hash.WriteAny: %w", err)
		}
	}
	return nil
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}
