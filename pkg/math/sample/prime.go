package sample

import (
	"io"
	"math"
	"math/big"
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/fs-dkr/internal/params"
	"github.com/taurusgroup/fs-dkr/pkg/pool"
)

// primes returns all odd prime numbers < below.
func primes(below uint32) []uint32 {
	sieve := make([]bool, below)
	for i := 2; i < len(sieve); i++ {
		sieve[i] = true
	}
	for p := 2; p*p < len(sieve); p++ {
		if !sieve[p] {
			continue
		}
		for i := p << 1; i < len(sieve); i += p {
			sieve[i] = false
		}
	}
	// There are approximately N / log N primes below N.
	nF := float64(below)
	out := make([]uint32, 0, int(nF/math.Log(nF)))
	for p := uint32(3); p < below; p++ {
		if sieve[p] {
			out = append(out, p)
		}
	}
	return out
}

// The number of candidates to check after our initial prime guess.
const sieveSize = 1 << 18

// The upper bound on the prime numbers used for sieving.
const primeBound = 1 << 20

// The number of Miller-Rabin iterations to use when checking primality.
// 20 is the same number that Go uses internally.
const blumPrimalityIterations = 20

var thePrimes []uint32
var initPrimes sync.Once

var sievePool = sync.Pool{
	New: func() any {
		sieve := make([]bool, sieveSize)
		return &sieve
	},
}

func tryBlumPrime(rand io.Reader) *saferith.Nat {
	initPrimes.Do(func() {
		thePrimes = primes(primeBound)
	})

	bytes := make([]byte, (params.BitsBlumPrime+7)/8)
	if _, err := io.ReadFull(rand, bytes); err != nil {
		return nil
	}
	// For both p and (p - 1) / 2 to be prime, it must be the case that p = 3 mod 4.
	bytes[len(bytes)-1] |= 3
	// Setting the top two bits ensures that the product of two such primes has
	// exactly twice the number of bits.
	bytes[0] |= 0xC0
	base := new(big.Int).SetBytes(bytes)

	// sieve checks the candidacy of base, base+1, base+2, etc.
	sievePtr := sievePool.Get().(*[]bool)
	sieve := *sievePtr
	defer sievePool.Put(sievePtr)
	for i := 0; i < len(sieve); i++ {
		sieve[i] = true
	}
	// Remove candidates that aren't 3 mod 4.
	for i := 1; i+2 < len(sieve); i += 4 {
		sieve[i] = false
		sieve[i+1] = false
		sieve[i+2] = false
	}
	// If x = 0 mod r, then x can't be prime. If x = 1 mod r, then (x - 1) / 2
	// can't be prime, so x can't be a safe prime.
	remainder := new(big.Int)
	for _, prime := range thePrimes {
		remainder.SetUint64(uint64(prime))
		remainder.Mod(base, remainder)
		r := int(remainder.Uint64())
		primeInt := int(prime)
		firstMultiple := primeInt - r
		if r == 0 {
			firstMultiple = 0
		}
		for i := firstMultiple; i+1 < len(sieve); i += primeInt {
			sieve[i] = false
			sieve[i+1] = false
		}
	}

	p := new(big.Int)
	q := new(big.Int)
	for delta := 0; delta < len(sieve); delta++ {
		if !sieve[delta] {
			continue
		}
		p.SetUint64(uint64(delta))
		p.Add(p, base)
		if p.BitLen() > params.BitsBlumPrime {
			return nil
		}
		// Since p is odd, this is equivalent to (p - 1) / 2.
		q.Rsh(p, 1)
		// p is likely to be prime already, so check the other number first.
		if !q.ProbablyPrime(blumPrimalityIterations) {
			continue
		}
		// A single iteration of Miller-Rabin can be shown to be sufficient
		// when q is prime.
		if !p.ProbablyPrime(0) {
			continue
		}
		return new(saferith.Nat).SetBig(p, params.BitsBlumPrime)
	}
	return nil
}

// Paillier generates the necessary integers for a Paillier key pair.
// p, q are safe primes ((p - 1) / 2 is also prime), and Blum primes (p = 3 mod 4).
func Paillier(rand io.Reader, pl *pool.Pool) (p, q *saferith.Nat) {
	reader := pool.NewLockedReader(rand)
	results := pl.Search(2, func() any {
		p := tryBlumPrime(reader)
		// You have to do this, because of how Go handles nil interfaces.
		if p == nil {
			return nil
		}
		return p
	})
	p, q = results[0].(*saferith.Nat), results[1].(*saferith.Nat)
	return
}
