package sha256

import (
	"math"
	"sync"
)

const (
	// Size is the length of a SHA-256 digest in bytes.
	Size = 32

	// BlockSize is the length of one compression block in bytes.
	BlockSize = 64

	// Rounds is the number of compression rounds and schedule words per block.
	Rounds = 64

	// StateWords is the number of 32-bit words in the hash state.
	StateWords = 8
)

// Table holds the round constants K and the initial hash words H.
// A Table is never modified after construction.
type Table struct {
	K [Rounds]uint32
	H [StateWords]uint32
}

// NewTable derives the constants from the first 64 primes: K[i] is the
// first 32 bits of the fractional part of the cube root of the i-th
// prime, H[i] the same for the square root of the first 8 primes.
func NewTable() *Table {
	primes := generatePrimes(Rounds)

	t := &Table{}
	for i, p := range primes {
		t.K[i] = fractionBits(math.Cbrt(float64(p)))
	}
	for i, p := range primes[:StateWords] {
		t.H[i] = fractionBits(math.Sqrt(float64(p)))
	}
	return t
}

// DefaultTable returns the process-wide table, building it on first use.
var DefaultTable = sync.OnceValue(NewTable)

// fractionBits returns floor(frac(x) * 2^32).
func fractionBits(x float64) uint32 {
	frac := x - math.Floor(x)
	return uint32(math.Floor(frac * (1 << 32)))
}

// generatePrimes returns the first n primes by trial division.
func generatePrimes(n int) []uint32 {
	primes := make([]uint32, 0, n)
	for candidate := uint32(2); len(primes) < n; candidate++ {
		prime := true
		for d := uint32(2); d*d <= candidate; d++ {
			if candidate%d == 0 {
				prime = false
				break
			}
		}
		if prime {
			primes = append(primes, candidate)
		}
	}
	return primes
}
