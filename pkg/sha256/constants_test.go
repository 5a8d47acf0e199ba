package sha256

import (
	"sync"
	"testing"
)

// fipsK and fipsH are the literal constants from FIPS 180-4 §4.2.2 and §5.3.3.
var fipsK = [Rounds]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var fipsH = [StateWords]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// TestNewTableMatchesStandard checks the derived constants bit for bit.
func TestNewTableMatchesStandard(t *testing.T) {
	t.Parallel()

	table := NewTable()
	for i, want := range fipsK {
		if table.K[i] != want {
			t.Fatalf("K[%d] = %#08x, want %#08x", i, table.K[i], want)
		}
	}
	for i, want := range fipsH {
		if table.H[i] != want {
			t.Fatalf("H[%d] = %#08x, want %#08x", i, table.H[i], want)
		}
	}
}

func TestGeneratePrimes(t *testing.T) {
	t.Parallel()

	primes := generatePrimes(Rounds)
	if len(primes) != Rounds {
		t.Fatalf("expected %d primes, got %d", Rounds, len(primes))
	}
	head := []uint32{2, 3, 5, 7, 11, 13, 17, 19}
	for i, want := range head {
		if primes[i] != want {
			t.Fatalf("primes[%d] = %d, want %d", i, primes[i], want)
		}
	}
	if last := primes[Rounds-1]; last != 311 {
		t.Fatalf("expected 64th prime 311, got %d", last)
	}
}

// TestNewTableRepeatable ensures independent constructions agree.
func TestNewTableRepeatable(t *testing.T) {
	t.Parallel()

	if *NewTable() != *NewTable() {
		t.Fatal("expected repeated NewTable calls to produce identical tables")
	}
}

// TestDefaultTableConcurrentFirstUse races first use and compares results.
func TestDefaultTableConcurrentFirstUse(t *testing.T) {
	t.Parallel()

	const callers = 32
	tables := make([]*Table, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			tables[idx] = DefaultTable()
		}(i)
	}
	wg.Wait()

	for i, table := range tables {
		if table != tables[0] {
			t.Fatalf("caller %d observed a different table instance", i)
		}
		if table.K != fipsK || table.H != fipsH {
			t.Fatalf("caller %d observed non-standard constants", i)
		}
	}
}
