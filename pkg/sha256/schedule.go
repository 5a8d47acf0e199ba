package sha256

import (
	"encoding/binary"
	"math/bits"
)

// Schedule is the 64-word message schedule of one block.
type Schedule [Rounds]uint32

// NewSchedule expands a block into its message schedule. The first 16
// words are the block read as big-endian uint32s; the rest follow the
// recurrence w[j] = σ1(w[j-2]) + w[j-7] + σ0(w[j-15]) + w[j-16].
func NewSchedule(block *[BlockSize]byte) Schedule {
	var w Schedule
	for j := 0; j < 16; j++ {
		w[j] = binary.BigEndian.Uint32(block[j*4:])
	}
	for j := 16; j < Rounds; j++ {
		w[j] = sigma1(w[j-2]) + w[j-7] + sigma0(w[j-15]) + w[j-16]
	}
	return w
}

func sigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ x>>3
}

func sigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ x>>10
}
