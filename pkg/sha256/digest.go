package sha256

import "encoding/binary"

// Digest serializes s big-endian, word 0 first.
func (s *State) Digest() [Size]byte {
	var out [Size]byte
	for i, word := range s {
		binary.BigEndian.PutUint32(out[i*4:], word)
	}
	return out
}

// Sum returns the SHA-256 digest of msg computed with t. The only error
// is ErrMessageTooLarge.
func (t *Table) Sum(msg []byte) ([Size]byte, error) {
	padded, err := Pad(msg)
	if err != nil {
		return [Size]byte{}, err
	}

	state := NewState(t)
	for _, block := range Blocks(padded) {
		w := NewSchedule(block)
		state.Compress(t, &w)
	}
	return state.Digest(), nil
}

// Sum returns the SHA-256 digest of msg using DefaultTable.
func Sum(msg []byte) ([Size]byte, error) {
	return DefaultTable().Sum(msg)
}

// MustSum is like Sum but panics if msg is too large.
func MustSum(msg []byte) [Size]byte {
	sum, err := Sum(msg)
	if err != nil {
		panic(err)
	}
	return sum
}
