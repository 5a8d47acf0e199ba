package sha256

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// MaxMessageLen is the exclusive upper bound on message length in bytes;
// the bit length of a message has to fit in the 64-bit length field.
const MaxMessageLen = 1 << 61

// lengthFieldSize is the size of the trailing big-endian bit count.
const lengthFieldSize = 8

// ErrMessageTooLarge is returned for messages whose bit length does not
// fit in 64 bits, or whose padded form cannot be addressed on this
// platform.
var ErrMessageTooLarge = errors.New("sha256: message too large")

// PaddedLen returns the padded length of an n-byte message: the smallest
// multiple of BlockSize that holds the message, the 0x80 marker and the
// 8-byte length field.
func PaddedLen(n uint64) (uint64, error) {
	if n >= MaxMessageLen {
		return 0, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, n)
	}
	// ceil((8n + 65) / 512) blocks, computed in bytes so it cannot overflow.
	blocks := (n + 1 + lengthFieldSize + BlockSize - 1) / BlockSize
	return blocks * BlockSize, nil
}

// Pad returns a new buffer holding msg, a 0x80 byte, zero fill and the
// big-endian bit length of msg in the final 8 bytes.
func Pad(msg []byte) ([]byte, error) {
	n := uint64(len(msg))
	size, err := PaddedLen(n)
	if err != nil {
		return nil, err
	}
	if size > math.MaxInt {
		return nil, fmt.Errorf("%w: padded length %d", ErrMessageTooLarge, size)
	}

	buf := make([]byte, size)
	copy(buf, msg)
	buf[n] = 0x80

	lengthField := buf[size-lengthFieldSize:]
	binary.BigEndian.PutUint64(lengthField, n*8)
	return buf, nil
}

// Blocks splits a padded message into consecutive BlockSize views. The
// views alias padded. Blocks panics if padded is empty or not a whole
// number of blocks.
func Blocks(padded []byte) []*[BlockSize]byte {
	if len(padded) == 0 || len(padded)%BlockSize != 0 {
		panic(fmt.Sprintf("sha256: padded length %d is not a positive multiple of %d",
			len(padded), BlockSize))
	}

	blocks := make([]*[BlockSize]byte, 0, len(padded)/BlockSize)
	for off := 0; off < len(padded); off += BlockSize {
		blocks = append(blocks, (*[BlockSize]byte)(padded[off:off+BlockSize]))
	}
	return blocks
}
