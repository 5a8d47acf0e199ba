package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Encoding names a Content-Encoding.
type Encoding string

// Supported encodings.
const (
	EncodingIdentity Encoding = "identity"
	EncodingGzip     Encoding = "gzip"
	EncodingZstd     Encoding = "zstd"
	EncodingLZ4      Encoding = "lz4"
)

var (
	// ErrUnsupportedEncoding is returned for Content-Encoding values this
	// package cannot decode.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")

	// ErrTooLarge is returned when the decoded body exceeds the caller's limit.
	ErrTooLarge = errors.New("decoded body too large")
)

// ParseEncoding normalizes a Content-Encoding header value.
func ParseEncoding(header string) (Encoding, error) {
	switch name := strings.ToLower(strings.TrimSpace(header)); name {
	case "", string(EncodingIdentity):
		return EncodingIdentity, nil
	case string(EncodingGzip), "x-gzip":
		return EncodingGzip, nil
	case string(EncodingZstd):
		return EncodingZstd, nil
	case string(EncodingLZ4):
		return EncodingLZ4, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, header)
	}
}

// ReadAll decodes r according to enc and returns at most limit decoded
// bytes. A body longer than limit yields ErrTooLarge.
func ReadAll(r io.Reader, enc Encoding, limit int64) ([]byte, error) {
	decoded, closeFn, err := newReader(r, enc)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	data, err := io.ReadAll(io.LimitReader(decoded, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s body: %w", enc, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

func newReader(r io.Reader, enc Encoding) (io.Reader, func(), error) {
	switch enc {
	case EncodingIdentity:
		return r, func() {}, nil
	case EncodingGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, func() { _ = zr.Close() }, nil
	case EncodingZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr, zr.Close, nil
	case EncodingLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}
}
