// Package codec decodes compressed request bodies and encodes CBOR
// responses for the HTTP service.
//
// Supported Content-Encoding values are identity (or empty), gzip, zstd
// and lz4 (LZ4 frame format). The digest is always computed over the
// decoded bytes.
package codec
