package codec

import (
	"mime"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// ContentTypeCBOR is the media type of CBOR responses.
const ContentTypeCBOR = "application/cbor"

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2) so the same
// response always produces identical bytes.
var encMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	var err error
	encMode, err = opts.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes v to deterministic CBOR.
func MarshalCBOR(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// UnmarshalCBOR decodes CBOR data into v.
func UnmarshalCBOR(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

// AcceptsCBOR reports whether an Accept header asks for CBOR.
func AcceptsCBOR(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == ContentTypeCBOR {
			return true
		}
	}
	return false
}
