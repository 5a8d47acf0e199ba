package digest

// Source labels where a digest request came from.
type Source string

const (
	// SourceCLI marks messages passed on the command line.
	SourceCLI Source = "cli"
	// SourceAPI marks messages received over HTTP.
	SourceAPI Source = "api"
)

// Input is one message waiting to be hashed.
type Input struct {
	// Label identifies the message in output (argument text, file path, or index).
	Label   string
	Message []byte
}

// Result is the digest of one Input.
type Result struct {
	Label  string `json:"label"  cbor:"label"`
	Digest string `json:"digest" cbor:"digest"`
	Size   int    `json:"size"   cbor:"size"`
}
