// Package codec provides optional value codecs applied to payload bytes
// before they are framed onto the wire and after they are read back.
// Codecs operate on raw bytes only; they run before any text validation
// so a compressed payload is never mistaken for malformed text.
package codec

import (
	"fmt"
	"strings"
)

// Codec transforms a payload in both directions. Encode and Decode must
// round-trip: Decode(Encode(p)) == p for any byte sequence.
type Codec interface {
	Encode([]byte) ([]byte, error)
	Decode([]byte) ([]byte, error)
}

// Get returns a Codec by name. Unknown names are an error so a typo in
// configuration fails loudly instead of silently storing raw bytes.
func Get(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "base64":
		return base64Codec{}, nil
	case "gzip":
		return gzipCodec{}, nil
	case "snappy":
		return snappyCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec: %q", name)
	}
}

// Names lists the available codec names for help output.
func Names() []string {
	return []string{"base64", "gzip", "snappy"}
}
