// Package sri computes Subresource Integrity attributes for the built
// site's script resources and exposes them as a template lookup table.
package sri

import (
	"crypto/sha512"
	"encoding/base64"
)

// CrossOrigin is the attribute value emitted for every SRI record.
const CrossOrigin = "anonymous"

// Digest returns the SRI integrity value for the given bytes:
// "sha512-" followed by the standard base64 encoding of the SHA-512
// digest, with no line wrapping.
func Digest(data []byte) string {
	sum := sha512.Sum512(data)
	return "sha512-" + base64.StdEncoding.EncodeToString(sum[:])
}
