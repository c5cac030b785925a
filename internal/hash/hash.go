// Package hash names snapshot objects by the digest of their contents.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

func Buffer(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
