package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex SHA-256 digest of data. The runner hashes the
// canonical graph JSON and the configuration fingerprint with it, and the
// two digests become the inputs of [Keyer.ResultKey].
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns keyType followed by the digest of parts. Parts are
// NUL-separated so ("ab", "c") and ("a", "bc") never share a key.
func hashKey(keyType string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return keyType + ":" + hex.EncodeToString(h.Sum(nil))
}
