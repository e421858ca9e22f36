package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the SHA-256 of data as a 64-character hex string.
// Cache keys are hashed before hitting the filesystem so arbitrary
// strings (URLs, package names) never need escaping.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
