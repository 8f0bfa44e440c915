package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the short hex form of a public key that `key show`
// prints next to the key and that identity events are logged under, so the
// raw key never has to appear in logs.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub []byte) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:10])
}
