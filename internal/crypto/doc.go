// Package crypto exposes the minimal primitives used by masahiro.
//
// Contents
//
//   - X25519 key generation, public-key derivation, Diffie–Hellman and
//     point validation (GenerateX25519, PublicKey, DH, ValidPoint)
//   - HKDF-SHA256 key derivation (DeriveKey)
//   - AES-256-GCM sealing into a combined nonce‖ciphertext‖tag blob (AESGCM)
//   - URL-safe base64 without padding (ToBase64URL, FromBase64URL)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Keys are fixed-size array types defined in internal/domain to avoid
// accidental reallocations. Callers should treat returned secrets as
// sensitive and rely on Wipe when practical to reduce lifetime in memory.
package crypto
